package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/asset-engine/pkg/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "assets/monsters/Animated Monster Pack by @Quaternius/Blend", cfg.SourceDir)
	assert.Equal(t, "public/models", cfg.OutputDir)
	assert.Equal(t, []string{"Skeleton.blend", "Bat.blend", "Dragon.blend", "Slime.blend"}, cfg.Files)
}

func TestDefaultIsACopy(t *testing.T) {
	a := Default()
	a.Files[0] = "Mutated.blend"

	b := Default()
	assert.Equal(t, "Skeleton.blend", b.Files[0], "mutating one Default must not affect the next")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		want   types.BatchConfig
		errMsg string
	}{
		{
			name: "valid manifest",
			yaml: `source_dir: scenes
output_dir: dist/models
files:
  - Hero.blend
  - Villain.blend
`,
			want: types.BatchConfig{
				SourceDir: "scenes",
				OutputDir: "dist/models",
				Files:     []string{"Hero.blend", "Villain.blend"},
			},
		},
		{
			name: "missing source dir",
			yaml: `output_dir: dist
files: [a.blend]
`,
			errMsg: "source_dir is required",
		},
		{
			name: "missing output dir",
			yaml: `source_dir: scenes
files: [a.blend]
`,
			errMsg: "output_dir is required",
		},
		{
			name: "empty file list",
			yaml: `source_dir: scenes
output_dir: dist
files: []
`,
			errMsg: "files list is empty",
		},
		{
			name: "blank file entry",
			yaml: `source_dir: scenes
output_dir: dist
files: ["a.blend", ""]
`,
			errMsg: "files[1] is empty",
		},
		{
			name:   "malformed yaml",
			yaml:   "source_dir: [unbalanced",
			errMsg: "parsing manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			got, err := Load(path)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading manifest")
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	want := Default()

	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
