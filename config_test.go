package forth_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashforth/forth"
)

func Test_LoadConfig_MissingFileIsZeroValue(t *testing.T) {
	cfg, err := forth.LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Empty(t, cfg.OffPath)
	require.Empty(t, cfg.Options())
}

func Test_LoadConfig_DecodesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forth.toml")
	const body = `
off_path = "/opt/forth/lib"
arena_cells = 8192
data_depth = 128
checked = false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := forth.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/opt/forth/lib", cfg.OffPath)
	require.EqualValues(t, 8192, cfg.ArenaCells)
	require.Equal(t, 128, cfg.DataDepth)
	require.NotNil(t, cfg.Checked)
	require.False(t, *cfg.Checked)

	// Options() should yield one Option per populated field, and applying
	// them should not panic or error when building a VM.
	opts := cfg.Options()
	require.Len(t, opts, 4)

	vm := forth.New(opts...)
	require.NotNil(t, vm)
}

func Test_LoadConfig_OffPathEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forth.toml")
	require.NoError(t, os.WriteFile(path, []byte(`off_path = "/from/file"`), 0o644))

	t.Setenv("OFF_PATH", "/from/env")
	cfg, err := forth.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/from/file", cfg.OffPath)

	// The env override happens in Options(), not LoadConfig itself.
	opts := cfg.Options()
	require.Len(t, opts, 1)
}
