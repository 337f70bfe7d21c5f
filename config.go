package forth

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the TOML-loadable counterpart of the CLI flags, per spec.md
// §6's Environment section generalized to a config file: OFF_PATH, the
// arena size, and stack depths may all be set here, overridden by the
// OFF_PATH environment variable, overridden in turn by an explicit -off-path
// flag (§7's "flag > env > config" precedence).
type Config struct {
	OffPath    string `toml:"off_path"`
	ArenaCells uint   `toml:"arena_cells"`
	DataDepth  int    `toml:"data_depth"`
	ReturnDepth int   `toml:"return_depth"`
	UserDepth  int    `toml:"user_depth"`
	Checked    *bool  `toml:"checked"`
}

// LoadConfig decodes a TOML config file at path. A missing file is not an
// error: it simply yields a zero Config, so -config is optional.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// Options converts a Config into VM Options, applying the OFF_PATH
// environment variable's override over the config file's off_path.
func (c Config) Options() []Option {
	var opts []Option
	offPath := c.OffPath
	if env := os.Getenv("OFF_PATH"); env != "" {
		offPath = env
	}
	if offPath != "" {
		opts = append(opts, WithOffPath(offPath))
	}
	if c.ArenaCells > 0 {
		opts = append(opts, WithArenaSize(c.ArenaCells))
	}
	if c.DataDepth > 0 || c.ReturnDepth > 0 || c.UserDepth > 0 {
		opts = append(opts, WithStackCapacity(c.DataDepth, c.ReturnDepth, c.UserDepth))
	}
	if c.Checked != nil {
		opts = append(opts, WithStackChecks(*c.Checked))
	}
	return opts
}
