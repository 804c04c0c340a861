package config

import (
	"os"
	"path/filepath"
	"strings"

	perr "tzbucket/internal/platform/errors"

	"github.com/BurntSushi/toml"
)

// FileDefaults holds the optional defaults read from a TOML config file.
// Every field falls back to the built-in default when absent; precedence is
// flag > env > file > built-in.
type FileDefaults struct {
	Timezone        string `toml:"timezone"`
	Interval        string `toml:"interval"`
	WeekStart       string `toml:"week_start"`
	TimestampFormat string `toml:"timestamp_format"`
	OutputFormat    string `toml:"output_format"`
	Workers         int    `toml:"workers"`
}

// LoadFile parses a TOML defaults file. Unknown keys are rejected so typos
// surface instead of silently doing nothing.
func LoadFile(path string) (FileDefaults, error) {
	var fd FileDefaults
	md, err := toml.DecodeFile(path, &fd)
	if err != nil {
		return FileDefaults{}, perr.Wrapf(err, perr.ErrorCodeInput, "config file '%s'", path)
	}
	if un := md.Undecoded(); len(un) > 0 {
		return FileDefaults{}, perr.Inputf("config file '%s': unknown key '%s'", path, un[0].String())
	}
	return fd, nil
}

// Discover returns the config file path to load, or empty when none applies.
// TZBUCKET_CONFIG wins unconditionally (a bad path there should fail loudly);
// the XDG and home candidates are used only when they exist.
func Discover() string {
	if p := strings.TrimSpace(os.Getenv("TZBUCKET_CONFIG")); p != "" {
		return p
	}
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		p := filepath.Join(x, "tzbucket", "config.toml")
		if fileExists(p) {
			return p
		}
	}
	if h, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(h, ".config", "tzbucket", "config.toml")
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
