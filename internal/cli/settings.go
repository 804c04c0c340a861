package cli

import (
	"github.com/spf13/cobra"

	"tzbucket/internal/platform/config"
)

// settings resolves option values with the precedence
// flag > TZBUCKET_* env > defaults file > flag built-in
type settings struct {
	env  config.Conf
	file config.FileDefaults
}

// loadSettings reads the optional defaults file. An explicit --config (or
// $TZBUCKET_CONFIG) that fails to load is an error; discovery that finds
// nothing is not
func loadSettings(cmd *cobra.Command) (settings, error) {
	s := settings{env: config.New().Prefix("TZBUCKET_")}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Discover()
	}
	if path != "" {
		fd, err := config.LoadFile(path)
		if err != nil {
			return settings{}, err
		}
		s.file = fd
	}
	return s, nil
}

// str resolves one string option. flagVal must be the bound flag variable
// so the flag's built-in default is the final fallback
func (s settings) str(cmd *cobra.Command, name, envKey, fileVal, flagVal string) string {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	if v := s.env.MayString(envKey, ""); v != "" {
		return v
	}
	if fileVal != "" {
		return fileVal
	}
	return flagVal
}

// num is the int counterpart of str; env and file values <= 0 mean unset
func (s settings) num(cmd *cobra.Command, name, envKey string, fileVal, flagVal int) int {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	if v := s.env.MayInt(envKey, 0); v > 0 {
		return v
	}
	if fileVal > 0 {
		return fileVal
	}
	return flagVal
}
