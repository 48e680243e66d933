package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/wazuh/devenv-ctl/internal/errors"
	"github.com/wazuh/devenv-ctl/internal/system"
)

// EnvDefaultsFile overrides the defaults file location.
const EnvDefaultsFile = "WZD_CONFIG"

// Defaults holds optional values from the devenv.toml defaults file.
// Precedence is flags, then ambient environment, then this file, then the
// built-in defaults.
type Defaults struct {
	Password        string `toml:"password"`
	Port            string `toml:"port"`
	ImposterVersion string `toml:"imposter_version"`
	PluginsRoot     string `toml:"plugins_root"`
}

// DefaultsPath returns the location of the defaults file: WZD_CONFIG if
// set, otherwise devenv.toml under the user config directory.
func DefaultsPath() string {
	if path := os.Getenv(EnvDefaultsFile); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "devenv-ctl", "devenv.toml")
}

// LoadDefaults reads the defaults file. A missing file is not an error and
// yields empty defaults; an unreadable or malformed file is a configuration
// error, since it is host state rather than user input.
func LoadDefaults(fsys system.FileSystem, path string) (*Defaults, error) {
	defaults := &Defaults{}
	if path == "" {
		return defaults, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, errors.Configuration("cannot read the defaults file %s: %v", path, err)
	}

	if err := toml.Unmarshal(data, defaults); err != nil {
		return nil, errors.Configuration("cannot parse the defaults file %s: %v", path, err)
	}
	return defaults, nil
}
