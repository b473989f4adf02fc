package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/grovetools/actionmenu/errors"
	"github.com/grovetools/actionmenu/schema"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project-level configuration file name.
const ConfigFileName = "actionmenu.yml"

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration data, applies defaults and
// validates the result.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file")
	}

	cfg.ApplyDefaults()

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to load config schema")
	}
	if err := validator.Validate(&cfg); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	return &cfg, nil
}

// LoadDefault loads configuration with hierarchical merging starting
// from the current working directory:
//  1. Global config (~/.config/actionmenu/actionmenu.yml) - base layer
//  2. Project config (actionmenu.yml, found by walking up) - overrides
//
// When neither file exists the built-in defaults are returned.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from
// the given directory.
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, logrus.New())
}

// LoadFromWithLogger loads configuration with hierarchical merging and
// logging.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	var final *Config

	// 1. Global config, if present. Parse failures are logged and
	// skipped so a broken global file cannot take the menu down.
	if globalPath := globalConfigPath(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("loading global configuration")
			data, err := os.ReadFile(globalPath)
			if err == nil {
				var globalCfg Config
				if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &globalCfg); err == nil {
					final = &globalCfg
				} else {
					logger.WithError(err).Warn("failed to parse global configuration, continuing without it")
				}
			}
		}
	}

	// 2. Project config, if present.
	if projectPath, err := FindConfigFile(startDir); err == nil {
		logger.WithField("path", projectPath).Debug("loading project configuration")
		data, err := os.ReadFile(projectPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
				WithDetail("path", projectPath)
		}
		var projectCfg Config
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &projectCfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
				WithDetail("path", projectPath)
		}
		if final == nil {
			final = &projectCfg
		} else {
			merge(final, &projectCfg)
		}
	}

	if final == nil {
		final = &Config{}
	}

	final.ApplyDefaults()

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to load config schema")
	}
	if err := validator.Validate(final); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	if err := final.Validate(); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	return final, nil
}

// FindConfigFile walks up from startDir looking for actionmenu.yml.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(ConfigFileName)
		}
		dir = parent
	}
}

func globalConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "actionmenu", ConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "actionmenu", ConfigFileName)
}

// expandEnvVars replaces ${VAR} references with environment values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
