// Package config loads runtime settings from defaults, an optional config
// file and MAPTY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"

	envPrefix = "MAPTY"
)

type Config struct {
	DataDir string        `mapstructure:"data_dir" validate:"required"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Map     MapConfig     `mapstructure:"map"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required|in:sqlite,file"`
	// Path is the database file for sqlite or the directory for file. Empty
	// means a default under DataDir.
	Path    string `mapstructure:"path"`
	SlotKey string `mapstructure:"slot_key" validate:"required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal"`
	File   string `mapstructure:"file"`
	Stderr bool   `mapstructure:"stderr"`
	JSON   bool   `mapstructure:"json"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

type MapConfig struct {
	Zoom int        `mapstructure:"zoom" validate:"required|min:1|max:19"`
	Home HomeConfig `mapstructure:"home"`
}

type HomeConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Lat     float64 `mapstructure:"lat" validate:"min:-90|max:90"`
	Lng     float64 `mapstructure:"lng" validate:"min:-180|max:180"`
}

// StoragePath resolves the storage location, defaulting under DataDir.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Backend == BackendFile {
		return filepath.Join(c.DataDir, "slots")
	}
	return filepath.Join(c.DataDir, "mapty.db")
}

// LogPath resolves the log file, empty when file logging is off.
func (c *Config) LogPath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, c.Log.File)
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("data_dir", filepath.Join(home, ".mapty"))
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.slot_key", "workout")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "mapty.log")
	v.SetDefault("log.stderr", false)
	v.SetDefault("log.json", false)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("map.zoom", 15)
	v.SetDefault("map.home.enabled", false)
	v.SetDefault("map.home.lat", 0.0)
	v.SetDefault("map.home.lng", 0.0)
}

// Load builds the configuration. configPath may be empty, in which case
// $MAPTY_CONFIG and then <data_dir>/config.yaml are tried; a missing default
// file is not an error.
func Load(configPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	return load(viper.New(), home, configPath)
}

func load(v *viper.Viper, home, configPath string) (*Config, error) {
	setDefaults(v, home)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = os.Getenv(envPrefix + "_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configPath, err)
		}
	} else {
		v.AddConfigPath(v.GetString("data_dir"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.File = v.ConfigFileUsed()

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks every section against its validate tags.
func (c *Config) Validate() error {
	for _, section := range []any{c, &c.Storage, &c.Log, &c.Map, &c.Map.Home} {
		v := validate.Struct(section)
		v.StopOnError = true
		if !v.Validate() {
			return fmt.Errorf("invalid config: %w", v.Errors)
		}
	}
	return nil
}
