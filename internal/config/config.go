// Package config loads CLI configuration from an optional YAML file with
// sensible defaults for every key. Command-line flags override whatever is
// loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultPath is the config file the CLI looks for when none is given.
const DefaultPath = "iiif-dl.yaml"

type Config struct {
	Download DownloadConfig `mapstructure:"download"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

type DownloadConfig struct {
	// Workers is the concurrent tile download budget (1-16).
	Workers int `mapstructure:"workers"`

	// TileSize is an explicit tile size in pixels (64-4096), or 0 to let
	// the server decide.
	TileSize int `mapstructure:"tile_size"`
}

type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Name   string `mapstructure:"name"`
	Format string `mapstructure:"format"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"` // "debug" or "release"
}

// Load reads configuration from the given YAML file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// New loads DefaultPath, falling back to pure defaults when the file is
// missing or unreadable.
func New() *Config {
	cfg, err := Load(DefaultPath)
	if err != nil {
		return getDefaultConfig()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("download.workers", 4)
	v.SetDefault("download.tile_size", 0)

	v.SetDefault("output.dir", defaultOutputDir())
	v.SetDefault("output.name", "downloaded_image")
	v.SetDefault("output.format", "tiff")

	v.SetDefault("log.mode", "debug")
}

func getDefaultConfig() *Config {
	return &Config{
		Download: DownloadConfig{
			Workers:  4,
			TileSize: 0,
		},
		Output: OutputConfig{
			Dir:    defaultOutputDir(),
			Name:   "downloaded_image",
			Format: "tiff",
		},
		Log: LogConfig{
			Mode: "debug",
		},
	}
}

// defaultOutputDir is the user's Downloads directory when it exists, the
// working directory otherwise.
func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	downloads := filepath.Join(home, "Downloads")
	if _, err := os.Stat(downloads); err != nil {
		return "."
	}
	return downloads
}
