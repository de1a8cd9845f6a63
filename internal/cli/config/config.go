package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".decodoc.yml"

// Config represents the decodoc configuration
type Config struct {
	Extensions  []string    `mapstructure:"extensions"`
	Jobs        int         `mapstructure:"jobs"`
	StopOnError bool        `mapstructure:"stop_on_error"`
	LogLevel    string      `mapstructure:"log_level"`
	NoColor     bool        `mapstructure:"no_color"`
	Watch       WatchConfig `mapstructure:"watch"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Extensions: []string{".ts"},
		Jobs:       1,
		LogLevel:   "info",
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// flagKeys maps command line flags onto configuration keys
var flagKeys = map[string]string{
	"ext":           "extensions",
	"jobs":          "jobs",
	"stop-on-error": "stop_on_error",
	"log-level":     "log_level",
	"no-color":      "no_color",
	"debounce":      "watch.debounce",
}

// Load reads configuration from defaults, the config file, DECODOC_*
// environment variables and finally flags, each overriding the previous.
// When file is empty, FileName is looked up in dir and may be absent.
func Load(dir, file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("extensions", def.Extensions)
	v.SetDefault("jobs", def.Jobs)
	v.SetDefault("stop_on_error", def.StopOnError)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("no_color", def.NoColor)
	v.SetDefault("watch.debounce", def.Watch.Debounce)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("DECODOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates and normalizes the configuration
func validateConfig(cfg *Config) error {
	if cfg.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got: %d", cfg.Jobs)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got: %s", cfg.Watch.Debounce)
	}

	exts := make([]string, 0, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	if len(exts) == 0 {
		return fmt.Errorf("extensions must name at least one file extension")
	}
	cfg.Extensions = exts

	return nil
}

// fileLayout is the on-disk shape of the configuration file
type fileLayout struct {
	Extensions  []string `yaml:"extensions"`
	Jobs        int      `yaml:"jobs"`
	StopOnError bool     `yaml:"stop_on_error"`
	LogLevel    string   `yaml:"log_level"`
	NoColor     bool     `yaml:"no_color"`
	Watch       struct {
		Debounce string `yaml:"debounce"`
	} `yaml:"watch"`
}

// Save writes cfg to path as YAML. An existing file is not overwritten
// unless force is set.
func Save(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	layout := fileLayout{
		Extensions:  cfg.Extensions,
		Jobs:        cfg.Jobs,
		StopOnError: cfg.StopOnError,
		LogLevel:    cfg.LogLevel,
		NoColor:     cfg.NoColor,
	}
	layout.Watch.Debounce = cfg.Watch.Debounce.String()

	data, err := yaml.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
