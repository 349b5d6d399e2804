// Package config loads quotebook settings from flags, the environment,
// .env files and ~/.quotebook.yaml.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/storage"
)

// EnvPrefix prefixes every environment variable, e.g. QUOTEBOOK_REMOTE_URL.
const EnvPrefix = "QUOTEBOOK"

// Config holds the application configuration.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file actually read, empty when none was found
	ConfigFile string

	// Storage
	Storage  storage.Backend
	DataPath string

	// Remote gateway
	RemoteURL             string
	RemoteItemsPath       string
	RemoteTextPath        string
	RemoteCategoryPath    string
	RemoteDefaultCategory string
	RemoteLimit           int
	RemotePushURL         string
	RemoteAuth            string
	RemoteToken           string

	// Sync
	AutoSync     bool
	SyncInterval time.Duration
	FetchTimeout time.Duration
	PushTimeout  time.Duration

	// Server
	ServeAddr  string
	ServeToken string

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration in order of precedence:
// 1. Environment variables (QUOTEBOOK_*)
// 2. .env files
// 3. Config file (configFile, or ~/.quotebook.yaml / ./.quotebook.yaml)
// 4. Defaults
//
// Flags are applied afterwards by the CLI.
func Load(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &errors.ConfigError{Component: "config", Message: "failed to read " + configFile, Err: err}
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".quotebook")
		// A missing default config file is fine.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, &errors.ConfigError{Component: "config", Message: "failed to read config file", Err: err}
			}
		}
	}

	backend, err := storage.ParseBackend(v.GetString("storage"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Output:     v.GetString("output"),
		ConfigFile: v.ConfigFileUsed(),

		Storage:  backend,
		DataPath: v.GetString("data_path"),

		RemoteURL:             v.GetString("remote_url"),
		RemoteItemsPath:       v.GetString("remote_items_path"),
		RemoteTextPath:        v.GetString("remote_text_path"),
		RemoteCategoryPath:    v.GetString("remote_category_path"),
		RemoteDefaultCategory: v.GetString("remote_default_category"),
		RemoteLimit:           v.GetInt("remote_limit"),
		RemotePushURL:         v.GetString("remote_push_url"),
		RemoteAuth:            v.GetString("remote_auth"),
		RemoteToken:           v.GetString("remote_token"),

		AutoSync:     v.GetBool("auto_sync"),
		SyncInterval: v.GetDuration("sync_interval"),
		FetchTimeout: v.GetDuration("fetch_timeout"),
		PushTimeout:  v.GetDuration("push_timeout"),

		ServeAddr:  v.GetString("serve_addr"),
		ServeToken: v.GetString("serve_token"),

		LogLevel:  firstNonEmpty(os.Getenv("LOG_LEVEL"), v.GetString("log_level")),
		LogFormat: firstNonEmpty(os.Getenv("LOG_FORMAT"), v.GetString("log_format")),
		LogOutput: firstNonEmpty(os.Getenv("LOG_OUTPUT"), v.GetString("log_output")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Storage:               storage.BackendFile,
		DataPath:              constants.DefaultDataPath,
		RemoteURL:             constants.DefaultRemoteURL,
		RemoteTextPath:        "title",
		RemoteCategoryPath:    "category",
		RemoteDefaultCategory: constants.DefaultRemoteCategory,
		AutoSync:              true,
		SyncInterval:          constants.DefaultSyncInterval,
		FetchTimeout:          constants.FetchTimeout,
		PushTimeout:           constants.PushTimeout,
		ServeAddr:             constants.DefaultServeAddr,
		LogFormat:             "auto",
		LogOutput:             "stderr",
	}
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if !c.Storage.IsValid() {
		return &errors.ValidationError{Field: "storage", Value: c.Storage, Message: "must be memory, file or sqlite"}
	}
	if c.SyncInterval <= 0 {
		return &errors.ValidationError{Field: "sync_interval", Value: c.SyncInterval, Message: "must be positive"}
	}
	if c.RemoteLimit < 0 {
		return &errors.ValidationError{Field: "remote_limit", Value: c.RemoteLimit, Message: "must not be negative"}
	}
	return nil
}

// UpdateFromFlags applies parsed global flags, which take precedence over
// the config file and the environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if output != "" {
		c.Output = output
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("storage", string(d.Storage))
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("remote_url", d.RemoteURL)
	v.SetDefault("remote_items_path", d.RemoteItemsPath)
	v.SetDefault("remote_text_path", d.RemoteTextPath)
	v.SetDefault("remote_category_path", d.RemoteCategoryPath)
	v.SetDefault("remote_default_category", d.RemoteDefaultCategory)
	v.SetDefault("remote_limit", 0)
	v.SetDefault("remote_push_url", "")
	v.SetDefault("remote_auth", "")
	v.SetDefault("remote_token", "")
	v.SetDefault("auto_sync", d.AutoSync)
	v.SetDefault("sync_interval", d.SyncInterval)
	v.SetDefault("fetch_timeout", d.FetchTimeout)
	v.SetDefault("push_timeout", d.PushTimeout)
	v.SetDefault("serve_addr", d.ServeAddr)
	v.SetDefault("serve_token", "")
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_output", d.LogOutput)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no_color", false)
	v.SetDefault("output", "")
}

// loadEnvFiles loads .env then .env.local. Existing variables win.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
