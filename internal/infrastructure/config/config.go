package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/exos/backend/internal/domain/amountwords"
	"github.com/spf13/viper"
)

// Storage backends for generated PDFs
const (
	StorageBackendNone       = "none"
	StorageBackendFileSystem = "fs"
	StorageBackendS3         = "s3"
	StorageBackendMemory     = "memory"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Currency CurrencyConfig
	Print    PrintConfig
	Storage  StorageConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// CurrencyEntry is an extra currency declared in config.toml:
//
//	[[currency.entries]]
//	code = "quetzal"
//	singular = "quetzal"
//	plural = "quetzales"
//	symbol = "Q"
//	aliases = ["GTQ"]
type CurrencyEntry struct {
	Code     string   `mapstructure:"code"`
	Singular string   `mapstructure:"singular"`
	Plural   string   `mapstructure:"plural"`
	Symbol   string   `mapstructure:"symbol"`
	Aliases  []string `mapstructure:"aliases"`
}

// CurrencyConfig selects the default currency and extends the built-in table
type CurrencyConfig struct {
	Default string
	Entries []CurrencyEntry
}

// PrintConfig holds document rendering settings
type PrintConfig struct {
	PDFEnabled    bool
	ChromeURL     string // remote Chrome DevTools endpoint, empty launches a local browser
	NoSandbox     bool
	RenderTimeout time.Duration
}

// StorageConfig holds settings for generated PDF storage
type StorageConfig struct {
	Backend       string // none, fs, s3, memory
	BasePath      string
	BaseURL       string
	RetentionDays int

	// S3 compatible object storage
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	UsePathStyle bool
	Prefix       string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with EXOS_ prefix (e.g., EXOS_STORAGE_SECRET_KEY)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return build(v)
}

// LoadFile loads configuration from an explicit file path plus environment
// variables. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("EXOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Currency: CurrencyConfig{
			Default: v.GetString("currency.default"),
		},
		Print: PrintConfig{
			PDFEnabled:    v.GetBool("print.pdf_enabled"),
			ChromeURL:     v.GetString("print.chrome_url"),
			NoSandbox:     v.GetBool("print.no_sandbox"),
			RenderTimeout: v.GetDuration("print.render_timeout"),
		},
		Storage: StorageConfig{
			Backend:       v.GetString("storage.backend"),
			BasePath:      v.GetString("storage.base_path"),
			BaseURL:       v.GetString("storage.base_url"),
			RetentionDays: v.GetInt("storage.retention_days"),
			Endpoint:      v.GetString("storage.endpoint"),
			Region:        v.GetString("storage.region"),
			Bucket:        v.GetString("storage.bucket"),
			AccessKey:     v.GetString("storage.access_key"),
			SecretKey:     v.GetString("storage.secret_key"),
			UseSSL:        v.GetBool("storage.use_ssl"),
			UsePathStyle:  v.GetBool("storage.use_path_style"),
			Prefix:        v.GetString("storage.prefix"),
		},
	}

	if err := v.UnmarshalKey("currency.entries", &cfg.Currency.Entries); err != nil {
		return nil, fmt.Errorf("error reading currency.entries: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "exos-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	// PDF rendering can take a while on a cold browser
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	// No CORS origin fallback: cross-origin requests stay blocked until configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Currency.Default == "" {
		cfg.Currency.Default = amountwords.Cordoba.Code
	}
	if cfg.Print.RenderTimeout == 0 {
		cfg.Print.RenderTimeout = 30 * time.Second
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = StorageBackendNone
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "data/prints"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/api/v1/print/files"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.Prefix == "" {
		cfg.Storage.Prefix = "prints"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.App.Port); err != nil {
		return fmt.Errorf("app.port must be numeric, got %q", c.App.Port)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.HTTP.MaxBodySize < 0 {
		return fmt.Errorf("http.max_body_size cannot be negative")
	}

	table, err := c.Currency.Table()
	if err != nil {
		return fmt.Errorf("currency.entries: %w", err)
	}
	if _, ok := table.Find(c.Currency.Default); !ok {
		return fmt.Errorf("currency.default %q is not a known currency", c.Currency.Default)
	}

	if c.Print.RenderTimeout < 0 {
		return fmt.Errorf("print.render_timeout cannot be negative")
	}

	switch c.Storage.Backend {
	case StorageBackendNone, StorageBackendFileSystem, StorageBackendMemory:
	case StorageBackendS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for the s3 backend")
		}
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("storage.access_key and storage.secret_key are required for the s3 backend")
		}
	default:
		return fmt.Errorf("storage.backend must be one of none, fs, s3, memory, got %q", c.Storage.Backend)
	}
	if c.Storage.RetentionDays < 0 {
		return fmt.Errorf("storage.retention_days cannot be negative")
	}

	if c.IsProduction() {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Storage.Backend == StorageBackendMemory {
			return fmt.Errorf("storage.backend=memory is not allowed in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Table builds the currency table: the built-in entries plus configured extras.
// A configured entry with a built-in code replaces it.
func (c *CurrencyConfig) Table() (*amountwords.CurrencyTable, error) {
	table := amountwords.DefaultCurrencyTable()
	for _, e := range c.Entries {
		err := table.Register(amountwords.Currency{
			Code:     e.Code,
			Singular: e.Singular,
			Plural:   e.Plural,
			Symbol:   e.Symbol,
			Aliases:  e.Aliases,
		})
		if err != nil {
			return nil, err
		}
	}
	return table, nil
}
