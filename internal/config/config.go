package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Preview  PreviewConfig  `mapstructure:"preview"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"` // empty uses the embedded schema
}

// StorageConfig holds saved-PDF storage configuration
type StorageConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// AssetsConfig holds logo / signature resolution settings
type AssetsConfig struct {
	BaseDir       string        `mapstructure:"base_dir"`
	AllowRemote   bool          `mapstructure:"allow_remote"`
	MaxBytes      int64         `mapstructure:"max_bytes"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
}

// LayoutConfig holds the engine's configurable labels and margins
type LayoutConfig struct {
	RightMargin    float64 `mapstructure:"right_margin"`
	TaxLabel       string  `mapstructure:"tax_label"`
	CurrencySymbol string  `mapstructure:"currency_symbol"`
	Producer       string  `mapstructure:"producer"`
}

// PreviewConfig holds PNG preview settings
type PreviewConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	DPI     float64 `mapstructure:"dpi"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Address returns host:port for the HTTP listener
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load loads configuration from file and environment variables.
// An empty configPath uses defaults and environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("INVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 16<<20)

	v.SetDefault("database.path", "data/invoices.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.migrations_dir", "")

	v.SetDefault("storage.output_dir", "data/invoices")

	v.SetDefault("assets.base_dir", "assets")
	v.SetDefault("assets.allow_remote", true)
	v.SetDefault("assets.max_bytes", 5<<20)
	v.SetDefault("assets.fetch_timeout", 10*time.Second)
	v.SetDefault("assets.retry_attempts", 3)

	v.SetDefault("layout.right_margin", 10.0)
	v.SetDefault("layout.tax_label", "NY Income Tax")
	v.SetDefault("layout.currency_symbol", "$")
	v.SetDefault("layout.producer", "invoice-renderer")

	v.SetDefault("preview.enabled", true)
	v.SetDefault("preview.dpi", 100.0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds the short-form environment variables used in deployments
func bindEnvVars(v *viper.Viper) error {
	bindings := map[string]string{
		"server.port":        "PORT",
		"database.path":      "DATABASE_PATH",
		"storage.output_dir": "OUTPUT_DIR",
		"assets.base_dir":    "ASSETS_DIR",
		"logger.level":       "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "INVOICE_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Storage.OutputDir == "" {
		return fmt.Errorf("storage.output_dir is required")
	}
	if c.Assets.MaxBytes <= 0 {
		return fmt.Errorf("assets.max_bytes must be positive")
	}
	if c.Assets.RetryAttempts < 1 {
		return fmt.Errorf("assets.retry_attempts must be at least 1")
	}
	if c.Layout.RightMargin < 0 || c.Layout.RightMargin >= 105 {
		return fmt.Errorf("layout.right_margin out of range: %v", c.Layout.RightMargin)
	}
	if c.Preview.Enabled && c.Preview.DPI <= 0 {
		return fmt.Errorf("preview.dpi must be positive")
	}
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console: %q", c.Logger.Format)
	}
	return nil
}
