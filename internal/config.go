package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/gebo/internal/storage"
	"github.com/starford/gebo/internal/suggest"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
	Linker LinkerConfig      `yaml:"linker"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Linker.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the Markdown vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// LinkerConfig holds suggestion and insertion tuning.
//
// QualityThreshold is the minimum composite score a candidate must reach to
// be suggested. SimilarityThreshold is the lower bar used by the related-notes
// fallback. BackupDir is relative to the vault root and must stay hidden so
// backups never enter the index.
type LinkerConfig struct {
	QualityThreshold    float64 `yaml:"quality_threshold"`
	MaxSuggestions      int     `yaml:"max_suggestions"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	BackupDir           string  `yaml:"backup_dir"`
}

// Validate validates the linker configuration.
func (c *LinkerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.QualityThreshold, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.SimilarityThreshold, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.MaxSuggestions, validation.Required, validation.Min(1)),
	)
}

// SuggestConfig converts the linker settings into a suggestion engine config.
func (c *LinkerConfig) SuggestConfig() suggest.Config {
	cfg := suggest.DefaultConfig()
	if c.QualityThreshold > 0 {
		cfg.QualityThreshold = c.QualityThreshold
	}
	if c.MaxSuggestions > 0 {
		cfg.MaxSuggestions = c.MaxSuggestions
	}
	if c.SimilarityThreshold > 0 {
		cfg.SimilarityThreshold = c.SimilarityThreshold
	}
	return cfg
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	def := suggest.DefaultConfig()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		SQLite: SQLiteConfig{
			Path: "./gebo.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Linker: LinkerConfig{
			QualityThreshold:    def.QualityThreshold,
			MaxSuggestions:      def.MaxSuggestions,
			SimilarityThreshold: def.SimilarityThreshold,
			BackupDir:           storage.DefaultBackupDir,
		},
	}
}
