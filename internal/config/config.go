package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Review   ReviewConfig   `mapstructure:"review" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// ReviewConfig contains the review and answer-matching settings.
type ReviewConfig struct {
	// Sensitivity selects the fuzzy matcher preset.
	Sensitivity string `mapstructure:"sensitivity" validate:"required,oneof=strict medium lenient"`

	// FuzzyMatching enables matcher-based answer validation for sessions
	// that do not set it explicitly.
	FuzzyMatching bool `mapstructure:"fuzzy_matching"`
}
