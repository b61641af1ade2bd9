// Package config handles loading and validation of application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Assets   AssetsConfig   `mapstructure:"assets"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AssetsConfig locates the read-only image assets served by the image
// endpoints: the directory holding the JPEG files and the bundled
// catalog JSON returned for every catalog request.
type AssetsConfig struct {
	Dir         string `mapstructure:"dir"          validate:"required"`
	CatalogPath string `mapstructure:"catalog_path" validate:"required"`
}
