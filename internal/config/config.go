package config

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Logging   LoggingConfig   `toml:"logging"`
	Screening ScreeningConfig `toml:"screening"`
	Reports   ReportsConfig   `toml:"reports"`
	MCP       MCPConfig       `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// ScreeningConfig contains eligibility screening policy
type ScreeningConfig struct {
	// AssumeFullTimeEnrollment marks enrollment criteria as met. No enrollment
	// data is stored, so turning this off reports them as unsupported.
	AssumeFullTimeEnrollment bool `toml:"assume_full_time_enrollment"`

	// ZeroCriteriaQualifies lets a scholarship with no criteria qualify everyone.
	ZeroCriteriaQualifies bool `toml:"zero_criteria_qualifies"`
}

// ReportsConfig contains report output settings
type ReportsConfig struct {
	DefaultFormat string `toml:"default_format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/sams/sams.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
		Screening: ScreeningConfig{
			AssumeFullTimeEnrollment: true,
			ZeroCriteriaQualifies:    false,
		},
		Reports: ReportsConfig{
			DefaultFormat: "table",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
