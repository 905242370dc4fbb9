package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/records"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Data source configuration
	Source      string
	DatabaseURL string

	// Run configuration
	OutDir             string
	RunID              string
	PolicyFile         string
	GapLimit           int
	ActionableStatuses string

	// Artifact delivery configuration
	UploadURL    string
	UploadFolder string
	UploadToken  string

	// Executive summary configuration
	Summary      bool
	SummaryModel string
	GeminiAPIKey string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.shadowmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Bind credential variables commonly set through .env files
	bindSecrets()

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".shadowmap")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	// Build config from viper
	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		// Config file
		ConfigFile: viper.ConfigFileUsed(),

		// Data source configuration
		Source:      viper.GetString("source"),
		DatabaseURL: viper.GetString("database_url"),

		// Run configuration
		OutDir:             viper.GetString("out_dir"),
		RunID:              viper.GetString("run_id"),
		PolicyFile:         viper.GetString("policy_file"),
		GapLimit:           viper.GetInt("gap_limit"),
		ActionableStatuses: viper.GetString("actionable_statuses"),

		// Artifact delivery configuration
		UploadURL:    viper.GetString("upload_url"),
		UploadFolder: viper.GetString("upload_folder"),
		UploadToken:  viper.GetString("upload_token"),

		// Executive summary configuration
		Summary:      viper.GetBool("summary"),
		SummaryModel: viper.GetString("summary_model"),
		GeminiAPIKey: viper.GetString("gemini_api_key"),

		// Logging configuration
		LogLevel:  viper.GetString("log_level"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Set defaults
	if config.OutDir == "" {
		config.OutDir = constants.DefaultOutputDir
	}
	if config.SummaryModel == "" {
		config.SummaryModel = constants.DefaultSummaryModel
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// actionableStatuses parses the comma-separated status list into typed
// ticket statuses, dropping empty entries.
func (c *Config) actionableStatuses() []records.TicketStatus {
	if c.ActionableStatuses == "" {
		return nil
	}

	var statuses []records.TicketStatus
	for _, s := range strings.Split(c.ActionableStatuses, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		statuses = append(statuses, records.TicketStatus(s))
	}
	return statuses
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// Try to load .env files in order of precedence
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindSecrets explicitly binds credential environment variables to Viper.
func bindSecrets() {
	// Credentials that might be in .env files
	secrets := []string{
		"DATABASE_URL",
		"GEMINI_API_KEY",
		"UPLOAD_TOKEN",
	}

	for _, key := range secrets {
		if err := viper.BindEnv(key); err != nil {
			// Log warning but continue - this isn't critical
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
