package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/config"
	"github.com/joshdeandev/sams/internal/database"
	"github.com/joshdeandev/sams/internal/logger"
	"github.com/joshdeandev/sams/internal/output"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	logLevel   string
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sams",
	Short: "Scholarship application management and prescreening",
	Long: `sams keeps scholarship applicants, scholarships and award decisions
in a local database and screens applicants against eligibility criteria.

It provides:
  - Applicant and scholarship intake from YAML or JSON
  - Prescreening reports with per-criterion detail
  - Award decisions, awards and reviewer information requests
  - MCP server for AI assistant integration`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/sams/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "",
		"output format (table, json, csv); defaults to reports.default_format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(home, ".config", "sams", "config.toml")
	}
}

// session is what most commands need: config, an open store and a logger
type session struct {
	cfg *config.Config
	db  *database.DB
	log zerolog.Logger
}

func (s *session) Close() error {
	return s.db.Close()
}

// format returns the --output flag, falling back to the configured default
func (s *session) format() string {
	if outputFmt != "" {
		return outputFmt
	}
	return s.cfg.Reports.DefaultFormat
}

func (s *session) output(data any) error {
	return output.Output(s.format(), data)
}

// openSession loads configuration, configures logging and opens the database
func openSession(component string) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(level),
		Pretty: cfg.Logging.Pretty,
	})

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &session{cfg: cfg, db: db, log: logger.New(component)}, nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sams %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
