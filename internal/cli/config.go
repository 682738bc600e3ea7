package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists at %s\n", configPath)
		fmt.Println("Use 'sams config show' to view current configuration")
		return nil
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Run 'sams seed' to load sample applicants and scholarships")
	fmt.Println("     or 'sams import <file>' to load your own")
	fmt.Println("  2. Run 'sams prescreen' to screen applicants")

	return nil
}

// runConfigShow prints the configuration after file, environment and defaults are merged
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	source := configPath
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		source = "defaults (no config file; run 'sams config init' to create one)"
	}

	fmt.Printf("# Config: %s\n\n", source)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# SAMS Configuration

[database]
path = "~/.local/share/sams/sams.db"

[logging]
level = "info"      # debug, info, warn, error
pretty = true       # human-readable console logs on stderr

[screening]
# Enrollment is not recorded per applicant. When true, enrollment criteria
# count as met; when false they are reported as unsupported.
assume_full_time_enrollment = true
# A scholarship with no criteria qualifies nobody unless this is true.
zero_criteria_qualifies = false

[reports]
default_format = "table"   # table, json, csv

[mcp]
enabled = true
transport = "stdio"
`
