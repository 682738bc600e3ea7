package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshdeandev/sams/internal/database"
)

// setupCLI points the commands at a temp config and database
func setupCLI(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "sams-cli-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "sams.db")
	cfg := fmt.Sprintf(`
[database]
path = %q

[logging]
level = "error"
pretty = false

[reports]
default_format = "json"
`, dbPath)

	cfgPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	resetFlags()
	t.Cleanup(resetFlags)

	return cfgPath
}

// resetFlags clears flag values that persist between Execute calls
func resetFlags() {
	outputFmt = ""
	logLevel = ""
	prescreenScholarship = ""
	prescreenFile = ""
	decideComment = ""
	decideCreateAward = false
	decideAmount = 0
	awardsStatus = ""
	awardsScholarship = ""
}

func run(t *testing.T, cfgPath string, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	return rootCmd.ExecuteContext(context.Background())
}

func TestCommands_SeedDecidePrescreen(t *testing.T) {
	cfgPath := setupCLI(t)

	if err := run(t, cfgPath, "seed"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := run(t, cfgPath, "decide", "12345678", "Engineering Excellence Scholarship", "awarded",
		"--comment", "Excellent candidate", "--create-award"); err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if err := run(t, cfgPath, "prescreen"); err != nil {
		t.Fatalf("prescreen failed: %v", err)
	}

	reportPath := filepath.Join(filepath.Dir(cfgPath), "report.csv")
	if err := run(t, cfgPath, "prescreen", "-o", "csv", "--file", reportPath); err != nil {
		t.Fatalf("prescreen to file failed: %v", err)
	}
	if info, err := os.Stat(reportPath); err != nil || info.Size() == 0 {
		t.Errorf("expected report file to be written, err=%v", err)
	}

	db, err := database.Open(filepath.Join(filepath.Dir(cfgPath), "sams.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	stats, err := db.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Applicants != 3 || stats.Scholarships != 2 || stats.Awarded != 1 || stats.ActiveAwards != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestCommands_Errors(t *testing.T) {
	cfgPath := setupCLI(t)

	if err := run(t, cfgPath, "seed"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"invalid decision", []string{"decide", "12345678", "CS Leadership Scholarship", "maybe"}},
		{"unknown applicant", []string{"decide", "nope", "CS Leadership Scholarship", "awarded"}},
		{"unknown applicant show", []string{"applicants", "show", "nope"}},
		{"bad award status filter", []string{"awards", "list", "--status", "lost"}},
		{"missing import file", []string{"import", "/nonexistent/file.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(t, cfgPath, tt.args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}
