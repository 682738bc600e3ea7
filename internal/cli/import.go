package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/intake"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import applicants and scholarships from YAML or JSON",
	Long: `Import an intake document with top-level "applicants" and
"scholarships" lists. Files ending in .json are read as JSON, anything
else as YAML.

Applicants are matched by student_id and scholarships by name; existing
records are updated in place.

Examples:
  sams import applicants.yaml
  sams import export.json -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	doc, err := intake.LoadFile(args[0])
	if err != nil {
		return err
	}

	s, err := openSession("intake")
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := intake.Import(cmd.Context(), s.db, doc)
	if err != nil {
		return fmt.Errorf("import failed after %d applicant(s), %d scholarship(s): %w",
			res.Applicants, res.Scholarships, err)
	}

	s.log.Info().Str("file", args[0]).Int("applicants", res.Applicants).Int("scholarships", res.Scholarships).Msg("Imported")
	return s.output(&res)
}
