package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tdsproject/deployment-smoke-tests/validation"
)

var validateOpts struct {
	dir string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the required deployment files are present and well-formed",
	Long: `Checks the fixed set of Vercel deployment artifacts for existence,
verifies that vercel.json is valid JSON with builds and routes sections,
and scans api/index.py for the FastAPI symbols the handler needs.

The verdict is printed; the exit code stays zero either way.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := validation.Validate(validateOpts.dir)
		validation.Print(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateOpts.dir, "dir", ".", "project directory to validate")
}
