package cmd

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X github.com/tdsproject/deployment-smoke-tests/cmd.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "deploycheck",
	Short: "Smoke tests and static validation for the analysis API deployment",
	Long: `deploycheck exercises a running deployment of the data-analysis API
end to end and statically validates the Vercel deployment artifacts
before a deploy is attempted.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}
