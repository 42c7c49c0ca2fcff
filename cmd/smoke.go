package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdsproject/deployment-smoke-tests/config"
	"github.com/tdsproject/deployment-smoke-tests/history"
	"github.com/tdsproject/deployment-smoke-tests/logging"
	"github.com/tdsproject/deployment-smoke-tests/suite"
	"github.com/tdsproject/deployment-smoke-tests/summary"
)

var smokeOpts struct {
	local       bool
	vercelURL   string
	both        bool
	configPath  string
	historyPath string
	debug       bool
	noWait      bool
}

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Run the endpoint smoke tests against a deployment",
	Long: `Runs the fixed probe sequence (health, capabilities, main API) against a
local development server, a Vercel deployment, or both, then prints a
pass/fail summary with next-step guidance.

Probe failures are reported in the printed summary only; the exit code
stays zero either way.`,
	RunE: runSmoke,
}

func init() {
	rootCmd.AddCommand(smokeCmd)
	smokeCmd.Flags().BoolVar(&smokeOpts.local, "local", false, "test the local development server")
	smokeCmd.Flags().StringVar(&smokeOpts.vercelURL, "vercel", "", "test the Vercel deployment at this URL")
	smokeCmd.Flags().BoolVar(&smokeOpts.both, "both", false, "test local plus the configured deployment URL")
	smokeCmd.Flags().StringVar(&smokeOpts.configPath, "config", "", "path to the harness config file")
	smokeCmd.Flags().StringVar(&smokeOpts.historyPath, "history", "", "record results to this SQLite database")
	smokeCmd.Flags().BoolVar(&smokeOpts.debug, "debug", false, "dump captured request/response debug detail after each environment")
	smokeCmd.Flags().BoolVar(&smokeOpts.noWait, "no-wait", false, "skip the local-server readiness pause")
	smokeCmd.MarkFlagsMutuallyExclusive("vercel", "both")
}

func runSmoke(cmd *cobra.Command, args []string) error {
	if !smokeOpts.local && !smokeOpts.both && smokeOpts.vercelURL == "" {
		return errors.New("nothing to test: use --local, --vercel <url> or --both")
	}

	out := cmd.OutOrStdout()
	cfg, err := config.Load(smokeOpts.configPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "API Testing Suite for the analysis service")
	var envs []summary.Environment

	if smokeOpts.local || smokeOpts.both {
		fmt.Fprintln(out, "\nStarting local server tests...")
		fmt.Fprintln(out, "Make sure your local server is running with:")
		fmt.Fprintln(out, "  uvicorn api.index:app --reload")
		if !smokeOpts.noWait {
			fmt.Fprint(out, "\nPress Enter when the server is ready...")
			// EOF just means there is no operator; proceed.
			_, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			fmt.Fprintln(out)
		}
		runner, capture := newSmokeRunner(out)
		results := runner.RunLocal(cfg.LocalURL)
		dumpDebugOutput(out, capture)
		envs = append(envs, summary.Environment{Name: summary.EnvLocal, URL: cfg.LocalURL, Results: results})
	}

	switch {
	case smokeOpts.vercelURL != "":
		fmt.Fprintln(out, "\nStarting Vercel deployment tests...")
		runner, capture := newSmokeRunner(out)
		results := runner.RunDeployment(smokeOpts.vercelURL)
		dumpDebugOutput(out, capture)
		envs = append(envs, summary.Environment{Name: summary.EnvVercel, URL: smokeOpts.vercelURL, Results: results})
	case smokeOpts.both:
		url := cfg.DeploymentURL
		fmt.Fprintf(out, "\nTesting configured deployment URL: %s\n", url)
		fmt.Fprintln(out, "(This will fail unless you configure your own deployment URL)")
		runner, capture := newSmokeRunner(out)
		results := runner.RunDeployment(url)
		dumpDebugOutput(out, capture)
		envs = append(envs, summary.Environment{Name: summary.EnvVercel, URL: url, Results: results})
	}

	summary.Print(out, envs)
	recordHistory(cmd, cfg, envs)

	// Failures were reported above; the exit code stays zero regardless.
	return nil
}

// newSmokeRunner builds the runner for one environment. With --debug the
// probes log into a fresh CapturingLogger whose contents are dumped after
// that environment's run; without it the detail is discarded.
func newSmokeRunner(out io.Writer) (*suite.Runner, *logging.CapturingLogger) {
	if !smokeOpts.debug {
		return suite.NewRunner(out, nil), nil
	}
	capture := &logging.CapturingLogger{}
	return suite.NewRunner(out, capture), capture
}

func dumpDebugOutput(out io.Writer, capture *logging.CapturingLogger) {
	if capture == nil {
		return
	}
	output := capture.Output()
	if len(output) == 0 {
		return
	}
	fmt.Fprintln(out, "\nDebug output:")
	output.Dump(out, "  DEBUG ")
}

func recordHistory(cmd *cobra.Command, cfg config.Config, envs []summary.Environment) {
	path := smokeOpts.historyPath
	if path == "" {
		path = cfg.HistoryPath
	}
	if path == "" {
		return
	}

	ctx := cmd.Context()
	store, err := history.Open(ctx, path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not open history database: %s\n", err)
		return
	}
	defer store.Close()

	startedAt := time.Now()
	for _, env := range envs {
		if err := store.RecordRun(ctx, env.Name, startedAt, env.Results); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not record %s run: %s\n", env.Name, err)
		}
	}
}
