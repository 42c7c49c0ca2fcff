// Package summary turns collected probe bundles into the closing rollup and
// next-step guidance. It performs no network or file I/O; everything here is
// a reduction over results that were already gathered.
package summary

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	units "github.com/docker/go-units"
	"github.com/fatih/color"

	"github.com/tdsproject/deployment-smoke-tests/suite"
)

// A deployment answering the main probe slower than this is assumed to have
// gone through a serverless cold start. That is expected, not a failure.
const coldStartThreshold = 10 * time.Second

// Environment names used by the CLI.
const (
	EnvLocal  = "local"
	EnvVercel = "vercel"
)

// Environment pairs a target name with the results collected against it.
type Environment struct {
	Name    string
	URL     string
	Results suite.EnvironmentResults
}

// Print writes the cross-environment test summary: one pass/fail marker per
// probe, error detail for failures, and guidance on what to do next.
func Print(out io.Writer, envs []Environment) {
	banner(out, "TEST SUMMARY")

	for _, env := range envs {
		fmt.Fprintf(out, "\n%s Environment:\n", strings.ToUpper(env.Name))
		for _, p := range env.Results.Probes() {
			if p.Result.OK() {
				fmt.Fprintf(out, "  %s %s: %s\n", color.GreenString("✓"), p.Name, p.Result.Status)
			} else {
				fmt.Fprintf(out, "  %s %s: %s\n", color.RedString("✗"), p.Name, p.Result.Status)
				fmt.Fprintf(out, "    Error: %s\n", errorText(p.Result.Error))
			}
		}
	}

	fmt.Fprintln(out, "\nNext steps:")
	for _, env := range envs {
		switch env.Name {
		case EnvLocal:
			printLocalGuidance(out, env)
		case EnvVercel:
			printDeploymentGuidance(out, env)
		}
	}
}

func printLocalGuidance(out io.Writer, env Environment) {
	if env.Results.OK() {
		fmt.Fprintf(out, "%s Local tests passed - ready for Vercel deployment\n", color.GreenString("✓"))
		fmt.Fprintln(out, "   Run: vercel --prod")
		return
	}
	fmt.Fprintf(out, "%s Local tests failed - fix issues before deploying\n", color.RedString("✗"))
	fmt.Fprintln(out, "   Check dependencies: pip install -r requirements-vercel.txt")
	fmt.Fprintln(out, "   Check server: uvicorn api.index:app --reload")
}

func printDeploymentGuidance(out io.Writer, env Environment) {
	if env.Results.OK() {
		fmt.Fprintf(out, "%s Vercel deployment working correctly\n", color.GreenString("✓"))
		if env.Results.Timed && env.Results.Duration > coldStartThreshold {
			fmt.Fprintf(out, "   Cold start took %s - this is normal for the first request\n",
				units.HumanDuration(env.Results.Duration))
		}
		return
	}
	fmt.Fprintf(out, "%s Vercel deployment has issues\n", color.RedString("✗"))
	fmt.Fprintln(out, "   Check environment variables in the Vercel dashboard")
	fmt.Fprintln(out, "   Check deployment logs in Vercel")
	if env.URL != "" {
		var cmd commandBuilder
		cmd.add("deploycheck", "smoke", "--vercel", env.URL)
		fmt.Fprintf(out, "   Re-run after fixing: %s\n", cmd)
	}
}

func errorText(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// commandBuilder assembles a copy-pasteable shell command, quoting each
// argument as needed.
type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

func banner(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", 50))
}
