// Package suite sequences the endpoint probes for one target environment and
// collects them into an EnvironmentResults bundle.
package suite

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tdsproject/deployment-smoke-tests/logging"
	"github.com/tdsproject/deployment-smoke-tests/probes"
	"github.com/tdsproject/deployment-smoke-tests/servicedef"
)

// Probe names as they appear in reports and in the history store.
const (
	ProbeHealth       = "health"
	ProbeCapabilities = "capabilities"
	ProbeMainAPI      = "main_api"
)

// EnvironmentResults is the bundle of probe outcomes for one environment.
// Duration is only meaningful when Timed is set; deployment runs time the
// main API probe to surface cold-start latency.
type EnvironmentResults struct {
	Health       probes.Result
	Capabilities probes.Result
	MainAPI      probes.Result
	Duration     time.Duration
	Timed        bool
}

// OK reports whether every probe in the bundle succeeded.
func (e EnvironmentResults) OK() bool {
	return e.Health.OK() && e.Capabilities.OK() && e.MainAPI.OK()
}

// NamedResult pairs a probe result with its reporting name.
type NamedResult struct {
	Name   string
	Result probes.Result
}

// Probes returns the individual results in execution order.
func (e EnvironmentResults) Probes() []NamedResult {
	return []NamedResult{
		{ProbeHealth, e.Health},
		{ProbeCapabilities, e.Capabilities},
		{ProbeMainAPI, e.MainAPI},
	}
}

// Runner executes the fixed probe sequence against a base URL. Narration is
// written to out; request/response detail goes to the debug logger.
type Runner struct {
	out    io.Writer
	logger logging.Logger
}

func NewRunner(out io.Writer, logger logging.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &Runner{out: out, logger: logger}
}

// RunLocal exercises a local development server. The probes always run in
// the same order, cheapest first, and every probe runs even if an earlier
// one failed, so a single pass reports everything that is broken.
func (r *Runner) RunLocal(baseURL string) EnvironmentResults {
	fmt.Fprintf(r.out, "Testing local server at %s\n", baseURL)
	banner(r.out, "LOCAL SERVER TESTS")
	client := probes.NewClient(baseURL, r.out, r.logger)

	var results EnvironmentResults

	results.Health = client.CheckHealth()
	fmt.Fprintf(r.out, "Health: %s\n", results.Health.Status)
	r.printHealthDetail(results.Health, false)

	results.Capabilities = client.CheckCapabilities()
	fmt.Fprintf(r.out, "Capabilities: %s\n", results.Capabilities.Status)
	r.printCapabilitiesDetail(results.Capabilities, false)

	results.MainAPI = client.RunAnalysis()
	fmt.Fprintf(r.out, "Main API: %s\n", results.MainAPI.Status)
	r.printAnalysisDetail(results.MainAPI, false)

	return results
}

// RunDeployment exercises a remote (serverless) deployment. Identical probe
// sequencing to RunLocal, but the main API probe is wall-clock timed because
// the first request after a deploy can take much longer, and platform
// diagnostics are printed when the payloads include them.
func (r *Runner) RunDeployment(url string) EnvironmentResults {
	fmt.Fprintf(r.out, "Testing Vercel deployment at %s\n", url)
	banner(r.out, "VERCEL DEPLOYMENT TESTS")
	client := probes.NewClient(url, r.out, r.logger)

	var results EnvironmentResults

	results.Health = client.CheckHealth()
	fmt.Fprintf(r.out, "Health: %s\n", results.Health.Status)
	r.printHealthDetail(results.Health, true)

	results.Capabilities = client.CheckCapabilities()
	fmt.Fprintf(r.out, "Capabilities: %s\n", results.Capabilities.Status)
	r.printCapabilitiesDetail(results.Capabilities, true)

	fmt.Fprintln(r.out, "Testing main API (may take longer on cold start)...")
	start := time.Now()
	results.MainAPI = client.RunAnalysis()
	results.Duration = time.Since(start)
	results.Timed = true
	fmt.Fprintf(r.out, "Main API: %s (took %.1fs)\n", results.MainAPI.Status, results.Duration.Seconds())
	r.printAnalysisDetail(results.MainAPI, true)

	return results
}

func (r *Runner) printHealthDetail(res probes.Result, remote bool) {
	if !res.OK() {
		return
	}
	health := servicedef.HealthStatusFromValue(res.Data)
	if remote {
		fmt.Fprintf(r.out, "  Platform: %s\n", health.Platform.OrElse("unknown"))
	}
	fmt.Fprintf(r.out, "  Orchestrator: %s\n", health.Orchestrator.OrElse("unknown"))
	fmt.Fprintf(r.out, "  Workflows: %d\n", health.WorkflowsAvailable.OrElse(0))
}

func (r *Runner) printCapabilitiesDetail(res probes.Result, remote bool) {
	if !res.OK() {
		return
	}
	caps := servicedef.WorkflowCapabilitiesFromValue(res.Data)
	fmt.Fprintf(r.out, "  Available workflows: %d\n", len(caps.AvailableWorkflows))
	if remote {
		fmt.Fprintf(r.out, "  Platform: %s\n", caps.Platform.OrElse("unknown"))
		return
	}
	for _, workflow := range caps.AvailableWorkflows {
		fmt.Fprintf(r.out, "    - %s\n", workflow)
	}
}

func (r *Runner) printAnalysisDetail(res probes.Result, remote bool) {
	if !res.OK() {
		return
	}
	analysis := servicedef.AnalysisResponseFromValue(res.Data)
	fmt.Fprintf(r.out, "  Task ID: %s\n", analysis.TaskID.OrElse("unknown"))
	fmt.Fprintf(r.out, "  Workflow: %s\n", analysis.WorkflowType.OrElse("unknown"))
	fmt.Fprintf(r.out, "  Status: %s\n", analysis.TaskStatus.OrElse("unknown"))

	if remote {
		if analysis.Processing != nil {
			fmt.Fprintf(r.out, "  Platform: %s\n", analysis.Processing.Platform.OrElse("unknown"))
			fmt.Fprintf(r.out, "  Features: %s\n", strings.Join(analysis.Processing.EnhancedFeatures, ", "))
		}
		return
	}
	if analysis.Result != nil {
		fmt.Fprintf(r.out, "  Result keys: %s\n", strings.Join(analysis.Result.Keys, ", "))
		if analysis.Result.ResultsPresent {
			fmt.Fprintf(r.out, "  Analysis results available: %t\n", analysis.Result.ResultsAvailable)
		}
		if analysis.Result.PlotPresent {
			fmt.Fprintf(r.out, "  Visualization generated: %t\n", analysis.Result.PlotGenerated)
		}
	}
}

func banner(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", 50))
}
