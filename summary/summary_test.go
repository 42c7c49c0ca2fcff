package summary

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/tdsproject/deployment-smoke-tests/probes"
	"github.com/tdsproject/deployment-smoke-tests/suite"
)

func init() {
	color.NoColor = true
}

func passingBundle() suite.EnvironmentResults {
	pass := probes.Result{Status: probes.StatusSuccess}
	return suite.EnvironmentResults{Health: pass, Capabilities: pass, MainAPI: pass}
}

func failingBundle(message string) suite.EnvironmentResults {
	b := passingBundle()
	b.MainAPI = probes.Result{Status: probes.StatusError, Error: message}
	return b
}

func TestPrintLocalSuccessAdvisesDeployment(t *testing.T) {
	var out bytes.Buffer
	Print(&out, []Environment{{Name: EnvLocal, URL: "http://localhost:8000", Results: passingBundle()}})

	printed := out.String()
	assert.Contains(t, printed, "TEST SUMMARY")
	assert.Contains(t, printed, "LOCAL Environment:")
	assert.Contains(t, printed, "✓ health: success")
	assert.Contains(t, printed, "✓ main_api: success")
	assert.Contains(t, printed, "Local tests passed - ready for Vercel deployment")
}

func TestPrintLocalFailureAdvisesFixingFirst(t *testing.T) {
	var out bytes.Buffer
	Print(&out, []Environment{{Name: EnvLocal, Results: failingBundle("connection refused")}})

	printed := out.String()
	assert.Contains(t, printed, "✗ main_api: error")
	assert.Contains(t, printed, "Error: connection refused")
	assert.Contains(t, printed, "Local tests failed - fix issues before deploying")
	assert.Contains(t, printed, "pip install -r requirements-vercel.txt")
	assert.Contains(t, printed, "uvicorn api.index:app --reload")
}

func TestPrintDeploymentColdStartAnnotation(t *testing.T) {
	results := passingBundle()
	results.Timed = true
	results.Duration = 12 * time.Second

	var out bytes.Buffer
	Print(&out, []Environment{{Name: EnvVercel, URL: "https://x.vercel.app", Results: results}})

	printed := out.String()
	assert.Contains(t, printed, "Vercel deployment working correctly")
	assert.Contains(t, printed, "Cold start took")
	assert.Contains(t, printed, "this is normal for the first request")
}

func TestPrintDeploymentFastRunHasNoColdStartNote(t *testing.T) {
	results := passingBundle()
	results.Timed = true
	results.Duration = 2 * time.Second

	var out bytes.Buffer
	Print(&out, []Environment{{Name: EnvVercel, Results: results}})

	assert.NotContains(t, out.String(), "Cold start took")
}

func TestPrintDeploymentFailureIncludesRerunCommand(t *testing.T) {
	var out bytes.Buffer
	Print(&out, []Environment{{
		Name:    EnvVercel,
		URL:     "https://myapp.vercel.app",
		Results: failingBundle("unexpected response status 500"),
	}})

	printed := out.String()
	assert.Contains(t, printed, "Vercel deployment has issues")
	assert.Contains(t, printed, "Check environment variables in the Vercel dashboard")
	assert.Contains(t, printed, "deploycheck smoke --vercel https://myapp.vercel.app")
}

func TestPrintErrorWithNoMessageShowsUnknown(t *testing.T) {
	results := passingBundle()
	results.Health = probes.Result{Status: probes.StatusError}

	var out bytes.Buffer
	Print(&out, []Environment{{Name: EnvLocal, Results: results}})

	assert.Contains(t, out.String(), "Error: Unknown")
}
