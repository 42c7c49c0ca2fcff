package suite

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdsproject/deployment-smoke-tests/probes"
)

func init() {
	color.NoColor = true
}

func mockService(health, capabilities, mainAPI http.Handler) http.Handler {
	notFound := httphelpers.HandlerWithStatus(http.StatusNotFound)
	return httphelpers.HandlerForPath("/health", health,
		httphelpers.HandlerForPath("/api/workflow-capabilities", capabilities,
			httphelpers.HandlerForPath("/api/", mainAPI, notFound)))
}

func healthyService() http.Handler {
	return mockService(
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"orchestrator":        "ok",
			"workflows_available": 3,
			"platform":            "vercel",
		}, nil),
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"available_workflows": []string{"gdp", "weather", "custom"},
			"platform":            "vercel",
		}, nil),
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"task_id":       "abc123",
			"workflow_type": "gdp",
			"status":        "completed",
			"result": map[string]interface{}{
				"results":     map[string]interface{}{"answer": 1},
				"plot_base64": "xyz",
			},
		}, nil),
	)
}

func TestRunLocalAllProbesPass(t *testing.T) {
	httphelpers.WithServer(healthyService(), func(server *httptest.Server) {
		var out bytes.Buffer
		results := NewRunner(&out, nil).RunLocal(server.URL)

		require.True(t, results.OK())
		assert.Equal(t, probes.StatusSuccess, results.Health.Status)
		assert.Equal(t, probes.StatusSuccess, results.Capabilities.Status)
		assert.Equal(t, probes.StatusSuccess, results.MainAPI.Status)
		assert.False(t, results.Timed)

		printed := out.String()
		assert.Contains(t, printed, "LOCAL SERVER TESTS")
		assert.Contains(t, printed, "Orchestrator: ok")
		assert.Contains(t, printed, "Workflows: 3")
		assert.Contains(t, printed, "Available workflows: 3")
		assert.Contains(t, printed, "- gdp")
		assert.Contains(t, printed, "Task ID: abc123")
		assert.Contains(t, printed, "Analysis results available: true")
		assert.Contains(t, printed, "Visualization generated: true")
	})
}

func TestRunLocalHealthFailureDoesNotAbortLaterProbes(t *testing.T) {
	service := mockService(
		httphelpers.HandlerWithStatus(http.StatusInternalServerError),
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"available_workflows": []string{"gdp"},
		}, nil),
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"task_id": "abc123",
			"status":  "completed",
		}, nil),
	)
	httphelpers.WithServer(service, func(server *httptest.Server) {
		var out bytes.Buffer
		results := NewRunner(&out, nil).RunLocal(server.URL)

		assert.Equal(t, probes.StatusError, results.Health.Status)
		assert.Equal(t, probes.StatusSuccess, results.Capabilities.Status)
		assert.Equal(t, probes.StatusSuccess, results.MainAPI.Status)
		assert.False(t, results.OK())

		// Every probe still ran.
		printed := out.String()
		assert.Contains(t, printed, "Testing health endpoint...")
		assert.Contains(t, printed, "Testing capabilities endpoint...")
		assert.Contains(t, printed, "Testing main API endpoint...")
	})
}

func TestRunDeploymentTimesMainProbeAndPrintsPlatformDetail(t *testing.T) {
	service := mockService(
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"orchestrator": "ok",
			"platform":     "vercel",
		}, nil),
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"available_workflows": []string{"gdp"},
			"platform":            "vercel",
		}, nil),
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{
			"task_id":       "abc123",
			"workflow_type": "gdp",
			"status":        "completed",
			"processing_info": map[string]interface{}{
				"platform":          "vercel",
				"enhanced_features": []string{"caching", "logging"},
			},
		}, nil),
	)
	httphelpers.WithServer(service, func(server *httptest.Server) {
		var out bytes.Buffer
		results := NewRunner(&out, nil).RunDeployment(server.URL)

		require.True(t, results.OK())
		assert.True(t, results.Timed)
		assert.GreaterOrEqual(t, results.Duration.Nanoseconds(), int64(0))

		printed := out.String()
		assert.Contains(t, printed, "VERCEL DEPLOYMENT TESTS")
		assert.Contains(t, printed, "may take longer on cold start")
		assert.Contains(t, printed, "(took ")
		assert.Contains(t, printed, "Platform: vercel")
		assert.Contains(t, printed, "Features: caching, logging")
	})
}

func TestEnvironmentResultsOKIsStrictAnd(t *testing.T) {
	pass := probes.Result{Status: probes.StatusSuccess}
	fail := probes.Result{Status: probes.StatusError, Error: "boom"}

	assert.True(t, EnvironmentResults{Health: pass, Capabilities: pass, MainAPI: pass}.OK())
	assert.False(t, EnvironmentResults{Health: fail, Capabilities: pass, MainAPI: pass}.OK())
	assert.False(t, EnvironmentResults{Health: pass, Capabilities: fail, MainAPI: pass}.OK())
	assert.False(t, EnvironmentResults{Health: pass, Capabilities: pass, MainAPI: fail}.OK())
}

func TestProbesReturnsExecutionOrder(t *testing.T) {
	results := EnvironmentResults{
		Health:       probes.Result{Status: probes.StatusSuccess},
		Capabilities: probes.Result{Status: probes.StatusError, Error: "x"},
		MainAPI:      probes.Result{Status: probes.StatusSuccess},
	}
	named := results.Probes()
	require.Len(t, named, 3)
	assert.Equal(t, ProbeHealth, named[0].Name)
	assert.Equal(t, ProbeCapabilities, named[1].Name)
	assert.Equal(t, ProbeMainAPI, named[2].Name)
	assert.Equal(t, probes.StatusError, named[1].Result.Status)
}
