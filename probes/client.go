// Package probes issues the individual HTTP checks against a deployment of
// the analysis API and normalizes every outcome into a Result.
package probes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"time"

	"github.com/fatih/color"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/tdsproject/deployment-smoke-tests/logging"
	"github.com/tdsproject/deployment-smoke-tests/workload"
)

// Lightweight GET probes get a short timeout; the analysis POST triggers
// real processing and may hit a serverless cold start, so it gets far more.
const (
	quickProbeTimeout = 30 * time.Second
	analysisTimeout   = 300 * time.Second
)

// Client issues the smoke-test probes against one base URL. Progress lines
// are written to out as each probe runs; request/response detail goes to the
// debug logger.
type Client struct {
	baseURL string
	out     io.Writer
	logger  logging.Logger
	quick   *http.Client
	slow    *http.Client
}

// NewClient creates a Client with the standard probe timeouts.
func NewClient(baseURL string, out io.Writer, logger logging.Logger) *Client {
	return NewClientWithTimeouts(baseURL, quickProbeTimeout, analysisTimeout, out, logger)
}

// NewClientWithTimeouts creates a Client with explicit timeouts. Tests use
// this to simulate probe timeouts without waiting 30 seconds.
func NewClientWithTimeouts(
	baseURL string,
	quickTimeout time.Duration,
	slowTimeout time.Duration,
	out io.Writer,
	logger logging.Logger,
) *Client {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &Client{
		baseURL: baseURL,
		out:     out,
		logger:  logger,
		quick:   &http.Client{Timeout: quickTimeout},
		slow:    &http.Client{Timeout: slowTimeout},
	}
}

// BaseURL returns the URL the client was created for.
func (c *Client) BaseURL() string { return c.baseURL }

// CheckHealth probes GET /health.
func (c *Client) CheckHealth() Result {
	fmt.Fprintln(c.out, "Testing health endpoint...")
	res := c.get("/health", logging.Prefixed(c.logger, "health"))
	c.report("Health check", res)
	return res
}

// CheckCapabilities probes GET /api/workflow-capabilities.
func (c *Client) CheckCapabilities() Result {
	fmt.Fprintln(c.out, "Testing capabilities endpoint...")
	res := c.get("/api/workflow-capabilities", logging.Prefixed(c.logger, "capabilities"))
	c.report("Capabilities check", res)
	return res
}

// RunAnalysis probes POST /api/ with a synthetic multipart workload: the
// generated questions file plus the two processing form fields. The
// temporary questions file is removed on every exit path.
func (c *Client) RunAnalysis() Result {
	fmt.Fprintln(c.out, "Testing main API endpoint...")
	logger := logging.Prefixed(c.logger, "main_api")

	questionsPath, err := workload.CreateQuestionsFile()
	if err != nil {
		res := errorResult(err)
		c.report("Main API test", res)
		return res
	}
	// Best-effort cleanup; a deletion failure must not fail the probe.
	defer func() { _ = os.Remove(questionsPath) }()

	res := c.postAnalysis(questionsPath, logger)
	c.report("Main API test", res)
	return res
}

func (c *Client) postAnalysis(questionsPath string, logger logging.Logger) Result {
	body, contentType, err := analysisRequestBody(questionsPath)
	if err != nil {
		return errorResult(err)
	}
	fmt.Fprintln(c.out, "Uploading test data...")
	url := c.baseURL + "/api/"
	logger.Printf("POST %s", url)
	resp, err := c.slow.Post(url, contentType, body)
	if err != nil {
		return errorResult(err)
	}
	return decodeResponse(resp, logger)
}

func analysisRequestBody(questionsPath string) (io.Reader, string, error) {
	questions, err := os.ReadFile(questionsPath)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="questions_txt"; filename="questions.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(questions); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("enable_iterative_reasoning", "false"); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("enable_logging", "true"); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) get(path string, logger logging.Logger) Result {
	url := c.baseURL + path
	logger.Printf("GET %s", url)
	resp, err := c.quick.Get(url)
	if err != nil {
		return errorResult(err)
	}
	return decodeResponse(resp, logger)
}

func decodeResponse(resp *http.Response, logger logging.Logger) Result {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorResult(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorResult(fmt.Errorf("unexpected response status %d%s", resp.StatusCode, bodySuffix(body)))
	}
	logger.Printf("response body: %s", string(body))
	var data ldvalue.Value
	if err := json.Unmarshal(body, &data); err != nil {
		return errorResult(fmt.Errorf("malformed JSON response: %w", err))
	}
	return successResult(data)
}

func bodySuffix(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	return ": " + string(body)
}

func (c *Client) report(name string, r Result) {
	if r.OK() {
		fmt.Fprintf(c.out, "%s %s passed\n", color.GreenString("✓"), name)
	} else {
		fmt.Fprintf(c.out, "%s %s failed: %s\n", color.RedString("✗"), name, r.Error)
	}
}
