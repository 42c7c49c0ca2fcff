package probes

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Status is the outcome of a single endpoint probe.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the normalized outcome of one probe. Exactly one of Data and
// Error carries information: Data holds the decoded JSON body on success,
// Error holds the failure description otherwise. Probes never propagate
// transport, status or decode failures to the caller as errors; they are
// always folded into a Result.
type Result struct {
	Status Status
	Data   ldvalue.Value
	Error  string
}

// OK reports whether the probe succeeded.
func (r Result) OK() bool { return r.Status == StatusSuccess }

func successResult(data ldvalue.Value) Result {
	return Result{Status: StatusSuccess, Data: data}
}

func errorResult(err error) Result {
	return Result{Status: StatusError, Data: ldvalue.Null(), Error: err.Error()}
}
