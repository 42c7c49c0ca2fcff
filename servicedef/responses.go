// Package servicedef describes the JSON payloads returned by the analysis
// API. The service is external to this harness; these types only model the
// fields the smoke tests read. Every field is optional on the wire, so each
// type is built from a decoded ldvalue.Value and callers choose fallbacks
// (usually "unknown") at the point where a value is displayed.
package servicedef

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Orchestrator       ldvalue.OptionalString
	WorkflowsAvailable ldvalue.OptionalInt
	Platform           ldvalue.OptionalString
}

// WorkflowCapabilities is the payload of GET /api/workflow-capabilities.
type WorkflowCapabilities struct {
	AvailableWorkflows []string
	Platform           ldvalue.OptionalString
}

// AnalysisResponse is the payload of POST /api/.
type AnalysisResponse struct {
	TaskID       ldvalue.OptionalString
	WorkflowType ldvalue.OptionalString
	TaskStatus   ldvalue.OptionalString // the "status" field of the task, not the probe outcome
	Result       *AnalysisResult
	Processing   *ProcessingInfo
}

// AnalysisResult summarizes the "result" object of an analysis response.
// Presence and non-emptiness are tracked separately because the report
// prints "available: false" for a present-but-empty value but prints nothing
// when the key is absent.
type AnalysisResult struct {
	Keys             []string
	ResultsPresent   bool
	ResultsAvailable bool
	PlotPresent      bool
	PlotGenerated    bool
}

// ProcessingInfo summarizes the "processing_info" object returned by
// serverless deployments.
type ProcessingInfo struct {
	Platform         ldvalue.OptionalString
	EnhancedFeatures []string
}

// HealthStatusFromValue extracts the health fields from a decoded body.
func HealthStatusFromValue(v ldvalue.Value) HealthStatus {
	return HealthStatus{
		Orchestrator:       optString(v.GetByKey("orchestrator")),
		WorkflowsAvailable: optInt(v.GetByKey("workflows_available")),
		Platform:           optString(v.GetByKey("platform")),
	}
}

// WorkflowCapabilitiesFromValue extracts the capabilities fields from a
// decoded body.
func WorkflowCapabilitiesFromValue(v ldvalue.Value) WorkflowCapabilities {
	return WorkflowCapabilities{
		AvailableWorkflows: stringSlice(v.GetByKey("available_workflows")),
		Platform:           optString(v.GetByKey("platform")),
	}
}

// AnalysisResponseFromValue extracts the analysis fields from a decoded body.
func AnalysisResponseFromValue(v ldvalue.Value) AnalysisResponse {
	resp := AnalysisResponse{
		TaskID:       optString(v.GetByKey("task_id")),
		WorkflowType: optString(v.GetByKey("workflow_type")),
		TaskStatus:   optString(v.GetByKey("status")),
	}
	if result := v.GetByKey("result"); result.Type() == ldvalue.ObjectType && result.Count() > 0 {
		r := AnalysisResult{Keys: result.Keys()}
		if results := result.GetByKey("results"); keyPresent(result, "results") {
			r.ResultsPresent = true
			r.ResultsAvailable = isTruthy(results)
		}
		if plot := result.GetByKey("plot_base64"); keyPresent(result, "plot_base64") {
			r.PlotPresent = true
			r.PlotGenerated = isTruthy(plot)
		}
		resp.Result = &r
	}
	if info := v.GetByKey("processing_info"); info.Type() == ldvalue.ObjectType && info.Count() > 0 {
		resp.Processing = &ProcessingInfo{
			Platform:         optString(info.GetByKey("platform")),
			EnhancedFeatures: stringSlice(info.GetByKey("enhanced_features")),
		}
	}
	return resp
}

func optString(v ldvalue.Value) ldvalue.OptionalString {
	if v.Type() == ldvalue.StringType {
		return ldvalue.NewOptionalString(v.StringValue())
	}
	return ldvalue.OptionalString{}
}

func optInt(v ldvalue.Value) ldvalue.OptionalInt {
	if v.Type() == ldvalue.NumberType {
		return ldvalue.NewOptionalInt(v.IntValue())
	}
	return ldvalue.OptionalInt{}
}

func stringSlice(v ldvalue.Value) []string {
	if v.Type() != ldvalue.ArrayType {
		return nil
	}
	var ret []string
	for i := 0; i < v.Count(); i++ {
		if e := v.GetByIndex(i); e.Type() == ldvalue.StringType {
			ret = append(ret, e.StringValue())
		}
	}
	return ret
}

func keyPresent(obj ldvalue.Value, key string) bool {
	for _, k := range obj.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// isTruthy mirrors the truthiness the report cares about: null, false, zero,
// "" and empty collections all count as "nothing there".
func isTruthy(v ldvalue.Value) bool {
	switch v.Type() {
	case ldvalue.NullType:
		return false
	case ldvalue.BoolType:
		return v.BoolValue()
	case ldvalue.NumberType:
		return v.Float64Value() != 0
	case ldvalue.StringType:
		return v.StringValue() != ""
	case ldvalue.ArrayType, ldvalue.ObjectType:
		return v.Count() > 0
	default:
		return false
	}
}
