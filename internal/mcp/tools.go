package mcp

import (
	"github.com/Aman-CERP/fade/internal/catalog"
	"github.com/Aman-CERP/fade/internal/telemetry"
)

// Limits applied to tool requests.
const (
	DefaultToolLimit = 10
	MaxToolLimit     = 50
)

// SearchAppsInput defines the input schema for the search_apps tool.
type SearchAppsInput struct {
	Query string `json:"query" jsonschema:"application name or fragment to search for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10, max 50"`
}

// RecentAppsInput defines the input schema for the recent_apps tool.
type RecentAppsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of results, default 10, max 50"`
}

// LaunchAppInput defines the input schema for the launch_app tool.
type LaunchAppInput struct {
	Path string `json:"path" jsonschema:"absolute path of an application returned by search_apps or recent_apps"`
}

// IndexStatusInput defines the input schema for the index_status tool (no parameters).
type IndexStatusInput struct{}

// AppOutput is a single application in tool output.
type AppOutput struct {
	Name        string  `json:"name" jsonschema:"display name"`
	Path        string  `json:"path" jsonschema:"absolute path used to launch the application"`
	Description string  `json:"description,omitempty" jsonschema:"folder the application was found in"`
	Score       float64 `json:"score,omitempty" jsonschema:"relevance score, higher is better"`
}

// AppsOutput defines the output schema for search_apps and recent_apps.
type AppsOutput struct {
	Query string      `json:"query,omitempty"`
	Apps  []AppOutput `json:"apps"`
}

// LaunchAppOutput defines the output schema for the launch_app tool.
type LaunchAppOutput struct {
	Launched bool   `json:"launched"`
	Name     string `json:"name"`
	Path     string `json:"path"`
}

// IndexStatusOutput defines the output schema for the index_status tool.
type IndexStatusOutput struct {
	Status         string  `json:"status" jsonschema:"idle, scanning, ready or error"`
	Applications   int     `json:"applications"`
	Generation     uint64  `json:"generation"`
	RootsTotal     int     `json:"roots_total"`
	RootsDone      int     `json:"roots_done"`
	ProgressPct    float64 `json:"progress_pct"`
	LastScanAt     string  `json:"last_scan_at,omitempty"`
	LastDurationMs int64   `json:"last_duration_ms,omitempty"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

// QueryMetricsOutput is the body of the query_metrics resource.
type QueryMetricsOutput struct {
	telemetry.Snapshot
	ZeroResultPct float64 `json:"zero_result_pct"`
}

func toAppOutputs(results []catalog.Candidate) []AppOutput {
	out := make([]AppOutput, 0, len(results))
	for _, c := range results {
		out = append(out, AppOutput{
			Name:        c.DisplayName,
			Path:        c.Path,
			Description: c.Description,
			Score:       c.Score,
		})
	}
	return out
}

// clampLimit applies the default for non-positive values and caps the rest.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultToolLimit
	case limit > MaxToolLimit:
		return MaxToolLimit
	default:
		return limit
	}
}
