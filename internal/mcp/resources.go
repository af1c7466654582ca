package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Resource URIs.
const (
	StatusResourceURI       = "fade://index/status"
	QueryMetricsResourceURI = "fade://query_metrics"
)

// registerStatusResource exposes index_status as a readable resource too.
func (s *Server) registerStatusResource() {
	s.mcp.AddResource(
		&mcp.Resource{
			Name:        "index_status",
			URI:         StatusResourceURI,
			Description: "Application index state and scan progress",
			MIMEType:    "application/json",
		},
		s.handleStatusResource,
	)
}

func (s *Server) handleStatusResource(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	content, err := json.MarshalIndent(s.indexStatus(), "", "  ")
	if err != nil {
		return nil, MapError(err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      StatusResourceURI,
				MIMEType: "application/json",
				Text:     string(content),
			},
		},
	}, nil
}

// registerQueryMetricsResource registers the query_metrics resource.
func (s *Server) registerQueryMetricsResource() {
	s.mcp.AddResource(
		&mcp.Resource{
			Name:        "query_metrics",
			URI:         QueryMetricsResourceURI,
			Description: "Search query patterns for this session: volume, top terms, misses and latency",
			MIMEType:    "application/json",
		},
		s.handleQueryMetricsResource,
	)
}

func (s *Server) handleQueryMetricsResource(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.RLock()
	metrics := s.metrics
	s.mu.RUnlock()

	if metrics == nil {
		return nil, NewInvalidParamsError("query metrics not available")
	}

	snap := metrics.Snapshot()
	out := QueryMetricsOutput{
		Snapshot:      snap,
		ZeroResultPct: snap.ZeroResultPercentage(),
	}

	content, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, MapError(err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      QueryMetricsResourceURI,
				MIMEType: "application/json",
				Text:     string(content),
			},
		},
	}, nil
}
