package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/fade/internal/async"
	"github.com/Aman-CERP/fade/internal/catalog"
	ferrors "github.com/Aman-CERP/fade/internal/errors"
	"github.com/Aman-CERP/fade/internal/launcher"
	"github.com/Aman-CERP/fade/internal/telemetry"
	"github.com/Aman-CERP/fade/pkg/version"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "fade"

// Engine is the part of the search engine the server exposes.
type Engine interface {
	Search(query string, limit int) []catalog.Candidate
	Recent(limit int) []catalog.Candidate
	Lookup(path string) (catalog.Candidate, bool)
	RecordLaunch(c catalog.Candidate)
	Status() async.Snapshot
}

// Server is the MCP server for fade.
// It lets AI assistants find and start local applications.
type Server struct {
	mcp        *mcp.Server
	engine     Engine
	dispatcher launcher.Dispatcher
	logger     *slog.Logger

	mu      sync.RWMutex
	metrics *telemetry.QueryMetrics
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

var tools = []ToolInfo{
	{
		Name:        "search_apps",
		Description: "Find installed applications by name. Results are ranked with exact name matches first, then prefix, then substring and path matches.",
	},
	{
		Name:        "recent_apps",
		Description: "List recently launched applications, most recent first. Falls back to the first indexed applications when nothing has been launched.",
	},
	{
		Name:        "launch_app",
		Description: "Start an application by the path returned from search_apps or recent_apps. Only indexed or recently launched paths are accepted.",
	},
	{
		Name:        "index_status",
		Description: "Report whether the application index is ready, how many applications it holds, and the progress of any running scan.",
	},
}

// NewServer creates a new MCP server.
func NewServer(engine Engine, dispatcher launcher.Dispatcher, logger *slog.Logger) (*Server, error) {
	if engine == nil {
		return nil, errors.New("search engine is required")
	}
	if dispatcher == nil {
		return nil, errors.New("launcher is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		engine:     engine,
		dispatcher: dispatcher,
		logger:     logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()
	s.registerStatusResource()

	return s, nil
}

// SetMetrics exposes query telemetry as the query_metrics resource.
func (s *Server) SetMetrics(m *telemetry.QueryMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = m

	if m != nil {
		s.registerQueryMetricsResource()
	}
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	out := make([]ToolInfo, len(tools))
	copy(out, tools)
	return out
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[0].Name, Description: tools[0].Description}, s.mcpSearchAppsHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[1].Name, Description: tools[1].Description}, s.mcpRecentAppsHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[2].Name, Description: tools[2].Description}, s.mcpLaunchAppHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[3].Name, Description: tools[3].Description}, s.mcpIndexStatusHandler)

	s.logger.Debug("MCP tools registered", slog.Int("count", len(tools)))
}

func (s *Server) mcpSearchAppsHandler(_ context.Context, _ *mcp.CallToolRequest, input SearchAppsInput) (
	*mcp.CallToolResult,
	AppsOutput,
	error,
) {
	query := input.Query
	if strings.TrimSpace(query) == "" {
		return nil, AppsOutput{}, NewInvalidParamsError("query cannot be empty or whitespace only")
	}

	start := time.Now()
	requestID := generateRequestID()
	limit := clampLimit(input.Limit)

	results := s.engine.Search(query, limit)

	s.logger.Info("search_apps completed",
		slog.String("request_id", requestID),
		slog.String("query", query),
		slog.Int("limit", limit),
		slog.Int("result_count", len(results)),
		slog.Duration("duration", time.Since(start)))

	return textResult(FormatSearchResults(query, results)), AppsOutput{Query: query, Apps: toAppOutputs(results)}, nil
}

func (s *Server) mcpRecentAppsHandler(_ context.Context, _ *mcp.CallToolRequest, input RecentAppsInput) (
	*mcp.CallToolResult,
	AppsOutput,
	error,
) {
	results := s.engine.Recent(clampLimit(input.Limit))
	return textResult(FormatRecent(results)), AppsOutput{Apps: toAppOutputs(results)}, nil
}

func (s *Server) mcpLaunchAppHandler(ctx context.Context, _ *mcp.CallToolRequest, input LaunchAppInput) (
	*mcp.CallToolResult,
	LaunchAppOutput,
	error,
) {
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return nil, LaunchAppOutput{}, NewInvalidParamsError("path parameter is required")
	}

	c, ok := s.engine.Lookup(path)
	if !ok {
		err := ferrors.New(ferrors.ErrCodeUnknownPath, "application is not in the index", nil).
			WithDetail("path", path).
			WithSuggestion("Use a path returned by search_apps or recent_apps.")
		s.logger.LogAttrs(ctx, slog.LevelWarn, "launch_app rejected", ferrors.LogAttrs(err)...)
		return nil, LaunchAppOutput{}, MapError(err)
	}

	if err := launcher.LaunchAndRecord(ctx, s.dispatcher, s.engine, c); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "launch_app failed", ferrors.LogAttrs(err)...)
		return nil, LaunchAppOutput{}, MapError(err)
	}

	text := fmt.Sprintf("Launched **%s** (`%s`)", c.DisplayName, c.Path)
	return textResult(text), LaunchAppOutput{Launched: true, Name: c.DisplayName, Path: c.Path}, nil
}

func (s *Server) mcpIndexStatusHandler(_ context.Context, _ *mcp.CallToolRequest, _ IndexStatusInput) (
	*mcp.CallToolResult,
	IndexStatusOutput,
	error,
) {
	return nil, s.indexStatus(), nil
}

func (s *Server) indexStatus() IndexStatusOutput {
	snap := s.engine.Status()
	out := IndexStatusOutput{
		Status:       snap.Status,
		Applications: snap.Candidates,
		Generation:   snap.Generation,
		RootsTotal:   snap.RootsTotal,
		RootsDone:    snap.RootsDone,
		ProgressPct:  snap.ProgressPct,
		ErrorMessage: snap.ErrorMessage,
	}
	if !snap.LastScanAt.IsZero() {
		out.LastScanAt = snap.LastScanAt.Format(time.RFC3339)
	}
	if d, err := time.ParseDuration(snap.LastDuration); err == nil {
		out.LastDurationMs = d.Milliseconds()
	}
	return out
}

// Serve runs the server until ctx is canceled or the client disconnects.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("Starting MCP server", slog.String("transport", transport))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
