// Package mcp exposes the digit generators as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/espigot"
	"github.com/aretw0/espigot/internal/logging"
	"github.com/aretw0/espigot/pkg/domain"
	"github.com/aretw0/espigot/pkg/ports"
)

// Server exposes e_digits and cf_terms over MCP.
type Server struct {
	maxDigits int
	engines   ports.EngineFactory
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. maxDigits caps precision
// and count arguments; zero means no cap.
func NewServer(maxDigits int, logger *slog.Logger, opts ...espigot.Option) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		maxDigits: maxDigits,
		engines:   espigot.Factory(append([]espigot.Option{espigot.WithLogger(logger)}, opts...)...),
		logger:    logger,
		mcpServer: server.NewMCPServer("espigot-mcp", espigot.VersionString()),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: e_digits
	digitsTool := mcp.NewTool("e_digits",
		mcp.WithDescription("Compute Euler's number e exactly to the given number of decimal places."),
		mcp.WithNumber("precision", mcp.Required(), mcp.Description("Number of digits after the decimal point")),
		mcp.WithString("engine", mcp.Description("Digit engine: cfrac (default) or series")),
	)
	s.mcpServer.AddTool(digitsTool, s.HandleDigits)

	// TOOL: cf_terms
	termsTool := mcp.NewTool("cf_terms",
		mcp.WithDescription("List the first partial quotients of the continued fraction of e."),
		mcp.WithNumber("count", mcp.Required(), mcp.Description("Number of partial quotients")),
	)
	s.mcpServer.AddTool(termsTool, s.HandleTerms)
}

// HandleDigits serves the e_digits tool.
func (s *Server) HandleDigits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	precision, err := s.count(args, "precision")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	engine, _ := args["engine"].(string)
	kind, err := domain.ParseEngineKind(engine)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	eng, err := s.engines(kind)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	digits, err := eng.Format(ctx, precision)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("compute failed: %v", err)), nil
	}
	s.logger.Debug("e_digits", "engine", kind, "precision", precision)
	return mcp.NewToolResultText(digits), nil
}

// HandleTerms serves the cf_terms tool.
func (s *Server) HandleTerms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.count(request.GetArguments(), "count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, err := json.Marshal(espigot.Terms(n))
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) count(args map[string]any, key string) (int, error) {
	var n int
	switch v := args[key].(type) {
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 {
			return 0, fmt.Errorf("%s must be a whole number, got %v", key, v)
		}
		n = int(v)
	case int:
		n = v
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: %w", key, domain.ErrNegativePrecision)
	}
	if s.maxDigits > 0 && n > s.maxDigits {
		return 0, fmt.Errorf("%s: %w: %d > %d", key, domain.ErrPrecisionTooLarge, n, s.maxDigits)
	}
	return n, nil
}
