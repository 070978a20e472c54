// Package mcp provides an MCP (Model Context Protocol) server for specmap.
// This allows AI agents to request extraction reports and rule findings
// through MCP tools instead of CLI invocations.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hargabyte/specmap/internal/config"
	"github.com/hargabyte/specmap/internal/rules"
	"github.com/hargabyte/specmap/internal/scan"
)

// Server wraps the MCP server with specmap-specific tools.
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
}

// New creates a new MCP server exposing the specmap tools.
func New(version string, cfg *config.Config) *Server {
	mcpServer := server.NewMCPServer(
		"specmap",
		version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer: mcpServer,
		cfg:       cfg,
	}

	s.registerExtractTool()
	s.registerCheckTool()

	return s
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// registerExtractTool registers the specmap_extract tool.
func (s *Server) registerExtractTool() {
	tool := mcp.NewTool("specmap_extract",
		mcp.WithDescription("Extract test cases, lifecycle hooks, exported functions, and their calls from JavaScript/TypeScript test files. Returns a JSON report keyed by file path."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File or directory to extract"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleExtract)
}

// registerCheckTool registers the specmap_check tool.
func (s *Server) registerCheckTool() {
	tool := mcp.NewTool("specmap_check",
		mcp.WithDescription("Run validation rules (focused tests, empty tests, duplicate group labels, annotation misuse) over extracted test files. Returns JSON findings."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File or directory to check"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleCheck)
}

func (s *Server) handleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.runScan(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := map[string]any{
		"report": result.Report,
	}
	if len(result.Failures) > 0 {
		payload["failures"] = result.Failures
	}
	if len(result.Skipped) > 0 {
		payload["skipped"] = result.Skipped
	}

	return jsonResult(payload)
}

func (s *Server) handleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.runScan(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	findings := rules.Run(result.Report, s.cfg.Rules.Disabled)
	payload := map[string]any{
		"findings": findings,
	}
	if len(result.Failures) > 0 {
		payload["failures"] = result.Failures
	}

	return jsonResult(payload)
}

// runScan resolves the path argument and runs the batch driver.
func (s *Server) runScan(req mcp.CallToolRequest) (*scan.Result, error) {
	args := req.GetArguments()
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("path parameter is required")
	}

	return scan.Run(path, scan.Options{
		Suffixes: s.cfg.Scan.Suffixes,
		Excludes: s.cfg.Scan.Exclude,
	})
}

// jsonResult encodes a payload as an indented JSON tool result.
func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
