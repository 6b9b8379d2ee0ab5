package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anthropics/carve/internal/analyze"
	"github.com/anthropics/carve/internal/config"
	"github.com/anthropics/carve/internal/deps"
	"github.com/anthropics/carve/internal/discover"
	"github.com/anthropics/carve/internal/export"
	"github.com/mark3labs/mcp-go/mcp"
)

// registerExtractTool registers the carve_extract tool
func (s *Server) registerExtractTool() error {
	tool := mcp.NewTool("carve_extract",
		mcp.WithDescription("Extract a minimal, self-contained source bundle for an entry file: its includes up to a depth bound, with unreachable functions pruned."),
		mcp.WithString("entry",
			mcp.Required(),
			mcp.Description("Entry source file, relative to the project root"),
		),
		mcp.WithNumber("depth",
			mcp.Description("Maximum include-traversal depth (default: 3)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleExtract)
	return nil
}

// registerResolveTool registers the carve_resolve tool
func (s *Server) registerResolveTool() error {
	tool := mcp.NewTool("carve_resolve",
		mcp.WithDescription("Resolve one #include string to a concrete project file, showing which candidate path matched."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("The including file, relative to the project root"),
		),
		mcp.WithString("include",
			mcp.Required(),
			mcp.Description("The include string as written, without its <> or \"\" delimiters"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleResolve)
	return nil
}

// registerFilesTool registers the carve_files tool
func (s *Server) registerFilesTool() error {
	tool := mcp.NewTool("carve_files",
		mcp.WithDescription("List the project files that form the universe for include resolution."),
	)

	s.mcpServer.AddTool(tool, s.handleFiles)
	return nil
}

// Tool handlers

func (s *Server) handleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	entry, ok := args["entry"].(string)
	if !ok || entry == "" {
		return mcp.NewToolResultError("entry parameter is required"), nil
	}

	depth := config.DefaultMaxDepth
	if d, ok := args["depth"].(float64); ok {
		depth = int(d)
	}
	if depth < 0 {
		return mcp.NewToolResultError("depth must be non-negative"), nil
	}

	result, err := s.executeExtract(entry, depth)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	file, ok := args["file"].(string)
	if !ok || file == "" {
		return mcp.NewToolResultError("file parameter is required"), nil
	}
	include, ok := args["include"].(string)
	if !ok || include == "" {
		return mcp.NewToolResultError("include parameter is required"), nil
	}

	result, err := s.executeResolve(file, include)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	result, err := s.executeFiles()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

// Tool execution

func (s *Server) executeExtract(entry string, depth int) (string, error) {
	known, err := discover.Files(s.projectRoot, nil)
	if err != nil {
		return "", fmt.Errorf("enumerating project files: %w", err)
	}

	files, err := deps.Discover(s.resolvePath(entry), depth, s.projectRoot, known, deps.OSReader{})
	if err != nil {
		return "", err
	}

	used := analyze.Reachable(files)

	var sb strings.Builder
	if _, err := export.Write(&sb, files, used, s.projectRoot); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (s *Server) executeResolve(file, include string) (string, error) {
	known, err := discover.Files(s.projectRoot, nil)
	if err != nil {
		return "", fmt.Errorf("enumerating project files: %w", err)
	}

	from := s.resolvePath(file)
	resolved, ok := deps.Resolve(from, include, s.projectRoot, known)
	if !ok {
		candidates := deps.Candidates(from, include, s.projectRoot)
		return fmt.Sprintf("unresolved (tried %s)", strings.Join(candidates, ", ")), nil
	}
	return resolved, nil
}

func (s *Server) executeFiles() (string, error) {
	known, err := discover.Files(s.projectRoot, nil)
	if err != nil {
		return "", fmt.Errorf("enumerating project files: %w", err)
	}

	paths := make([]string, 0, len(known))
	for p := range known {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return strings.Join(paths, "\n"), nil
}

// resolvePath interprets p relative to the project root unless absolute.
func (s *Server) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.projectRoot, p)
}
