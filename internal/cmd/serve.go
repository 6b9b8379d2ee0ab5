package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthropics/carve/internal/config"
	"github.com/anthropics/carve/internal/mcp"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for AI agent integration",
	Long: `Serve starts an MCP (Model Context Protocol) server on stdio so AI
agents can request minimal source bundles through tools instead of spawning
CLI commands.

Available Tools:
  carve_extract   Extract a pruned bundle for an entry file
  carve_resolve   Resolve one #include string to a project file
  carve_files     List the include-resolution file universe

Examples:
  carve serve                               # All tools, 30m idle timeout
  carve serve --tools extract               # Expose only carve_extract
  carve serve --timeout 0                   # Never time out
  carve serve --list-tools                  # Show available tools`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveTools     string
	serveTimeout   string
	serveListTools bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTools, "tools", "", "Comma-separated list of tools to expose (default: all)")
	serveCmd.Flags().StringVar(&serveTimeout, "timeout", "30m", "Inactivity timeout (0 for no timeout)")
	serveCmd.Flags().BoolVar(&serveListTools, "list-tools", false, "List available tools")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveListTools {
		fmt.Println("Available MCP tools:")
		fmt.Println()
		fmt.Println("  carve_extract   Extract a pruned bundle for an entry file")
		fmt.Println("  carve_resolve   Resolve one #include string to a project file")
		fmt.Println("  carve_files     List the include-resolution file universe")
		return nil
	}

	timeout, err := parseTimeout(serveTimeout)
	if err != nil {
		return err
	}

	var tools []string
	if serveTools != "" {
		for _, t := range strings.Split(serveTools, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if !strings.HasPrefix(t, "carve_") {
				t = "carve_" + t
			}
			tools = append(tools, t)
		}
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	if carveDir, err := config.FindConfigDir(projectRoot); err == nil {
		projectRoot = filepath.Dir(carveDir)
	}

	server, err := mcp.New(mcp.Config{
		ProjectRoot: projectRoot,
		Tools:       tools,
		Timeout:     timeout,
	})
	if err != nil {
		return err
	}

	return server.ServeStdio()
}

// parseTimeout parses the --timeout flag; "0" disables the timeout.
func parseTimeout(s string) (time.Duration, error) {
	if s == "0" || s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	return d, nil
}
