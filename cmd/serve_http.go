package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/widgetapps/mcp"
	"github.com/spf13/cobra"
)

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Start MCP HTTP server",
	Long:  "Start the MCP server over HTTP, with the widget files, proxy API, and analytics dashboard on the same port.",
	RunE:  runServeHTTP,
}

func init() {
	serveHTTPCmd.Flags().String("port", "", "HTTP port (default from $PORT or 8080)")
	rootCmd.AddCommand(serveHTTPCmd)
}

func runServeHTTP(cmd *cobra.Command, args []string) error {
	c, err := buildClients()
	if err != nil {
		return err
	}
	defer c.widgets.Close()
	defer c.events.Close()

	selected, err := initApps(c)
	if err != nil {
		return err
	}

	port := cfg.HTTPPort
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	addr := fmt.Sprintf(":%s", port)
	return mcpserver.ServeHTTP(addr, selected, mcpserver.HTTPOptions{
		APIKey:       cfg.APIKey,
		Widgets:      c.widgets,
		Events:       c.events,
		AnalyticsDir: cfg.AnalyticsDir,
		Rates:        c.rates,
		Completions:  c.completer,
		Newsletter:   c.newsletter,
		Turnstile:    c.turnstile,
		Tag:          cfg.ButtondownTag,
		Logger:       logger,
	})
}
