package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/widgetapps/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting widgetapps MCP server on stdio...")

	return mcpserver.Serve(selected, c.events)
}
