// Package mcp wires the registered apps into an MCP server, over stdio or
// streamable HTTP, and hosts the widget and proxy endpoints next to it.
package mcp

import (
	"context"
	"fmt"

	"github.com/lukman83/widgetapps/internal/analytics"
	"github.com/lukman83/widgetapps/internal/apps"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverVersion = "1.0.0"

// newServer builds an MCP server exposing the selected apps' tools and
// their widget resources. Tool handlers are instrumented through events
// when it is non-nil.
func newServer(selected []apps.App, events *analytics.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"widgetapps",
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	for _, app := range selected {
		app := app
		for _, t := range app.Tools() {
			if events != nil {
				t = events.WrapTool(app.Name(), t)
			}
			s.AddTool(t.Tool, t.Handler)
		}

		resource := mcp.NewResource(
			app.WidgetURI(),
			app.Name()+" widget",
			mcp.WithResourceDescription(app.Description()),
			mcp.WithMIMEType(apps.WidgetMIMEType),
		)
		s.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			html, err := app.WidgetHTML()
			if err != nil {
				return nil, fmt.Errorf("widget %s: %w", app.Name(), err)
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      app.WidgetURI(),
					MIMEType: apps.WidgetMIMEType,
					Text:     html,
				},
			}, nil
		})
	}

	return s
}

// Serve starts the MCP stdio server with the selected apps registered.
func Serve(selected []apps.App, events *analytics.Logger) error {
	return server.ServeStdio(newServer(selected, events))
}
