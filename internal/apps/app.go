package apps

import (
	"github.com/mark3labs/mcp-go/server"
)

// App is one widget-backed tool bundle: a quiz, a calculator, a planner.
// Each app contributes its MCP tools plus a single HTML widget that the
// client renders from the tool output.
type App interface {
	// Name is the registry key and widget file stem, e.g. "quiz".
	Name() string
	// Description is shown in tool listings and on the dashboard.
	Description() string
	// Tools returns the app's MCP tools with handlers attached.
	Tools() []server.ServerTool
	// WidgetURI is the MCP resource URI of the app's widget.
	WidgetURI() string
	// WidgetHTML returns the widget markup to serve as that resource.
	WidgetHTML() (string, error)
}

// WidgetMIMEType marks widget resources as renderable app HTML.
const WidgetMIMEType = "text/html+skybridge"

// WidgetURI builds the canonical widget resource URI for an app name.
func WidgetURI(app string) string {
	return "ui://" + app + "/widget.html"
}
