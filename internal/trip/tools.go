package trip

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/lukman83/widgetapps/internal/apps"
	"github.com/lukman83/widgetapps/internal/widgets"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// App is the trip planner app.
type App struct {
	completer Completer // may be nil; template outlines only
	widgets   *widgets.Store
	now       func() time.Time
}

func New(completer Completer, store *widgets.Store) *App {
	return &App{completer: completer, widgets: store, now: time.Now}
}

func (a *App) Name() string        { return "trip" }
func (a *App) Description() string { return "Day-by-day trip planner" }
func (a *App) WidgetURI() string   { return apps.WidgetURI(a.Name()) }

func (a *App) WidgetHTML() (string, error) { return a.widgets.HTML(a.Name()) }

func (a *App) Tools() []server.ServerTool {
	plan := mcp.NewTool("plan_trip",
		mcp.WithDescription("Build a day-by-day trip outline. Arguments override anything inferred from context."),
		mcp.WithString("context", mcp.Description("Freeform text describing the trip")),
		mcp.WithString("destination", mcp.Description("Where the trip goes")),
		mcp.WithString("start_date", mcp.Description("First day (YYYY-MM-DD)")),
		mcp.WithNumber("nights", mcp.Description("Number of nights (default 3)")),
		mcp.WithNumber("travelers", mcp.Description("Party size")),
		mcp.WithNumber("budget", mcp.Description("Total budget in dollars")),
		mcp.WithString("interests", mcp.Description("Comma-separated interests, e.g. food,hiking")),
	)
	plan.Meta = &mcp.Meta{AdditionalFields: map[string]any{
		"openai/outputTemplate":          a.WidgetURI(),
		"openai/toolInvocation/invoking": "Sketching the itinerary...",
		"openai/widgetAccessible":        true,
	}}

	return []server.ServerTool{
		{Tool: plan, Handler: a.handlePlan},
	}
}

func (a *App) handlePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := Infer(request.GetString("context", ""), a.now())

	if v := request.GetString("destination", ""); v != "" {
		r.Destination = v
	}
	if v := request.GetString("start_date", ""); v != "" {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return mcp.NewToolResultError("start_date must be YYYY-MM-DD"), nil
		}
		r.StartDate = v
	}
	if v := request.GetInt("nights", 0); v > 0 {
		r.Nights = v
	}
	if v := request.GetInt("travelers", 0); v > 0 {
		r.Travelers = v
	}
	if v := request.GetFloat("budget", 0); v > 0 {
		r.Budget = v
	}
	if v := request.GetString("interests", ""); v != "" {
		r.Interests = nil
		for _, it := range strings.Split(v, ",") {
			if it = strings.TrimSpace(strings.ToLower(it)); it != "" {
				r.Interests = append(r.Interests, it)
			}
		}
	}

	plan := Build(ctx, a.completer, r)

	structured := map[string]any{"plan": plan}
	data, _ := json.MarshalIndent(structured, "", "  ")
	res := mcp.NewToolResultText(string(data))
	res.StructuredContent = structured
	res.Meta = &mcp.Meta{AdditionalFields: map[string]any{
		"openai/outputTemplate": a.WidgetURI(),
	}}
	return res, nil
}
