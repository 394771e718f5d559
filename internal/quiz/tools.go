package quiz

import (
	"context"
	"encoding/json"

	"github.com/lukman83/widgetapps/internal/apps"
	"github.com/lukman83/widgetapps/internal/widgets"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// App is the weight-loss quiz app.
type App struct {
	widgets *widgets.Store
}

func New(store *widgets.Store) *App {
	return &App{widgets: store}
}

func (a *App) Name() string        { return "quiz" }
func (a *App) Description() string { return "Weight-loss readiness quiz" }
func (a *App) WidgetURI() string   { return apps.WidgetURI(a.Name()) }

func (a *App) WidgetHTML() (string, error) { return a.widgets.HTML(a.Name()) }

func (a *App) meta(invoking string) *mcp.Meta {
	return &mcp.Meta{AdditionalFields: map[string]any{
		"openai/outputTemplate":          a.WidgetURI(),
		"openai/toolInvocation/invoking": invoking,
		"openai/widgetAccessible":        true,
	}}
}

func (a *App) Tools() []server.ServerTool {
	start := mcp.NewTool("start_quiz",
		mcp.WithDescription("Open the weight-loss quiz, pre-filling any answers found in the user's message."),
		mcp.WithString("context", mcp.Description("Freeform text to pull answers from")),
	)
	start.Meta = a.meta("Opening the quiz...")

	score := mcp.NewTool("score_quiz",
		mcp.WithDescription("Score the quiz from answered fields. Height and weight are required."),
		mcp.WithString("sex", mcp.Description("female or male"), mcp.Enum("female", "male")),
		mcp.WithNumber("age", mcp.Description("Age in years")),
		mcp.WithNumber("height_in", mcp.Description("Height in inches")),
		mcp.WithNumber("weight_lb", mcp.Description("Weight in pounds")),
		mcp.WithString("activity", mcp.Description("Activity level"), mcp.Enum("sedentary", "light", "moderate", "active")),
		mcp.WithNumber("goal_lb", mcp.Description("Pounds the user wants to lose")),
		mcp.WithBoolean("tried_glp1", mcp.Description("Whether the user has tried a GLP-1 medication")),
		mcp.WithString("context", mcp.Description("Freeform text to fill unanswered fields from")),
	)
	score.Meta = a.meta("Scoring your answers...")

	return []server.ServerTool{
		{Tool: start, Handler: a.handleStart},
		{Tool: score, Handler: a.handleScore},
	}
}

func (a *App) handleStart(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers := Infer(request.GetString("context", ""))
	return a.result(map[string]any{"answers": answers})
}

func (a *App) handleScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers := Infer(request.GetString("context", ""))

	if v := request.GetString("sex", ""); v != "" {
		answers.Sex = v
	}
	if v := request.GetInt("age", 0); v != 0 {
		answers.Age = v
	}
	if v := request.GetFloat("height_in", 0); v != 0 {
		answers.HeightIn = v
	}
	if v := request.GetFloat("weight_lb", 0); v != 0 {
		answers.WeightLb = v
	}
	if v := request.GetString("activity", ""); v != "" {
		answers.Activity = v
	}
	if v := request.GetFloat("goal_lb", 0); v != 0 {
		answers.GoalLb = v
	}
	if v, ok := request.GetArguments()["tried_glp1"].(bool); ok {
		answers.TriedGLP1 = &v
	}

	res, err := Score(answers)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return a.result(map[string]any{"answers": answers, "result": res})
}

func (a *App) result(structured map[string]any) (*mcp.CallToolResult, error) {
	data, _ := json.MarshalIndent(structured, "", "  ")
	res := mcp.NewToolResultText(string(data))
	res.StructuredContent = structured
	res.Meta = &mcp.Meta{AdditionalFields: map[string]any{
		"openai/outputTemplate": a.WidgetURI(),
	}}
	return res, nil
}
