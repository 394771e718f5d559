package loan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lukman83/widgetapps/internal/apps"
	"github.com/lukman83/widgetapps/internal/fred"
	"github.com/lukman83/widgetapps/internal/widgets"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RateSource supplies current average rates when the caller doesn't name one.
type RateSource interface {
	CurrentRate(ctx context.Context, series string) (fred.Rate, error)
}

// App is the mortgage/auto-loan calculator app.
type App struct {
	rates   RateSource // may be nil; rate then becomes a required argument
	widgets *widgets.Store
}

func New(rates RateSource, store *widgets.Store) *App {
	return &App{rates: rates, widgets: store}
}

func (a *App) Name() string        { return "loans" }
func (a *App) Description() string { return "Mortgage and auto-loan payment calculator" }
func (a *App) WidgetURI() string   { return apps.WidgetURI(a.Name()) }

func (a *App) WidgetHTML() (string, error) { return a.widgets.HTML(a.Name()) }

func (a *App) meta() *mcp.Meta {
	return &mcp.Meta{AdditionalFields: map[string]any{
		"openai/outputTemplate":          a.WidgetURI(),
		"openai/toolInvocation/invoking": "Crunching the numbers...",
		"openai/widgetAccessible":        true,
	}}
}

func (a *App) Tools() []server.ServerTool {
	mortgage := mcp.NewTool("mortgage_summary",
		mcp.WithDescription("Estimate monthly mortgage payments, PMI payoff, total interest and biweekly savings. Unset numbers are inferred from context where possible."),
		mcp.WithNumber("price", mcp.Description("Home purchase price in dollars")),
		mcp.WithNumber("down_payment", mcp.Description("Down payment in dollars")),
		mcp.WithNumber("rate", mcp.Description("Annual interest rate percent; current 30y average when omitted")),
		mcp.WithNumber("term_years", mcp.Description("Loan term in years (default 30)")),
		mcp.WithNumber("tax_rate", mcp.Description("Annual property tax percent of price")),
		mcp.WithNumber("insurance_annual", mcp.Description("Annual homeowners insurance in dollars")),
		mcp.WithNumber("hoa_monthly", mcp.Description("Monthly HOA dues in dollars")),
		mcp.WithNumber("pmi_rate", mcp.Description("Annual PMI percent of loan amount; applies under 20% down")),
		mcp.WithNumber("extra_monthly", mcp.Description("Extra principal paid each month")),
		mcp.WithString("context", mcp.Description("Freeform text to pull missing numbers from")),
	)
	mortgage.Meta = a.meta()

	auto := mcp.NewTool("auto_loan_summary",
		mcp.WithDescription("Estimate monthly auto-loan payments, sales tax and total cost. Unset numbers are inferred from context where possible."),
		mcp.WithNumber("price", mcp.Description("Vehicle price in dollars")),
		mcp.WithNumber("down_payment", mcp.Description("Down payment in dollars")),
		mcp.WithNumber("rate", mcp.Description("Annual interest rate percent; current 48m average when omitted")),
		mcp.WithNumber("term_months", mcp.Description("Loan term in months (default 60)")),
		mcp.WithNumber("trade_in", mcp.Description("Trade-in value in dollars")),
		mcp.WithNumber("sales_tax_rate", mcp.Description("Sales tax percent, applied after trade-in credit")),
		mcp.WithNumber("fees", mcp.Description("Title/registration/doc fees rolled into the loan")),
		mcp.WithString("context", mcp.Description("Freeform text to pull missing numbers from")),
	)
	auto.Meta = a.meta()

	return []server.ServerTool{
		{Tool: mortgage, Handler: a.handleMortgage},
		{Tool: auto, Handler: a.handleAuto},
	}
}

func (a *App) handleMortgage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hints := ParseHints(request.GetString("context", ""))

	in := MortgageInput{
		Price:                  request.GetFloat("price", hints.Price),
		DownPayment:            request.GetFloat("down_payment", 0),
		AnnualRatePercent:      request.GetFloat("rate", hints.RatePercent),
		TermYears:              request.GetInt("term_years", hints.TermYears),
		PropertyTaxRatePercent: request.GetFloat("tax_rate", 0),
		InsuranceAnnual:        request.GetFloat("insurance_annual", 0),
		HOAMonthly:             request.GetFloat("hoa_monthly", 0),
		PMIRatePercent:         request.GetFloat("pmi_rate", 0),
		ExtraMonthly:           request.GetFloat("extra_monthly", 0),
	}
	if in.Price <= 0 {
		return mcp.NewToolResultError("price is required (give a number or mention it in context)"), nil
	}
	if in.DownPayment == 0 {
		in.DownPayment = hints.Down(in.Price)
	}

	var rateSource string
	if in.AnnualRatePercent == 0 {
		r, err := a.currentRate(ctx, fred.SeriesMortgage30Y)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("rate is required: %v", err)), nil
		}
		in.AnnualRatePercent = r.Percent
		rateSource = rateLabel(r)
	}

	summary, err := SummarizeMortgage(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary.RateSource = rateSource

	return a.result(map[string]any{
		"kind":     "mortgage",
		"mortgage": summary,
	})
}

func (a *App) handleAuto(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hints := ParseHints(request.GetString("context", ""))

	in := AutoInput{
		Price:             request.GetFloat("price", hints.Price),
		DownPayment:       request.GetFloat("down_payment", 0),
		TradeIn:           request.GetFloat("trade_in", hints.TradeIn),
		SalesTaxPercent:   request.GetFloat("sales_tax_rate", 0),
		Fees:              request.GetFloat("fees", 0),
		AnnualRatePercent: request.GetFloat("rate", hints.RatePercent),
		TermMonths:        request.GetInt("term_months", hints.TermMonths),
	}
	if in.Price <= 0 {
		return mcp.NewToolResultError("price is required (give a number or mention it in context)"), nil
	}
	if in.DownPayment == 0 {
		in.DownPayment = hints.Down(in.Price)
	}

	var rateSource string
	if in.AnnualRatePercent == 0 {
		r, err := a.currentRate(ctx, fred.SeriesAuto48M)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("rate is required: %v", err)), nil
		}
		in.AnnualRatePercent = r.Percent
		rateSource = rateLabel(r)
	}

	summary, err := SummarizeAuto(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary.RateSource = rateSource

	return a.result(map[string]any{
		"kind": "auto",
		"auto": summary,
	})
}

func (a *App) currentRate(ctx context.Context, series string) (fred.Rate, error) {
	if a.rates == nil {
		return fred.Rate{}, fmt.Errorf("no rate source configured")
	}
	return a.rates.CurrentRate(ctx, series)
}

func rateLabel(r fred.Rate) string {
	label := fmt.Sprintf("FRED %s (%s)", r.Series, r.Date)
	if r.Stale {
		label += " [stale]"
	}
	return label
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
