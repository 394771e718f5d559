package loan

import "fmt"

// AutoInput describes an auto-loan scenario.
type AutoInput struct {
	Price             float64
	DownPayment       float64
	TradeIn           float64
	SalesTaxPercent   float64 // applied to price minus trade-in
	Fees              float64 // title, registration, doc fees, rolled into the loan
	AnnualRatePercent float64
	TermMonths        int
}

// AutoSummary is the calculator output for one auto-loan scenario.
type AutoSummary struct {
	AmountFinanced float64 `json:"amount_financed"`
	SalesTax       float64 `json:"sales_tax,omitempty"`
	RatePercent    float64 `json:"rate_percent"`
	TermMonths     int     `json:"term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalCost      float64 `json:"total_cost"`

	RateSource string `json:"rate_source,omitempty"`
}

// SummarizeAuto computes the auto-loan summary. Most states tax the price
// after the trade-in credit, which is what the tax line assumes.
func SummarizeAuto(in AutoInput) (AutoSummary, error) {
	if in.Price <= 0 {
		return AutoSummary{}, fmt.Errorf("price must be positive")
	}
	if in.DownPayment < 0 || in.TradeIn < 0 {
		return AutoSummary{}, fmt.Errorf("down payment and trade-in must not be negative")
	}
	if in.TermMonths <= 0 {
		in.TermMonths = 60
	}
	if in.AnnualRatePercent < 0 {
		return AutoSummary{}, fmt.Errorf("rate must not be negative")
	}

	taxable := in.Price - in.TradeIn
	if taxable < 0 {
		taxable = 0
	}
	tax := taxable * in.SalesTaxPercent / 100

	financed := in.Price - in.DownPayment - in.TradeIn + tax + in.Fees
	if financed <= 0 {
		return AutoSummary{}, fmt.Errorf("nothing left to finance")
	}

	payment := MonthlyPayment(financed, in.AnnualRatePercent, in.TermMonths)
	totalInterest := payment*float64(in.TermMonths) - financed

	return AutoSummary{
		AmountFinanced: round2(financed),
		SalesTax:       round2(tax),
		RatePercent:    in.AnnualRatePercent,
		TermMonths:     in.TermMonths,
		MonthlyPayment: round2(payment),
		TotalInterest:  round2(totalInterest),
		TotalCost:      round2(in.Price + tax + in.Fees + totalInterest),
	}, nil
}
