// Package loan implements the closed-form amortization math behind the
// mortgage and auto-loan calculator tools.
package loan

import (
	"fmt"
	"math"
)

// MonthlyPayment returns the level payment for a fully amortizing loan.
func MonthlyPayment(principal, annualRatePercent float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if annualRatePercent == 0 {
		return principal / float64(months)
	}
	i := annualRatePercent / 100 / 12
	return principal * i / (1 - math.Pow(1+i, -float64(months)))
}

// Month is one row of an amortization schedule.
type Month struct {
	Index     int     // 1-based
	Interest  float64
	Principal float64
	Balance   float64
}

// Amortize builds the full schedule, optionally with a constant extra
// principal payment each month. The schedule ends at payoff.
func Amortize(principal, annualRatePercent float64, months int, extraMonthly float64) []Month {
	if principal <= 0 || months <= 0 {
		return nil
	}
	payment := MonthlyPayment(principal, annualRatePercent, months)
	i := annualRatePercent / 100 / 12

	schedule := make([]Month, 0, months)
	balance := principal
	for m := 1; balance > 0.005 && m <= months; m++ {
		interest := balance * i
		principalPaid := payment - interest + extraMonthly
		if principalPaid > balance {
			principalPaid = balance
		}
		balance -= principalPaid
		schedule = append(schedule, Month{
			Index:     m,
			Interest:  interest,
			Principal: principalPaid,
			Balance:   balance,
		})
	}
	return schedule
}

// MortgageInput describes a mortgage scenario. Rate is annual percent
// (6.5 means 6.5%).
type MortgageInput struct {
	Price             float64
	DownPayment       float64
	AnnualRatePercent float64
	TermYears         int

	PropertyTaxRatePercent float64 // annual, of price
	InsuranceAnnual        float64
	HOAMonthly             float64
	PMIRatePercent         float64 // annual, of loan amount
	ExtraMonthly           float64
}

// BiweeklySummary describes the half-payment-every-two-weeks conversion.
type BiweeklySummary struct {
	Payment       float64 `json:"payment"`
	MonthsSaved   int     `json:"months_saved"`
	InterestSaved float64 `json:"interest_saved"`
}

// PayoffSummary describes an accelerated-payoff scenario.
type PayoffSummary struct {
	ExtraMonthly  float64 `json:"extra_monthly"`
	PayoffMonth   int     `json:"payoff_month"`
	InterestSaved float64 `json:"interest_saved"`
}

// MortgageSummary is the calculator output for one mortgage scenario.
type MortgageSummary struct {
	LoanAmount       float64 `json:"loan_amount"`
	RatePercent      float64 `json:"rate_percent"`
	TermYears        int     `json:"term_years"`
	MonthlyPI        float64 `json:"monthly_pi"`
	MonthlyTax       float64 `json:"monthly_tax,omitempty"`
	MonthlyInsurance float64 `json:"monthly_insurance,omitempty"`
	MonthlyPMI       float64 `json:"monthly_pmi,omitempty"`
	MonthlyHOA       float64 `json:"monthly_hoa,omitempty"`
	MonthlyTotal     float64 `json:"monthly_total"`
	TotalInterest    float64 `json:"total_interest"`
	TotalCost        float64 `json:"total_cost"`

	// PMI cancellation points. PMIEndsMonth is the 80% LTV
	// borrower-request month; PMIAutoEndsMonth is the 78% automatic
	// termination month. Zero when no PMI applies.
	PMIEndsMonth     int `json:"pmi_ends_month,omitempty"`
	PMIAutoEndsMonth int `json:"pmi_auto_ends_month,omitempty"`

	Biweekly     BiweeklySummary `json:"biweekly"`
	ExtraPayment *PayoffSummary  `json:"extra_payment,omitempty"`

	RateSource string `json:"rate_source,omitempty"`
}

// SummarizeMortgage computes the full mortgage summary.
func SummarizeMortgage(in MortgageInput) (MortgageSummary, error) {
	if in.Price <= 0 {
		return MortgageSummary{}, fmt.Errorf("price must be positive")
	}
	if in.DownPayment < 0 || in.DownPayment >= in.Price {
		return MortgageSummary{}, fmt.Errorf("down payment must be between 0 and the price")
	}
	if in.TermYears <= 0 {
		in.TermYears = 30
	}
	if in.AnnualRatePercent < 0 {
		return MortgageSummary{}, fmt.Errorf("rate must not be negative")
	}

	principal := in.Price - in.DownPayment
	months := in.TermYears * 12
	payment := MonthlyPayment(principal, in.AnnualRatePercent, months)
	totalInterest := payment*float64(months) - principal

	s := MortgageSummary{
		LoanAmount:       principal,
		RatePercent:      in.AnnualRatePercent,
		TermYears:        in.TermYears,
		MonthlyPI:        round2(payment),
		MonthlyTax:       round2(in.Price * in.PropertyTaxRatePercent / 100 / 12),
		MonthlyInsurance: round2(in.InsuranceAnnual / 12),
		MonthlyHOA:       round2(in.HOAMonthly),
		TotalInterest:    round2(totalInterest),
	}

	// PMI applies below 20% down.
	if in.PMIRatePercent > 0 && in.DownPayment < 0.20*in.Price {
		s.MonthlyPMI = round2(principal * in.PMIRatePercent / 100 / 12)
		s.PMIEndsMonth = monthBalanceReaches(principal, in.AnnualRatePercent, months, 0.80*in.Price)
		s.PMIAutoEndsMonth = monthBalanceReaches(principal, in.AnnualRatePercent, months, 0.78*in.Price)
	}

	s.MonthlyTotal = round2(s.MonthlyPI + s.MonthlyTax + s.MonthlyInsurance + s.MonthlyPMI + s.MonthlyHOA)
	s.TotalCost = round2(in.Price + totalInterest)

	s.Biweekly = biweekly(principal, in.AnnualRatePercent, months, payment, totalInterest)

	if in.ExtraMonthly > 0 {
		sched := Amortize(principal, in.AnnualRatePercent, months, in.ExtraMonthly)
		var interest float64
		for _, m := range sched {
			interest += m.Interest
		}
		s.ExtraPayment = &PayoffSummary{
			ExtraMonthly:  in.ExtraMonthly,
			PayoffMonth:   len(sched),
			InterestSaved: round2(totalInterest - interest),
		}
	}

	return s, nil
}

// monthBalanceReaches returns the first month the remaining balance drops to
// target or below, or 0 if it never does inside the term.
func monthBalanceReaches(principal, annualRatePercent float64, months int, target float64) int {
	for _, m := range Amortize(principal, annualRatePercent, months, 0) {
		if m.Balance <= target {
			return m.Index
		}
	}
	return 0
}

// biweekly converts the monthly payment to half-payments every two weeks
// (26 per year, one extra monthly payment a year) and reports the savings.
func biweekly(principal, annualRatePercent float64, months int, monthlyPayment, monthlyInterest float64) BiweeklySummary {
	half := monthlyPayment / 2
	i := annualRatePercent / 100 / 26

	balance := principal
	var interest float64
	periods := 0
	maxPeriods := months * 3 // safety bound, never hit for a real amortizing loan
	for balance > 0.005 && periods < maxPeriods {
		periods++
		periodInterest := balance * i
		interest += periodInterest
		pay := half - periodInterest
		if pay > balance {
			pay = balance
		}
		balance -= pay
	}

	equivalentMonths := int(math.Ceil(float64(periods) * 12 / 26))
	saved := months - equivalentMonths
	if saved < 0 {
		saved = 0
	}
	return BiweeklySummary{
		Payment:       round2(half),
		MonthsSaved:   saved,
		InterestSaved: round2(monthlyInterest - interest),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
