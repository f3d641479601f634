package service

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"expensetracker/internal/model"
)

// OtherCategory collects expenses without a category label.
const OtherCategory = "Other"

// Summary aggregates a set of expenses.
type Summary struct {
	TotalSpend   float64            `json:"totalSpend"`
	CategoryWise map[string]float64 `json:"categoryWise"`
	ExpenseCount int                `json:"expenseCount"`
}

// Period selects a calendar month.
type Period struct {
	Month int
	Year  int
}

// FilterByPeriod keeps the expenses dated inside p, preserving order.
func FilterByPeriod(expenses []model.Expense, p Period) []model.Expense {
	out := make([]model.Expense, 0, len(expenses))
	for i := range expenses {
		if expenses[i].InMonth(p.Month, p.Year) {
			out = append(out, expenses[i])
		}
	}
	return out
}

// Summarize totals expenses overall and per category. Amounts are accumulated as
// decimals in input order so results do not drift with float rounding.
func Summarize(expenses []model.Expense) Summary {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		// decimal panics on NaN and Inf; such rows predate amount bounds.
		if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
			continue
		}
		amount := decimal.NewFromFloat(e.Amount)
		total = total.Add(amount)

		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = OtherCategory
		}
		byCategory[category] = byCategory[category].Add(amount)
	}

	categoryWise := make(map[string]float64, len(byCategory))
	for name, sum := range byCategory {
		categoryWise[name] = sum.InexactFloat64()
	}

	return Summary{
		TotalSpend:   total.InexactFloat64(),
		CategoryWise: categoryWise,
		ExpenseCount: len(expenses),
	}
}
