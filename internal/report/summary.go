// Package report summarizes stored transactions and exports them as Markdown,
// Excel or CSV.
package report

import (
	"fmt"
	"io"

	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Currency labels every amount printed by the summary.
const Currency = currencyutils.DefaultCurrency

// Summary holds the spending total and the per-category subtotals.
type Summary struct {
	Total      decimal.Decimal
	ByCategory map[string]decimal.Decimal
	Count      int
	order      []string
}

// Summarize adds up record amounts overall and per stored category label.
func Summarize(records []models.Record) Summary {
	s := Summary{
		Total:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
		Count:      len(records),
	}
	for _, r := range records {
		amount := decimal.NewFromFloat(r.Amount)
		s.Total = s.Total.Add(amount)

		sub, ok := s.ByCategory[r.Category]
		if !ok {
			s.order = append(s.order, r.Category)
			sub = decimal.Zero
		}
		s.ByCategory[r.Category] = sub.Add(amount)
	}
	return s
}

// Categories returns the category labels in the order they first appeared.
func (s Summary) Categories() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// CategoryTotal is one line of the per-category breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Breakdown returns the subtotals in first-seen order.
func (s Summary) Breakdown() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(s.order))
	for _, c := range s.order {
		out = append(out, CategoryTotal{Category: c, Amount: s.ByCategory[c]})
	}
	return out
}

// WriteText prints the summary the way the interactive loop shows it.
func (s Summary) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Total Spending: %s %s\n", Currency, s.Total.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "By Category:"); err != nil {
		return err
	}
	for _, c := range s.order {
		if _, err := fmt.Fprintf(w, "  - %s: %s\n", c, currencyutils.FormatAmount(s.ByCategory[c], Currency)); err != nil {
			return err
		}
	}
	return nil
}
