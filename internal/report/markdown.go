package report

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-tracker/internal/models"

	"github.com/shopspring/decimal"
)

var headers = append([]string{"id"}, models.Columns...)

// WriteMarkdown writes records as a pipe table: header row, separator row, one row per record.
func WriteMarkdown(w io.Writer, records []models.Record) error {
	var sb strings.Builder
	writeRow(&sb, headers)

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&sb, sep)

	for _, r := range records {
		writeRow(&sb, rowValues(r))
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(escapeCell(c))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func rowValues(r models.Record) []string {
	return []string{
		fmt.Sprintf("%d", r.ID),
		r.Operation,
		r.Card,
		r.Merchant,
		formatNumber(r.Amount),
		formatNumber(r.Balance),
		r.Timestamp,
		r.Category,
	}
}

func formatNumber(f float64) string {
	return decimal.NewFromFloat(f).String()
}
