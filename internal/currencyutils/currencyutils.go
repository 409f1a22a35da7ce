// Package currencyutils parses and formats the money amounts found in bank messages.
package currencyutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency labels amounts when no other currency is known.
const DefaultCurrency = "SAR"

// ErrEmptyAmount is returned for blank input.
var ErrEmptyAmount = errors.New("empty amount")

// currencyTokens matches currency codes, symbols and whitespace that may surround a number.
var currencyTokens = regexp.MustCompile(`(?i)SAR|SR|ر\.?\s?س\.?|ريال|﷼|[$€£\s\x{00a0}]`)

// arabicDigits maps Arabic-Indic and Eastern Arabic-Indic digits, plus the Arabic
// decimal and thousands separators, to their ASCII forms.
var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٫", ".", "٬", ",",
)

// ParseAmount parses amounts such as "35", "1,250.50", "٣٥٫٥", "SAR 12" or "1.234,56".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount rewrites amountStr into a form decimal.NewFromString accepts.
func StandardizeAmount(amountStr string) string {
	s := arabicDigits.Replace(strings.TrimSpace(amountStr))
	s = currencyTokens.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "'", "")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = parts[0] + "." + parts[1]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}

// FormatAmount renders amount with two decimals after the currency code, e.g. "SAR 12.50".
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}
