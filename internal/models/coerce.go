package models

import (
	"encoding/json"
	"fmt"
	"math"

	"fjacquet/budget-tracker/internal/currencyutils"

	"github.com/shopspring/decimal"
)

// ToFloat coerces v to float64. It accepts every Go numeric type, json.Number,
// decimal.Decimal, []byte and amount strings as understood by currencyutils.ParseAmount.
// NaN and values outside the float64 range are rejected.
func ToFloat(v interface{}) (float64, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if !IsFinite(f) {
		return 0, fmt.Errorf("number %v is out of range", v)
	}
	return f, nil
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return parseNumeric(n.String())
	case decimal.Decimal:
		return n.InexactFloat64(), nil
	case string:
		return parseNumeric(n)
	case []byte:
		return parseNumeric(string(n))
	case nil:
		return 0, fmt.Errorf("value is null")
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

func parseNumeric(s string) (float64, error) {
	d, err := currencyutils.ParseAmount(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
