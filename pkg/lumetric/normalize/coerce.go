package normalize

import (
	"math"
	"regexp"
	"strconv"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
)

var (
	nonNumericChars = regexp.MustCompile(`[^0-9.\-]`)
	leadingNumber   = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// ToNumber coerces a cell to a finite float64. Strings lose every rune other
// than digits, '.' and '-', then their longest leading number is parsed, so
// "$1,234.56" is 1234.56 and "1.2.3" is 1.2. Anything unparseable, empty or
// non-numeric (bool, time) is 0.
func ToNumber(c models.Cell) float64 {
	switch v := c.(type) {
	case string:
		return parseLoose(v)
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return 0
	}
}

func parseLoose(s string) float64 {
	m := leadingNumber.FindString(nonNumericChars.ReplaceAllString(s, ""))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
