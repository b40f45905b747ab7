// Package models defines the data structures shared by the decoder and the normalizer.
package models

import (
	"math"
	"strconv"
	"strings"
)

// Cell is one spreadsheet value. Decoders produce nil for empty cells,
// string for text and int64 or float64 for numbers, but any value is tolerated.
type Cell = interface{}

// Row is an ordered sequence of cells. Rows in a matrix need not have equal length.
type Row []Cell

// RawMatrix is a decoded sheet accessed positionally: row 0 is the first
// physical row, not a header-keyed record.
type RawMatrix []Row

// At returns the cell at column col, or nil when the row is shorter.
func (r Row) At(col int) Cell {
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// Defined counts positions holding a value: anything but nil or "".
// Whitespace-only strings count.
func (r Row) Defined() int {
	n := 0
	for _, c := range r {
		if c == nil {
			continue
		}
		if s, ok := c.(string); ok && s == "" {
			continue
		}
		n++
	}
	return n
}

// IsEmpty reports whether a cell has no content once rendered and trimmed.
func IsEmpty(c Cell) bool {
	return strings.TrimSpace(CellString(c)) == ""
}

// CellString renders a cell as text. Numbers use the shortest
// representation that round-trips, so 100 becomes "100" and 1.5 becomes "1.5".
func CellString(c Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return string(v)
	case interface{ String() string }:
		return v.String()
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
