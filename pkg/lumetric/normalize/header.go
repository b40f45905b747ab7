package normalize

import (
	"strings"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
)

// categoryColumn is the column holding category labels.
const categoryColumn = 0

// HeaderCandidate is one row scored as a potential header.
type HeaderCandidate struct {
	// Row is the 0-based row index.
	Row int `json:"row"`
	// Defined is the number of positions holding a value.
	Defined int `json:"defined"`
	// SeriesColumns is the number of named columns after the category column.
	SeriesColumns int `json:"series_columns"`
	// Qualifies is true when the row has at least two defined positions and a
	// non-empty category column.
	Qualifies bool `json:"qualifies"`
}

type seriesColumn struct {
	index int
	name  string
}

// ScanHeaders scores the first limit rows of m (all rows when limit <= 0).
func ScanHeaders(m models.RawMatrix, limit int) []HeaderCandidate {
	n := len(m)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]HeaderCandidate, 0, n)
	for i := 0; i < n; i++ {
		row := m[i]
		defined := row.Defined()
		out = append(out, HeaderCandidate{
			Row:           i,
			Defined:       defined,
			SeriesColumns: len(seriesColumns(row)),
			Qualifies:     defined >= 2 && !models.IsEmpty(row.At(categoryColumn)),
		})
	}
	return out
}

// DetectHeader returns the first qualifying row within the scan limit.
func DetectHeader(m models.RawMatrix, limit int) (HeaderCandidate, bool) {
	for _, c := range ScanHeaders(m, limit) {
		if c.Qualifies {
			return c, true
		}
	}
	return HeaderCandidate{Row: -1}, false
}

// seriesColumns lists every named column after the category column.
func seriesColumns(header models.Row) []seriesColumn {
	var cols []seriesColumn
	for i, cell := range header {
		if i == categoryColumn {
			continue
		}
		name := strings.TrimSpace(models.CellString(cell))
		if name == "" {
			continue
		}
		cols = append(cols, seriesColumn{index: i, name: name})
	}
	return cols
}
