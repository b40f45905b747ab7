// Package normalize turns a decoded cell matrix into the canonical category/series table.
//
// Column A of every data row is the category label; each named header
// column after it becomes one numeric series. Cells that do not parse as
// numbers become 0 rather than failing the file.
package normalize

import (
	"strings"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
)

// Normalize builds a Table from m. Any failure is a *ValidationError and no
// partial table is returned.
func Normalize(m models.RawMatrix, cfg Config) (models.Table, error) {
	cfg = cfg.withDefaults()

	if len(m) < 2 {
		return models.Table{}, invalid(-1, ErrTooFewRows)
	}

	header, ok := DetectHeader(m, cfg.HeaderScanLimit)
	if !ok {
		return models.Table{}, invalid(-1, ErrNoHeaderRow)
	}

	headerRow := m[header.Row]
	cols := seriesColumns(headerRow)
	if len(cols) == 0 {
		return models.Table{}, invalid(header.Row, ErrNoSeriesColumns)
	}

	acc := newAccumulator(cfg.Duplicates)
	skipped := 0
	for _, row := range m[header.Row+1:] {
		if len(row) == 0 {
			skipped++
			continue
		}
		category := strings.TrimSpace(models.CellString(row.At(categoryColumn)))
		if category == "" {
			skipped++
			continue
		}

		values := make([]float64, len(cols))
		for i, col := range cols {
			values[i] = ToNumber(row.At(col.index))
		}
		acc.add(category, values)
	}

	if acc.rows == 0 {
		return models.Table{}, invalid(header.Row, ErrNoDataRows)
	}

	table := models.Table{
		CategoryLabel: strings.TrimSpace(models.CellString(headerRow.At(categoryColumn))),
		Categories:    acc.categories,
		Series:        make([]models.Series, len(cols)),
	}
	for i, col := range cols {
		data := make([]models.DataPoint, len(acc.categories))
		for j, category := range acc.categories {
			data[j] = models.DataPoint{Category: category, Value: acc.values[j][i]}
		}
		table.Series[i] = models.Series{
			ID:      cfg.NewID(),
			Name:    col.name,
			Color:   ColorAt(cfg.Palette, i),
			Visible: true,
			Data:    data,
		}
	}

	cfg.Logger.Debug("normalized table",
		"header_row", header.Row,
		"series", len(table.Series),
		"categories", len(table.Categories),
		"data_rows", acc.rows,
		"skipped_rows", skipped,
		"merged_duplicates", acc.rows-len(acc.categories),
		"duplicates", string(cfg.Duplicates),
	)

	return table, nil
}

// accumulator collects category rows under a duplicate policy.
type accumulator struct {
	policy     DuplicatePolicy
	categories []string
	values     [][]float64
	index      map[string]int
	rows       int
}

func newAccumulator(policy DuplicatePolicy) *accumulator {
	return &accumulator{
		policy: policy,
		index:  make(map[string]int),
	}
}

func (a *accumulator) add(category string, values []float64) {
	a.rows++

	if a.policy != DuplicatesKeep {
		if pos, ok := a.index[category]; ok {
			if a.policy == DuplicatesSum {
				for i, v := range values {
					a.values[pos][i] += v
				}
			} else {
				a.values[pos] = values
			}
			return
		}
		a.index[category] = len(a.categories)
	}

	a.categories = append(a.categories, category)
	a.values = append(a.values, values)
}
