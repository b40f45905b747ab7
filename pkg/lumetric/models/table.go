package models

// DataPoint pairs one series value with the category at the same index.
type DataPoint struct {
	// Category is the row label the value belongs to.
	Category string `json:"category"`
	// Value is the coerced numeric value (never NaN).
	Value float64 `json:"value"`
}

// Series is one named numeric column of a table.
type Series struct {
	// ID identifies the series across copies of a table.
	ID string `json:"id"`
	// Name is the trimmed header text.
	Name string `json:"name"`
	// Color is the palette token assigned by series position.
	Color string `json:"color"`
	// Visible is true on creation; renderers skip hidden series.
	Visible bool `json:"visible"`
	// Data holds one point per table category, in category order.
	Data []DataPoint `json:"data"`
}

// Values returns the series values in category order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Data))
	for i, p := range s.Data {
		out[i] = p.Value
	}
	return out
}

// Table is the canonical model every renderer consumes.
type Table struct {
	// CategoryLabel is the header text of the category column.
	CategoryLabel string `json:"category_label,omitempty"`
	// Categories lists row labels in first-seen order.
	Categories []string `json:"categories"`
	// Series lists the numeric columns in header order.
	Series []Series `json:"series"`
}

// Empty reports whether the table has nothing to render.
func (t Table) Empty() bool {
	return len(t.Categories) == 0 || len(t.Series) == 0
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := Table{
		CategoryLabel: t.CategoryLabel,
		Categories:    append([]string(nil), t.Categories...),
		Series:        make([]Series, len(t.Series)),
	}
	for i, s := range t.Series {
		s.Data = append([]DataPoint(nil), s.Data...)
		out.Series[i] = s
	}
	return out
}

// WithSeriesVisible returns a copy with the visibility of series id set.
func (t Table) WithSeriesVisible(id string, visible bool) Table {
	out := t.Clone()
	for i := range out.Series {
		if out.Series[i].ID == id {
			out.Series[i].Visible = visible
		}
	}
	return out
}

// WithoutSeries returns a copy with series id removed.
func (t Table) WithoutSeries(id string) Table {
	out := t.Clone()
	kept := out.Series[:0]
	for _, s := range out.Series {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	out.Series = kept
	return out
}

// Matrix re-encodes the table as a header row followed by one row per
// category: column 0 holds the category and each series follows in order.
func (t Table) Matrix() RawMatrix {
	label := t.CategoryLabel
	if label == "" {
		label = "Category"
	}
	header := make(Row, 0, len(t.Series)+1)
	header = append(header, label)
	for _, s := range t.Series {
		header = append(header, s.Name)
	}

	m := make(RawMatrix, 0, len(t.Categories)+1)
	m = append(m, header)
	for i, cat := range t.Categories {
		row := make(Row, 0, len(t.Series)+1)
		row = append(row, cat)
		for _, s := range t.Series {
			var v Cell
			if i < len(s.Data) {
				v = s.Data[i].Value
			}
			row = append(row, v)
		}
		m = append(m, row)
	}
	return m
}
