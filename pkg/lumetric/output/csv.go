package output

import (
	"encoding/csv"
	"io"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
)

// WriteCSV writes table as CSV: a header row, then one row per category.
// Text cells carry no type, so reading the result back re-types labels that
// look numeric: "007" becomes "7" and "1.50" becomes "1.5". Other labels,
// names and values round-trip unchanged.
func WriteCSV(w io.Writer, table models.Table) error {
	cw := csv.NewWriter(w)
	for _, row := range table.Matrix() {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = models.CellString(cell)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
