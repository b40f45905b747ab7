package parser

import (
	"fmt"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// TableRegion is the bounding box of populated cells in a matrix.
type TableRegion struct {
	// Range is the region in A1 notation, e.g. "A2:C10".
	Range string `json:"range"`
	// FirstRow and LastRow are 0-based, inclusive.
	FirstRow int `json:"first_row"`
	LastRow  int `json:"last_row"`
	// FirstCol and LastCol are 0-based, inclusive.
	FirstCol int `json:"first_col"`
	LastCol  int `json:"last_col"`
	// Populated is the number of non-empty cells inside the region.
	Populated int `json:"populated"`
	// Density is Populated over the region area.
	Density float64 `json:"density"`
}

// DetectTable finds the region of a matrix that likely holds a table.
// It reports false when the matrix is too sparse to be one.
func DetectTable(rows models.RawMatrix, params TableDetectionParams) (TableRegion, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return TableRegion{}, false
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)
	if nonEmptyCells < params.MinNonemptyCells {
		return TableRegion{}, false
	}

	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return TableRegion{}, false
	}

	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)

	return TableRegion{
		Range:     fmt.Sprintf("%s:%s", startCell, endCell),
		FirstRow:  minRow,
		LastRow:   maxRow,
		FirstCol:  minCol,
		LastCol:   maxCol,
		Populated: nonEmptyCells,
		Density:   density,
	}, true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows models.RawMatrix) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if models.IsEmpty(cell) {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows models.RawMatrix, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if !models.IsEmpty(row[colIdx]) {
				count++
			}
		}
	}
	return count
}
