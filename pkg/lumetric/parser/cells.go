package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
	"github.com/xuri/excelize/v2"
)

// ExtractRows reads a sheet positionally with raw (unformatted) cell values.
// Empty rows are kept so row indexes match the sheet. String cells stay
// strings even when they look numeric ("01" is not 1); only number and
// untyped cells go through parseValue.
func ExtractRows(f *excelize.File, sheetName string) (models.RawMatrix, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	result := make(models.RawMatrix, len(rows))
	for rowIdx, row := range rows {
		row = trimTrailingEmpty(row)
		cells := make(models.Row, len(row))
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = typedValue(cellType, value)
		}
		result[rowIdx] = cells
	}
	return result, nil
}

// typedValue converts a raw xlsx value according to its stored cell type.
func typedValue(cellType excelize.CellType, value string) models.Cell {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return value
	case excelize.CellTypeBool:
		return value == "1" || strings.EqualFold(value, "true")
	default:
		return parseValue(value)
	}
}

// matrixFromStrings types every cell with parseValue and trims trailing empty cells.
// It serves untyped sources (delimited text, BIFF string dumps).
func matrixFromStrings(rows [][]string) models.RawMatrix {
	result := make(models.RawMatrix, len(rows))
	for rowIdx, row := range rows {
		row = trimTrailingEmpty(row)
		cells := make(models.Row, len(row))
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			cells[colIdx] = parseValue(value)
		}
		result[rowIdx] = cells
	}
	return result
}

func trimTrailingEmpty(row []string) []string {
	last := len(row)
	for last > 0 && row[last-1] == "" {
		last--
	}
	return row[:last]
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
// NaN and infinities stay strings.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	// Return as string
	return s
}
