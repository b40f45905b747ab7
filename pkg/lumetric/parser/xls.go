package parser

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
)

var errNoWorkbookStream = errors.New("no Workbook stream in compound file")

// XLSCodec decodes legacy BIFF workbooks.
type XLSCodec struct {
	// Charset is the fallback codepage for pre-BIFF8 strings.
	Charset string
}

// NewXLSCodec creates an XLSCodec reading legacy strings as Windows-1252.
func NewXLSCodec() *XLSCodec {
	return &XLSCodec{Charset: "windows-1252"}
}

// Name implements Codec.
func (c *XLSCodec) Name() string { return string(FormatXLS) }

// Sniff implements Codec.
func (c *XLSCodec) Sniff(data []byte) bool { return isXLS(data) }

// Decode implements Codec. The BIFF reader panics on some malformed
// streams; those panics surface as a DecodeError.
func (c *XLSCodec) Decode(data []byte) (wb models.Workbook, err error) {
	defer func() {
		if r := recover(); r != nil {
			wb = models.Workbook{}
			err = NewDecodeError(c.Name(), fmt.Errorf("malformed workbook: %v", r))
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), c.Charset)
	if err != nil {
		return models.Workbook{}, NewDecodeError(c.Name(), err)
	}
	if book == nil {
		return models.Workbook{}, NewDecodeError(c.Name(), errNoWorkbookStream)
	}

	wb = models.Workbook{Format: c.Name()}
	for i := 0; i < book.NumSheets(); i++ {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}
		wb.Sheets = append(wb.Sheets, models.Sheet{
			Name: sheet.Name,
			Rows: matrixFromStrings(sheetStrings(sheet)),
		})
	}
	return wb, nil
}

// sheetStrings flattens a BIFF sheet into positional string rows. Rows
// without cells become nil placeholders.
func sheetStrings(sheet *xls.WorkSheet) [][]string {
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := rowAt(sheet, r)
		if row == nil || row.LastCol() <= row.FirstCol() {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for col := row.FirstCol(); col < row.LastCol(); col++ {
			cells[col] = row.Col(col)
		}
		rows = append(rows, cells)
	}
	return rows
}

// rowAt returns row r, or nil when the sheet has no record for it.
// WorkSheet.Row dereferences missing rows, so that panic is absorbed here.
func rowAt(sheet *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(r)
}
