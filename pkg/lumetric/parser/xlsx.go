package parser

import (
	"bytes"
	"fmt"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
	"github.com/xuri/excelize/v2"
)

// XLSXCodec decodes Office Open XML workbooks with excelize.
type XLSXCodec struct {
	// Password decrypts password-protected workbooks. Without it they fail
	// with a DecodeError.
	Password string
}

// NewXLSXCodec creates an XLSXCodec.
func NewXLSXCodec() *XLSXCodec {
	return &XLSXCodec{}
}

// Name implements Codec.
func (c *XLSXCodec) Name() string { return string(FormatXLSX) }

// Sniff implements Codec.
func (c *XLSXCodec) Sniff(data []byte) bool { return isXLSX(data) }

// Decode implements Codec. Every sheet is read, in workbook order.
func (c *XLSXCodec) Decode(data []byte) (models.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{Password: c.Password})
	if err != nil {
		return models.Workbook{}, NewDecodeError(c.Name(), err)
	}
	defer f.Close()

	wb := models.Workbook{Format: c.Name()}
	for _, sheetName := range f.GetSheetList() {
		rows, err := ExtractRows(f, sheetName)
		if err != nil {
			return models.Workbook{}, NewDecodeError(c.Name(), fmt.Errorf("sheet %q: %w", sheetName, err))
		}
		wb.Sheets = append(wb.Sheets, models.Sheet{Name: sheetName, Rows: rows})
	}
	return wb, nil
}
