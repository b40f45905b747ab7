package lumetric

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/normalize"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/parser"
	"github.com/xuri/excelize/v2"
)

func xlsxFixture(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	// Row 1 left empty so header detection has to look further down.
	f.SetCellValue("Sheet1", "A2", "Region")
	f.SetCellValue("Sheet1", "B2", "Q1")
	f.SetCellValue("Sheet1", "C2", "Q2")
	f.SetCellValue("Sheet1", "A3", "East")
	f.SetCellValue("Sheet1", "B3", 10)
	f.SetCellValue("Sheet1", "C3", 12.5)
	f.SetCellValue("Sheet1", "A4", "West")
	f.SetCellValue("Sheet1", "B4", "$1,234.56")
	f.SetCellValue("Sheet1", "C4", "n/a")

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseCSV(t *testing.T) {
	table, err := Parse([]byte("Category,Series1,Series2\nRowName1,10,20\nRowName2,15,25\n"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"RowName1", "RowName2"}, table.Categories)
	require.Len(t, table.Series, 2)
	assert.Equal(t, "Series1", table.Series[0].Name)
	assert.Equal(t, []float64{10, 15}, table.Series[0].Values())
	assert.Equal(t, []float64{20, 25}, table.Series[1].Values())
	assert.NotEmpty(t, table.Series[0].ID)
	assert.NotEqual(t, table.Series[0].ID, table.Series[1].ID)
}

func TestParseDelimiters(t *testing.T) {
	for name, input := range map[string]string{
		"semicolon": "City;Sales\nNYC;100\nLA;200\n",
		"pipe":      "City|Sales\nNYC|100\nLA|200\n",
		"tab":       "City\tSales\nNYC\t100\nLA\t200\n",
	} {
		t.Run(name, func(t *testing.T) {
			table, err := Parse([]byte(input), DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, []string{"NYC", "LA"}, table.Categories)
			assert.Equal(t, []float64{100, 200}, table.Series[0].Values())
		})
	}
}

func TestParseRTF(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		categories []string
		values     []float64
	}{
		{
			name:       "minimal",
			input:      `{\rtf1\ansi\par City,Sales\par NYC,100\par}`,
			categories: []string{"NYC"},
			values:     []float64{100},
		},
		{
			name: "textedit export",
			input: `{\rtf1\ansi\ansicpg1252\cocoartf2639
{\fonttbl\f0\fswiss\fcharset0 Helvetica;}
{\colortbl;\red255\green255\blue255;}
\f0\fs24 \cf0 City,Sales\
NYC,100\
LA,200}`,
			categories: []string{"NYC", "LA"},
			values:     []float64{100, 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.input), DefaultOptions())
			require.NoError(t, err)

			assert.Equal(t, "City", table.CategoryLabel)
			assert.Equal(t, tt.categories, table.Categories)
			require.Len(t, table.Series, 1)
			assert.Equal(t, "Sales", table.Series[0].Name)
			assert.Equal(t, tt.values, table.Series[0].Values())
		})
	}
}

func TestParseXLSX(t *testing.T) {
	table, err := Parse(xlsxFixture(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Region", table.CategoryLabel)
	assert.Equal(t, []string{"East", "West"}, table.Categories)
	require.Len(t, table.Series, 2)
	assert.Equal(t, []float64{10, 1234.56}, table.Series[0].Values())
	assert.Equal(t, []float64{12.5, 0}, table.Series[1].Values())
	assert.Equal(t, normalize.DefaultPalette[1], table.Series[1].Color)
}

func TestParseXLSXTextCategories(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellStr("Sheet1", "A1", "Code")
	f.SetCellStr("Sheet1", "B1", "Qty")
	for i, code := range []string{"01", "1", "1.10"} {
		row := i + 2
		f.SetCellStr("Sheet1", fmt.Sprintf("A%d", row), code)
		f.SetCellValue("Sheet1", fmt.Sprintf("B%d", row), 5+2*i)
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := Parse(buf.Bytes(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "1", "1.10"}, table.Categories)
	assert.Equal(t, []float64{5, 7, 9}, table.Series[0].Values())
}

func TestParseFileXLS(t *testing.T) {
	table, err := ParseFile(filepath.Join("parser", "testdata", "sales.xls"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "City", table.CategoryLabel)
	assert.Equal(t, []string{"NYC", "LA"}, table.Categories)
	assert.Equal(t, []float64{100, 200}, table.Series[0].Values())
}

func TestParseFileSniffsContent(t *testing.T) {
	// xlsx bytes behind a .csv name still decode as a workbook.
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, xlsxFixture(t), 0o644))

	table, err := ParseFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"East", "West"}, table.Categories)
}

func TestParseFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())

		var re *ReadError
		require.True(t, errors.As(err, &re))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("too large", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "big.csv")
		require.NoError(t, os.WriteFile(path, []byte("Category,A\nx,1\n"), 0o644))

		opts := DefaultOptions()
		opts.MaxFileSize = 4
		_, err := ParseFile(path, opts)

		var re *ReadError
		require.True(t, errors.As(err, &re))
		assert.True(t, errors.Is(err, ErrFileTooLarge))
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReader(t *testing.T) {
	table, err := ParseReader(bytes.NewReader([]byte("Category,A\nx,1\n")), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, table.Categories)

	_, err = ParseReader(failingReader{}, DefaultOptions())
	var re *ReadError
	require.True(t, errors.As(err, &re))
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestParseErrorsPropagate(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		_, err := Parse([]byte("Category,A\n"), DefaultOptions())

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.True(t, errors.Is(err, normalize.ErrTooFewRows))
	})

	t.Run("no codecs", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Codecs = []parser.Codec{}
		_, err := Parse([]byte("Category,A\nx,1\n"), opts)

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.True(t, errors.Is(err, parser.ErrCodecUnavailable))
	})

	t.Run("binary", func(t *testing.T) {
		_, err := Parse([]byte{0x00, 0x01, 0x02, 0x03}, DefaultOptions())
		assert.True(t, errors.Is(err, parser.ErrUnsupportedFormat))
	})
}

func TestParseConcurrent(t *testing.T) {
	data := xlsxFixture(t)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = Parse(data, DefaultOptions())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestInspect(t *testing.T) {
	report, err := Inspect(xlsxFixture(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, parser.FormatXLSX, report.Format)
	assert.Equal(t, []string{"Sheet1"}, report.Sheets)
	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, 1, report.HeaderRow)
	require.NotNil(t, report.Region)
	assert.Equal(t, "A2:C4", report.Region.Range)
	assert.Empty(t, report.Error)

	report, err = Inspect([]byte("Category, \nx,1\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, report.HeaderRow)
	assert.Contains(t, report.Error, "no series columns")
}
