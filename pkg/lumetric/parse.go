package lumetric

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/normalize"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/parser"
)

// Parse decodes data and normalizes its first sheet into a Table.
// Errors are *DecodeError or *ValidationError and carry a user-facing message.
func Parse(data []byte, opts Options) (models.Table, error) {
	logger := opts.logger()

	decoder := parser.NewDecoder(opts.codecs()...).WithLogger(logger)
	wb, err := decoder.Decode(data)
	if err != nil {
		return models.Table{}, err
	}
	sheet := wb.Sheets[0]
	logger.Debug("decoded workbook",
		"format", wb.Format, "sheets", len(wb.Sheets), "sheet", sheet.Name, "rows", len(sheet.Rows))

	cfg := opts.Normalize
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	return normalize.Normalize(sheet.Rows, cfg)
}

// ParseReader reads r fully and parses the result. Read failures are *ReadError.
func ParseReader(r io.Reader, opts Options) (models.Table, error) {
	data, err := readAll(r, opts.maxFileSize())
	if err != nil {
		return models.Table{}, NewReadError("", err)
	}
	return Parse(data, opts)
}

// ParseFile reads and parses the file at path. The extension is advisory;
// content sniffing picks the decoder.
func ParseFile(path string, opts Options) (models.Table, error) {
	data, err := ReadFile(path, opts)
	if err != nil {
		return models.Table{}, err
	}
	opts.logger().Debug("read file", "file", filepath.Base(path), "bytes", len(data))
	return Parse(data, opts)
}

// ReadFile reads path under the MaxFileSize limit. Failures are *ReadError.
func ReadFile(path string, opts Options) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewReadError(path, err)
	}
	defer f.Close()

	data, err := readAll(f, opts.maxFileSize())
	if err != nil {
		return nil, NewReadError(path, err)
	}
	return data, nil
}

func readAll(r io.Reader, limit int64) ([]byte, error) {
	if limit < 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, limit)
	}
	return data, nil
}

// Report describes how a file would be parsed, without failing on shape problems.
type Report struct {
	// Format is the container family detected from content.
	Format parser.Format `json:"format"`
	// Sheets lists sheet names in workbook order; only the first is parsed.
	Sheets []string `json:"sheets"`
	// Rows is the row count of the first sheet.
	Rows int `json:"rows"`
	// Region is the populated bounding box of the first sheet, when dense enough.
	Region *parser.TableRegion `json:"region,omitempty"`
	// Headers scores the rows searched for the header.
	Headers []normalize.HeaderCandidate `json:"headers"`
	// HeaderRow is the selected header row, or -1.
	HeaderRow int `json:"header_row"`
	// Error is the normalization failure, if any.
	Error string `json:"error,omitempty"`
}

// Inspect decodes data and reports format, sheets, table region and header
// candidates. Only decode failures are returned as errors.
func Inspect(data []byte, opts Options) (Report, error) {
	wb, err := parser.NewDecoder(opts.codecs()...).WithLogger(opts.logger()).Decode(data)
	if err != nil {
		return Report{}, err
	}
	rows := wb.Sheets[0].Rows

	report := Report{
		Format:    parser.Format(wb.Format),
		Sheets:    wb.SheetNames(),
		Rows:      len(rows),
		Headers:   normalize.ScanHeaders(rows, opts.Normalize.HeaderScanLimit),
		HeaderRow: -1,
	}
	if region, ok := parser.DetectTable(rows, parser.DefaultTableParams()); ok {
		report.Region = &region
	}
	if h, ok := normalize.DetectHeader(rows, opts.Normalize.HeaderScanLimit); ok {
		report.HeaderRow = h.Row
	}

	if _, err := normalize.Normalize(rows, opts.Normalize); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return Report{}, err
		}
		report.Error = err.Error()
	}
	return report, nil
}
