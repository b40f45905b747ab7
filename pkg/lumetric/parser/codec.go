// Package parser sniffs raw file bytes and decodes them into positional cell matrices.
package parser

import (
	"errors"
	"io"
	"log/slog"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
)

// Codec decodes one container family.
type Codec interface {
	// Name is the format label reported in errors and workbooks.
	Name() string
	// Sniff reports whether data looks like this codec's container.
	Sniff(data []byte) bool
	// Decode reads every sheet of the container.
	Decode(data []byte) (models.Workbook, error)
}

// DefaultCodecs returns the xlsx, xls and delimited text codecs, in sniffing order.
func DefaultCodecs() []Codec {
	return []Codec{NewXLSXCodec(), NewXLSCodec(), NewTextCodec()}
}

// DefaultCodecsWithPassword is DefaultCodecs with encrypted xlsx workbooks
// opened using password.
func DefaultCodecsWithPassword(password string) []Codec {
	return []Codec{&XLSXCodec{Password: password}, NewXLSCodec(), NewTextCodec()}
}

// Decoder routes raw bytes to the first codec that recognizes them.
// RTF content is cleaned and handed to the first codec implementing TextDecoder.
type Decoder struct {
	codecs []Codec
	logger *slog.Logger
}

// NewDecoder creates a Decoder over the given codecs. A Decoder without
// codecs fails every call with ErrCodecUnavailable.
func NewDecoder(codecs ...Codec) *Decoder {
	return &Decoder{
		codecs: codecs,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger used for debug traces.
func (d *Decoder) WithLogger(logger *slog.Logger) *Decoder {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// Decode decodes data into a workbook with at least one sheet.
func (d *Decoder) Decode(data []byte) (models.Workbook, error) {
	if len(d.codecs) == 0 {
		return models.Workbook{}, NewDecodeError("", ErrCodecUnavailable)
	}
	if len(data) == 0 {
		return models.Workbook{}, NewDecodeError("", ErrEmptyFile)
	}

	var (
		wb  models.Workbook
		err error
	)
	if IsRTF(data) {
		wb, err = d.decodeRTF(data)
	} else {
		wb, err = d.decodeContainer(data)
	}
	if err != nil {
		return models.Workbook{}, err
	}

	if len(wb.Sheets) == 0 {
		return models.Workbook{}, NewDecodeError(wb.Format, ErrNoSheets)
	}
	return wb, nil
}

// DecodeMatrix decodes data and returns the rows of its first sheet.
func (d *Decoder) DecodeMatrix(data []byte) (models.RawMatrix, error) {
	wb, err := d.Decode(data)
	if err != nil {
		return nil, err
	}
	return wb.Sheets[0].Rows, nil
}

func (d *Decoder) decodeRTF(data []byte) (models.Workbook, error) {
	td := d.textDecoder()
	if td == nil {
		return models.Workbook{}, NewDecodeError(string(FormatRTF), ErrCodecUnavailable)
	}

	cleaned := CleanRTF(Latin1(data))
	d.logger.Debug("detected RTF content, cleaned to plain text",
		"bytes", len(data), "cleaned_bytes", len(cleaned))

	wb, err := td.DecodeText(cleaned)
	if err != nil {
		return models.Workbook{}, wrapDecode(string(FormatRTF), err)
	}
	wb.Format = string(FormatRTF)
	return wb, nil
}

func (d *Decoder) decodeContainer(data []byte) (models.Workbook, error) {
	for _, c := range d.codecs {
		if !c.Sniff(data) {
			continue
		}
		d.logger.Debug("decoding container", "codec", c.Name(), "bytes", len(data))
		wb, err := c.Decode(data)
		if err != nil {
			return models.Workbook{}, wrapDecode(c.Name(), err)
		}
		if wb.Format == "" {
			wb.Format = c.Name()
		}
		return wb, nil
	}
	return models.Workbook{}, NewDecodeError(string(Sniff(data)), ErrUnsupportedFormat)
}

func (d *Decoder) textDecoder() TextDecoder {
	for _, c := range d.codecs {
		if td, ok := c.(TextDecoder); ok {
			return td
		}
	}
	return nil
}

// wrapDecode keeps an existing DecodeError and wraps anything else.
func wrapDecode(format string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return NewDecodeError(format, err)
}
