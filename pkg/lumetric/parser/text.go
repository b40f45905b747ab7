package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextSheetName names the single sheet of a delimited text table.
const TextSheetName = "Sheet1"

// delimiterSniffLines bounds how many lines are scanned to pick a delimiter.
const delimiterSniffLines = 10

var utf8BOM = []byte("\xef\xbb\xbf")

// TextDecoder decodes already-transcoded text; the RTF path feeds it the
// cleaned plain text.
type TextDecoder interface {
	DecodeText(text string) (models.Workbook, error)
}

// TextCodec decodes comma or tab separated text.
type TextCodec struct {
	// Delimiter forces a field separator; zero means detect comma or tab.
	Delimiter rune
}

// NewTextCodec creates a TextCodec that detects its delimiter.
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Name implements Codec.
func (c *TextCodec) Name() string { return string(FormatText) }

// Sniff implements Codec. Any content without NUL bytes is accepted.
func (c *TextCodec) Sniff(data []byte) bool { return !isBinary(data) }

// Decode implements Codec. Non UTF-8 input is transcoded first.
func (c *TextCodec) Decode(data []byte) (models.Workbook, error) {
	text, err := toUTF8(data)
	if err != nil {
		return models.Workbook{}, NewDecodeError(c.Name(), err)
	}
	return c.DecodeText(text)
}

// DecodeText implements TextDecoder.
func (c *TextCodec) DecodeText(text string) (models.Workbook, error) {
	delim := c.Delimiter
	if delim == 0 {
		delim = detectDelimiter(text)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Workbook{}, NewDecodeError(c.Name(), fmt.Errorf("read row %d: %w", len(rows)+1, err))
		}
		rows = append(rows, rec)
	}

	return models.Workbook{
		Format: c.Name(),
		Sheets: []models.Sheet{{Name: TextSheetName, Rows: matrixFromStrings(rows)}},
	}, nil
}

// candidateDelimiters are tried in order; ties go to the earlier one.
var candidateDelimiters = []rune{',', '\t', ';', '|'}

// detectDelimiter picks the candidate seen most often outside quotes in the
// leading lines. Comma wins when none appear.
func detectDelimiter(text string) rune {
	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	lines := 0
	for _, r := range text {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case r == '\n':
			lines++
		case isCandidateDelimiter(r):
			counts[r]++
		}
		if lines == delimiterSniffLines {
			break
		}
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

func isCandidateDelimiter(r rune) bool {
	for _, d := range candidateDelimiters {
		if r == d {
			return true
		}
	}
	return false
}

// toUTF8 strips a UTF-8 BOM, decodes UTF-16 with a BOM, and transcodes other
// byte streams using the charset chardet reports.
func toUTF8(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(data[len(utf8BOM):]), nil
	}
	if hasUTF16BOM(data) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		return decodeWith(dec, data)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return decodeWith(detectEncoding(data).NewDecoder(), data)
}

func detectEncoding(data []byte) encoding.Encoding {
	res, err := chardet.NewTextDetector().DetectBest(data)
	if err == nil && res != nil {
		if enc, err := htmlindex.Get(strings.ToLower(res.Charset)); err == nil && enc != nil {
			return enc
		}
	}
	return charmap.Windows1252
}

func decodeWith(dec *encoding.Decoder, data []byte) (string, error) {
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("transcode text: %w", err)
	}
	return string(out), nil
}
