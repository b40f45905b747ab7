package parser

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"
)

// Format names the container family detected from content.
type Format string

const (
	// FormatRTF is rich text saved under a spreadsheet extension.
	FormatRTF Format = "rtf"
	// FormatXLSX is the Office Open XML workbook container.
	FormatXLSX Format = "xlsx"
	// FormatXLS is the legacy BIFF workbook inside an OLE2 compound file.
	FormatXLS Format = "xls"
	// FormatText is delimited plain text (CSV or TSV).
	FormatText Format = "text"
	// FormatBinary is binary content no codec understands.
	FormatBinary Format = "binary"
)

const (
	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsMIME  = "application/vnd.ms-excel"
	oleMIME  = "application/x-ole-storage"
)

var (
	rtfMarker = []byte(`{\rtf`)
	zipMagic  = []byte("PK\x03\x04")
	oleMagic  = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

	// encryptedPackageName is the UTF-16LE directory entry name of an
	// encrypted OOXML package inside an OLE2 compound file.
	encryptedPackageName = utf16LE("EncryptedPackage")
)

// binarySniffLen bounds how far into the buffer NUL bytes are searched.
const binarySniffLen = 8192

var (
	rtfParagraph   = regexp.MustCompile(`\\pard?\s*`)
	rtfBraces      = regexp.MustCompile(`[{}]`)
	rtfControlWord = regexp.MustCompile(`\\[A-Za-z0-9]+\s?`)
	rtfLineBreak   = regexp.MustCompile(`\\\r?\n`)
)

// Sniff reports the container family of data without decoding it.
func Sniff(data []byte) Format {
	switch {
	case IsRTF(data):
		return FormatRTF
	case isXLSX(data):
		return FormatXLSX
	case isXLS(data):
		return FormatXLS
	case isBinary(data):
		return FormatBinary
	default:
		return FormatText
	}
}

// IsRTF reports whether data, read as Latin-1 and with leading whitespace
// skipped, starts with the RTF group marker.
func IsRTF(data []byte) bool {
	i := 0
	for i < len(data) && unicode.IsSpace(rune(data[i])) {
		i++
	}
	return bytes.HasPrefix(data[i:], rtfMarker)
}

// Latin1 maps every byte to the code point of the same value.
func Latin1(data []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// ISO 8859-1 covers every byte value; keep the raw bytes if the decoder disagrees.
		return string(data)
	}
	return string(out)
}

// CleanRTF strips RTF markup from text and returns the plain lines it carried.
// Font and colour tables collapse into short junk lines; lines that are blank
// or start with ';' are dropped.
func CleanRTF(text string) string {
	text = rtfParagraph.ReplaceAllString(text, "\n")
	text = rtfBraces.ReplaceAllString(text, "")
	text = rtfControlWord.ReplaceAllString(text, "")
	text = rtfLineBreak.ReplaceAllString(text, "\n")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isXLSX(data []byte) bool {
	return mimetype.Detect(data).Is(xlsxMIME) || bytes.HasPrefix(data, zipMagic) || isEncryptedOOXML(data)
}

// isEncryptedOOXML reports a password-protected xlsx, which is stored as an
// OLE2 compound file rather than a zip.
func isEncryptedOOXML(data []byte) bool {
	return bytes.HasPrefix(data, oleMagic) && bytes.Contains(data, encryptedPackageName)
}

func isXLS(data []byte) bool {
	if isEncryptedOOXML(data) {
		return false
	}
	if bytes.HasPrefix(data, oleMagic) {
		return true
	}
	m := mimetype.Detect(data)
	return m.Is(xlsMIME) || m.Is(oleMIME)
}

func isBinary(data []byte) bool {
	if hasUTF16BOM(data) {
		return false
	}
	head := data
	if len(head) > binarySniffLen {
		head = head[:binarySniffLen]
	}
	return bytes.IndexByte(head, 0) >= 0
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

func utf16LE(s string) []byte {
	out := make([]byte, 0, 2*len(s))
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}
