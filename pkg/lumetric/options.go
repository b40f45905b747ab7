// Package lumetric parses spreadsheet uploads into the category/series table
// consumed by the chart renderers.
package lumetric

import (
	"log/slog"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/normalize"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/parser"
)

// DefaultMaxFileSize bounds ParseFile and ParseReader input (50 MiB).
const DefaultMaxFileSize int64 = 50 << 20

// FormatHint describes the expected layout; show it next to any parse error.
const FormatHint = "Column A: category names (starting row 2). Columns B+: one named series each, header in row 1."

// Options configures parsing behavior.
type Options struct {
	// Codecs decode spreadsheet containers. If nil, parser.DefaultCodecs() is used.
	Codecs []parser.Codec
	// Normalize configures header detection, duplicate handling and colours.
	Normalize normalize.Config
	// MaxFileSize bounds reader and file input in bytes. Zero means DefaultMaxFileSize;
	// negative disables the limit.
	MaxFileSize int64
	// Logger receives debug traces. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default parsing options.
func DefaultOptions() Options {
	return Options{
		Codecs:      parser.DefaultCodecs(),
		Normalize:   normalize.DefaultConfig(),
		MaxFileSize: DefaultMaxFileSize,
	}
}

func (o Options) codecs() []parser.Codec {
	if o.Codecs == nil {
		return parser.DefaultCodecs()
	}
	return o.Codecs
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) maxFileSize() int64 {
	if o.MaxFileSize == 0 {
		return DefaultMaxFileSize
	}
	return o.MaxFileSize
}
