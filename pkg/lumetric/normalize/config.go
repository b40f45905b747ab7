package normalize

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// DuplicatePolicy decides what happens when two data rows share a category label.
type DuplicatePolicy string

const (
	// DuplicatesLastWins keeps one entry at the first-seen position; later rows overwrite its values.
	DuplicatesLastWins DuplicatePolicy = "last"
	// DuplicatesSum keeps one entry at the first-seen position; values are summed.
	DuplicatesSum DuplicatePolicy = "sum"
	// DuplicatesKeep keeps every row as its own positional entry, labels repeated.
	DuplicatesKeep DuplicatePolicy = "keep"
)

// ParseDuplicatePolicy parses "last", "sum" or "keep". The empty string is DuplicatesLastWins.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DuplicatesLastWins, nil
	case DuplicatesLastWins, DuplicatesSum, DuplicatesKeep:
		return p, nil
	default:
		return "", fmt.Errorf("invalid duplicate policy: %s (must be last, sum, or keep)", s)
	}
}

// Config configures normalization.
type Config struct {
	// HeaderScanLimit bounds how many leading rows are searched for the header.
	// Zero searches the whole matrix.
	HeaderScanLimit int
	// Duplicates selects the repeated-category policy. Zero value is DuplicatesLastWins.
	Duplicates DuplicatePolicy
	// Palette overrides DefaultPalette.
	Palette []string
	// NewID generates series ids. Defaults to uuid.NewString.
	NewID func() string
	// Logger receives debug traces. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the default normalization config.
func DefaultConfig() Config {
	return Config{
		Duplicates: DuplicatesLastWins,
		Palette:    DefaultPalette,
		NewID:      uuid.NewString,
	}
}

func (c Config) withDefaults() Config {
	if c.Duplicates == "" {
		c.Duplicates = DuplicatesLastWins
	}
	if len(c.Palette) == 0 {
		c.Palette = DefaultPalette
	}
	if c.NewID == nil {
		c.NewID = uuid.NewString
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}
