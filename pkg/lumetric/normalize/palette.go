package normalize

// DefaultPalette is the series colour cycle, indexed by series position.
var DefaultPalette = []string{
	"#3B82F6", // blue
	"#F43F5E", // rose
	"#10B981", // emerald
	"#F59E0B", // amber
	"#8B5CF6", // violet
	"#06B6D4", // cyan
	"#F97316", // orange
	"#EC4899", // pink
	"#6366F1", // indigo
	"#84CC16", // lime
	"#14B8A6", // teal
	"#D946EF", // fuchsia
}

// ColorAt returns palette[index mod len(palette)].
func ColorAt(palette []string, index int) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[index%len(palette)]
}
