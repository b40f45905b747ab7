package models

// Workbook is the container produced by a codec, sheets in file order.
type Workbook struct {
	// Format is the codec that decoded the container (xlsx, xls, text).
	Format string `json:"format"`
	// Sheets lists sheets in workbook order.
	Sheets []Sheet `json:"sheets"`
}

// SheetNames returns the names of all sheets in order.
func (w Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}
