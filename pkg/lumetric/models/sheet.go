package models

// Sheet is one decoded sheet or delimited table.
type Sheet struct {
	// Name is the sheet name ("Sheet1" for delimited text).
	Name string `json:"name"`
	// Rows is the positional cell matrix.
	Rows RawMatrix `json:"rows,omitempty"`
}
