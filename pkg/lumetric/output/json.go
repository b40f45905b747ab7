// Package output serializes tables, history entries and reports.
package output

import (
	"github.com/goccy/go-json"
	"github.com/ukaji3/lumetric-go/pkg/lumetric"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/history"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
)

// ToJSON serializes a table to JSON.
func ToJSON(table models.Table, pretty bool) ([]byte, error) {
	return marshal(table, pretty)
}

// HistoryToJSON serializes history entries, newest first as given.
func HistoryToJSON(entries []history.Entry, pretty bool) ([]byte, error) {
	if entries == nil {
		entries = []history.Entry{}
	}
	return marshal(entries, pretty)
}

// WorkbookToJSON serializes a decoded workbook including its raw rows.
func WorkbookToJSON(wb *models.Workbook, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// ReportToJSON serializes an inspection report.
func ReportToJSON(report lumetric.Report, pretty bool) ([]byte, error) {
	return marshal(report, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
