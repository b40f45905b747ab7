package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/lumetric-go/pkg/lumetric"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/history"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/models"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseSingleFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sales.csv", "City,Sales\nNYC,100\nLA,200\n")

	out, err := execute(t, "parse", path)
	require.NoError(t, err)

	var table models.Table
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	assert.Equal(t, []string{"NYC", "LA"}, table.Categories)
	assert.Equal(t, []float64{100, 200}, table.Series[0].Values())
}

func TestParseMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "City,Sales\nNYC,1\n")
	b := writeFile(t, dir, "b.csv", "Region,Q1,Q2\nEast,2,3\n")

	out, err := execute(t, "parse", "--pretty", a, b)
	require.NoError(t, err)

	var entries []history.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "b.csv", entries[0].Name)
	assert.Equal(t, "a.csv", entries[1].Name)
	assert.Len(t, entries[0].Table.Series, 2)
}

func TestParseCSVOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dup.csv", "City,Sales\nNYC,1\nNYC,2\n")
	dest := filepath.Join(dir, "out.csv")

	_, err := execute(t, "parse", "--format", "csv", "--duplicates", "sum", "-o", dest, path)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "City,Sales\nNYC,3\n", string(got))
}

func TestParseErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", "City,Sales\nNYC,1\n")
	bad := writeFile(t, dir, "bad.csv", "City,Sales\n")

	_, err := execute(t, "parse", good, bad)
	var ve *lumetric.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "bad.csv")

	_, err = execute(t, "parse", "--format", "xml", good)
	assert.Error(t, err)

	_, err = execute(t, "parse", "--format", "csv", good, good)
	assert.Error(t, err)

	_, err = execute(t, "parse", "--header-scan", "-1", good)
	assert.Error(t, err)

	_, err = execute(t, "parse", filepath.Join(dir, "missing.csv"))
	var re *lumetric.ReadError
	assert.True(t, errors.As(err, &re))
}

func TestParseEncryptedXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "City")
	f.SetCellValue("Sheet1", "B1", "Sales")
	f.SetCellValue("Sheet1", "A2", "NYC")
	f.SetCellValue("Sheet1", "B2", 7)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf, excelize.Options{Password: "secret"}))
	path := filepath.Join(t.TempDir(), "locked.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err := execute(t, "parse", path)
	var de *lumetric.DecodeError
	require.True(t, errors.As(err, &de))

	out, err := execute(t, "parse", "--password", "secret", path)
	require.NoError(t, err)

	var table models.Table
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	assert.Equal(t, []string{"NYC"}, table.Categories)
	assert.Equal(t, []float64{7}, table.Series[0].Values())
}

func TestInspect(t *testing.T) {
	path := writeFile(t, t.TempDir(), "report.csv", "Quarterly\n\nRegion,Q1\nEast,3\n")

	out, err := execute(t, "inspect", path)
	require.NoError(t, err)

	var report lumetric.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "text", string(report.Format))
	// Blank lines are not records in CSV.
	assert.Equal(t, 1, report.HeaderRow)
	assert.Empty(t, report.Error)

	out, err = execute(t, "inspect", "--raw", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"rows":[["Quarterly"],["Region","Q1"],["East",3]]`)
}
