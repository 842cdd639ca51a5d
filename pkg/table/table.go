// Package table loads CSV files from a directory and exposes their columns
// by position.
package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/olekukonko/tablewriter"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// Extension is the suffix a file name needs to be offered for loading.
const Extension = ".csv"

// Table is a parsed CSV file.
type Table struct {
	// Name is the file name the table was loaded from.
	Name string

	df    dataframe.DataFrame
	names []string
}

// Column describes one column of a Table.
type Column struct {
	Index   int
	Name    string
	Type    string
	Numeric bool
}

// Parse reads CSV data with a header row. Column types are detected from
// the values. A file holding only the header yields a table without rows.
func Parse(name string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, csverrors.TableParseFailed(name, err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		header, ok := headerOnly(data)
		if !ok {
			return nil, csverrors.TableParseFailed(name, df.Err)
		}
		df = emptyFrame(header)
		if df.Err != nil {
			return nil, csverrors.TableParseFailed(name, df.Err)
		}
	}

	return &Table{Name: name, df: df, names: df.Names()}, nil
}

// headerOnly returns the header of CSV data that has no records.
func headerOnly(data []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

func emptyFrame(header []string) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(cols...)
}

// ListCandidates returns the non-directory entries of dir whose name ends in
// [Extension], in directory listing order.
func ListCandidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, csverrors.TableListFailed(dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), Extension) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// Load parses files[index] from dir.
func Load(dir string, files []string, index int) (*Table, error) {
	if index < 0 || index >= len(files) {
		return nil, csverrors.IndexOutOfRange(index, len(files))
	}

	path := filepath.Join(dir, files[index])
	f, err := os.Open(path)
	if err != nil {
		return nil, csverrors.TableParseFailed(path, err)
	}
	defer f.Close()

	return Parse(files[index], f)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.names)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return t.df.Nrow()
}

// Names returns the column names in file order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Column returns the column at index.
func (t *Table) Column(index int) (Column, error) {
	if index < 0 || index >= len(t.names) {
		return Column{}, csverrors.ColumnOutOfRange(index, len(t.names))
	}

	s := t.df.Col(t.names[index])
	return Column{
		Index:   index,
		Name:    t.names[index],
		Type:    string(s.Type()),
		Numeric: isNumeric(s.Type()),
	}, nil
}

// Floats returns the values of a numeric column. Missing and infinite
// cells are NaN, so every chart treats them as absent.
func (t *Table) Floats(index int) ([]float64, error) {
	col, err := t.Column(index)
	if err != nil {
		return nil, err
	}
	if !col.Numeric {
		return nil, csverrors.NonNumericColumn(col.Name, col.Type)
	}
	values := t.df.Col(col.Name).Float()
	for i, v := range values {
		if math.IsInf(v, 0) {
			values[i] = math.NaN()
		}
	}
	return values, nil
}

// Columns returns every column of t in order.
func Columns(t *Table) []Column {
	cols := make([]Column, 0, t.NumColumns())
	for i := range t.names {
		c, _ := t.Column(i)
		cols = append(cols, c)
	}
	return cols
}

// WriteColumns prints the column listing used before every plot prompt.
func WriteColumns(w io.Writer, t *Table) {
	fmt.Fprintln(w, "\nColumns available for plotting:")

	rows := make([][]string, 0, t.NumColumns())
	for _, c := range Columns(t) {
		rows = append(rows, []string{fmt.Sprintf("%d", c.Index), c.Name})
	}
	drawTable(w, []string{"Column Index", "Column Name"}, rows)
}

// WriteCandidates prints the numbered file listing.
func WriteCandidates(w io.Writer, files []string) {
	fmt.Fprintln(w, "\nAvailable CSV Files:")

	rows := make([][]string, 0, len(files))
	for i, name := range files {
		rows = append(rows, []string{fmt.Sprintf("%d", i), name})
	}
	drawTable(w, []string{"Index", "CSV File"}, rows)
}

func drawTable(w io.Writer, headers []string, rows [][]string) {
	output := tablewriter.NewWriter(w)
	output.SetHeader(headers)
	output.SetAutoFormatHeaders(false)
	output.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range rows {
		output.Append(r)
	}
	output.Render()
}

func isNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}

// DropNaN returns the values that are not NaN.
func DropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
