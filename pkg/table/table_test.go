package table

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestListCandidates(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.csv":     "x\n1\n",
		"a.csv":     "x\n1\n",
		"notes.txt": "hello",
		"data.CSV":  "x\n1\n",
		"csv":       "x\n1\n",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.csv"), 0o755))

	files, err := ListCandidates(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv"}, files)
}

func TestListCandidates_Empty(t *testing.T) {
	files, err := ListCandidates(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListCandidates_MissingDir(t *testing.T) {
	_, err := ListCandidates(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, csverrors.IsCode(err, csverrors.ErrTableListFailed))
}

func TestLoad_Scenario(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.csv":     "x,y\n1,2\n2,4\n3,6\n",
		"notes.txt": "not data",
	})

	files, err := ListCandidates(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a.csv"}, files)

	tbl, err := Load(dir, files, 0)
	require.NoError(t, err)
	assert.Equal(t, "a.csv", tbl.Name)
	assert.Equal(t, []string{"x", "y"}, tbl.Names())
	assert.Equal(t, 2, tbl.NumColumns())
	assert.Equal(t, 3, tbl.NumRows())
}

func TestLoad_OutOfRange(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.csv": "x\n1\n"})

	for _, index := range []int{-1, 1, 5} {
		_, err := Load(dir, []string{"a.csv"}, index)
		assert.True(t, csverrors.IsCode(err, csverrors.ErrInputIndexOutOfRange), "index %d", index)
	}
}

func TestLoad_ParseError(t *testing.T) {
	dir := writeFiles(t, map[string]string{"empty.csv": ""})

	_, err := Load(dir, []string{"empty.csv"}, 0)
	assert.True(t, csverrors.IsCode(err, csverrors.ErrTableParseFailed))
}

func TestParse_HeaderOnly(t *testing.T) {
	tbl, err := Parse("h.csv", strings.NewReader("x,y\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, tbl.Names())
	assert.Equal(t, 0, tbl.NumRows())

	dir := writeFiles(t, map[string]string{"h.csv": "a,b,c"})
	tbl, err = Load(dir, []string{"h.csv"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Names())
}

func TestTable_Columns(t *testing.T) {
	tbl, err := Parse("mixed.csv", strings.NewReader("id,name,score\n1,ann,1.5\n2,bob,2.5\n"))
	require.NoError(t, err)

	cols := Columns(tbl)
	require.Len(t, cols, 3)
	assert.Equal(t, Column{Index: 0, Name: "id", Type: "int", Numeric: true}, cols[0])
	assert.Equal(t, Column{Index: 1, Name: "name", Type: "string", Numeric: false}, cols[1])
	assert.Equal(t, Column{Index: 2, Name: "score", Type: "float", Numeric: true}, cols[2])
}

func TestTable_Floats(t *testing.T) {
	tbl, err := Parse("mixed.csv", strings.NewReader("id,name,score\n1,ann,1.5\n2,bob,2.5\n"))
	require.NoError(t, err)

	values, err := tbl.Floats(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, values)

	_, err = tbl.Floats(1)
	assert.True(t, csverrors.IsCode(err, csverrors.ErrPlotNonNumeric))

	_, err = tbl.Floats(3)
	assert.True(t, csverrors.IsCode(err, csverrors.ErrInputIndexOutOfRange))
}

func TestWriteColumns(t *testing.T) {
	tbl, err := Parse("a.csv", strings.NewReader("x,y\n1,2\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteColumns(&buf, tbl)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "\nColumns available for plotting:\n"))
	assert.Contains(t, out, "Column Index")
	assert.Contains(t, out, "Column Name")
	assert.Regexp(t, `\|\s+0\s+\|\s+x\s+\|`, out)
	assert.Regexp(t, `\|\s+1\s+\|\s+y\s+\|`, out)
}

func TestWriteCandidates(t *testing.T) {
	var buf bytes.Buffer
	WriteCandidates(&buf, []string{"a.csv", "b.csv"})
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "\nAvailable CSV Files:\n"))
	assert.Contains(t, out, "CSV File")
	assert.Regexp(t, `\|\s+1\s+\|\s+b\.csv\s+\|`, out)
}

func TestTable_FloatsInfinite(t *testing.T) {
	tbl, err := Parse("inf.csv", strings.NewReader("a\n1\ninf\n-inf\n2\n"))
	require.NoError(t, err)

	values, err := tbl.Floats(0)
	require.NoError(t, err)
	require.Len(t, values, 4)
	assert.Equal(t, 1.0, values[0])
	assert.True(t, math.IsNaN(values[1]))
	assert.True(t, math.IsNaN(values[2]))
	assert.Equal(t, 2.0, values[3])
	assert.Equal(t, []float64{1, 2}, DropNaN(values))
}

func TestDropNaN(t *testing.T) {
	assert.Equal(t, []float64{1, 3}, DropNaN([]float64{1, math.NaN(), 3}))
	assert.Empty(t, DropNaN([]float64{math.NaN()}))
}

type scriptedAsker struct {
	answers []string
	prompts []string
}

func (s *scriptedAsker) Ask(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", errors.New("EOF")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func TestLoaderPrompt(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.csv":     "x,y\n1,2\n",
		"notes.txt": "",
	})

	tests := []struct {
		name    string
		answer  string
		code    string
		message string
	}{
		{name: "valid", answer: "0"},
		{name: "valid with spaces", answer: " 0 "},
		{name: "not an integer", answer: "zero", code: csverrors.ErrInputNotInteger, message: "Invalid input. Please enter a valid index."},
		{name: "out of range", answer: "3", code: csverrors.ErrInputIndexOutOfRange, message: "Invalid index. Please enter a valid index."},
		{name: "negative", answer: "-1", code: csverrors.ErrInputIndexOutOfRange, message: "Invalid index. Please enter a valid index."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			busy := 0
			l := &Loader{Dir: dir, Out: &out, Busy: func(string) func(error) {
				busy++
				return func(error) {}
			}}
			ask := &scriptedAsker{answers: []string{tt.answer}}

			tbl, err := l.Prompt(ask)

			assert.Equal(t, []string{PromptFileIndex}, ask.prompts)
			assert.Contains(t, out.String(), "Available CSV Files:")
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, []string{"x", "y"}, tbl.Names())
				assert.Contains(t, out.String(), "Successfully imported CSV file: a.csv\n")
				assert.Equal(t, 1, busy)
				return
			}
			assert.Nil(t, tbl)
			assert.True(t, csverrors.IsCode(err, tt.code))
			assert.Equal(t, tt.message, csverrors.Sprint(err))
			assert.Zero(t, busy)
		})
	}
}

func TestLoaderPrompt_ParseFailureEndsBusy(t *testing.T) {
	dir := writeFiles(t, map[string]string{"broken.csv": ""})
	var out bytes.Buffer
	var ended []error
	l := &Loader{Dir: dir, Out: &out, Busy: func(string) func(error) {
		return func(err error) { ended = append(ended, err) }
	}}

	_, err := l.Prompt(&scriptedAsker{answers: []string{"0"}})

	assert.True(t, csverrors.IsCode(err, csverrors.ErrTableParseFailed))
	require.Len(t, ended, 1)
	assert.Error(t, ended[0])
}

func TestLoaderPrompt_NoFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"notes.txt": ""})
	var out bytes.Buffer
	ask := &scriptedAsker{}

	tbl, err := (&Loader{Dir: dir, Out: &out}).Prompt(ask)

	assert.Nil(t, tbl)
	assert.Equal(t, "No CSV files found in the current directory.", csverrors.Sprint(err))
	assert.Empty(t, ask.prompts)
	assert.Empty(t, out.String())
}

func TestLoaderPrompt_InputClosed(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.csv": "x\n1\n"})

	_, err := (&Loader{Dir: dir, Out: &bytes.Buffer{}}).Prompt(&scriptedAsker{})
	assert.True(t, csverrors.IsCode(err, csverrors.ErrInputAborted))
}
