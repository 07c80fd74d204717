// Package report reads and writes the archive's submission files: a CSV
// body preceded by a line naming the data structure and its version.
//
//	eeg_details,1,,,
//	subjectkey,src_subject_id,interview_date,interview_age,gender
//	NDAR_INV001,S01,06/10/2018,240,F
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// Template is the header of a submission file: the data structure name
// and version of line 1 and the column names of line 2.
type Template struct {
	Name    string
	Version string
	Columns []string
}

// LoadTemplate reads the first two lines of an existing submission file or
// blank template.
func LoadTemplate(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return Template{}, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	r := newReader(f)
	tmpl, err := readHeader(r)
	if err != nil {
		return Template{}, fmt.Errorf("%s: %w", path, err)
	}
	return tmpl, nil
}

func newReader(rd io.Reader) *csv.Reader {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = -1
	return r
}

func readHeader(r *csv.Reader) (Template, error) {
	tag, err := r.Read()
	if err != nil {
		return Template{}, fmt.Errorf("%w: reading tag line: %v", types.ErrTemplateInvalid, err)
	}
	if len(tag) < 2 || strings.TrimSpace(tag[0]) == "" || strings.TrimSpace(tag[1]) == "" {
		return Template{}, fmt.Errorf("%w: tag line must be <name>,<version>", types.ErrTemplateInvalid)
	}
	cols, err := r.Read()
	if err != nil {
		return Template{}, fmt.Errorf("%w: reading column line: %v", types.ErrTemplateInvalid, err)
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	if len(cols) == 0 || (len(cols) == 1 && cols[0] == "") {
		return Template{}, fmt.Errorf("%w: no columns", types.ErrTemplateInvalid)
	}
	return Template{
		Name:    strings.TrimSpace(tag[0]),
		Version: strings.TrimSpace(tag[1]),
		Columns: cols,
	}, nil
}

// tagLine returns line 1: name and version padded with empty fields to the
// column count.
func (t Template) tagLine() []string {
	n := max(len(t.Columns), 2)
	line := make([]string, n)
	line[0], line[1] = t.Name, t.Version
	return line
}

// Render encodes the table under the template's header. Cells are emitted
// in template column order; template columns the table lacks are empty and
// table columns the template lacks are dropped.
func Render(tmpl Template, table *types.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(tmpl.tagLine()); err != nil {
		return nil, err
	}
	if err := w.Write(tmpl.Columns); err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		if err := w.Write(row.Values(tmpl.Columns)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", tmpl.Name, err)
	}
	return buf.Bytes(), nil
}

// Write renders the table and replaces path with the result atomically.
func Write(path string, tmpl Template, table *types.Table) error {
	data, err := Render(tmpl, table)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile replaces path with already rendered report bytes atomically.
func WriteFile(path string, data []byte) error {
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read parses a submission file: its header and, with the two header lines
// stripped, its rows keyed by column name.
func Read(path string) (Template, *types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Template{}, nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	r := newReader(f)
	tmpl, err := readHeader(r)
	if err != nil {
		return Template{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	table := types.NewTable(tmpl.Columns...)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Template{}, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		row := make(types.Row, len(tmpl.Columns))
		for i, c := range tmpl.Columns {
			if i < len(rec) {
				row[c] = rec[i]
			}
		}
		table.Append(row)
	}
	return tmpl, table, nil
}
