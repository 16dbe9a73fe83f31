// Package export writes generated samples and validation reports to
// interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/semforge/go-semforge/generator"
	"github.com/semforge/go-semforge/validation"
)

// WriteCSV writes the matrix as CSV: one header row of column names, one
// record per respondent. Categorical and ordinal-label columns emit their
// labels; value columns emit plain numbers.
func WriteCSV(w io.Writer, m *generator.Matrix) error {
	cw := csv.NewWriter(w)

	header := m.ColumnNames()
	if err := cw.Write(header); err != nil {
		return err
	}

	n := m.N()
	record := make([]string, len(m.Columns))
	for row := 0; row < n; row++ {
		for i := range m.Columns {
			col := &m.Columns[i]
			if col.Labels != nil {
				record[i] = col.Labels[row]
			} else {
				record[i] = strconv.FormatFloat(col.Values[row], 'g', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the matrix to a CSV file at path.
func WriteCSVFile(path string, m *generator.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteReport writes the validation report as indented JSON.
func WriteReport(w io.Writer, r *validation.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteReportFile writes the report to a JSON file at path.
func WriteReportFile(path string, r *validation.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteReport(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
