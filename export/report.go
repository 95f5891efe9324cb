// Package export writes spell error reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Record is a single spell error: the misspelled words of one property of
// one node.
type Record struct {
	File     string `json:"file" yaml:"file"`
	DCID     string `json:"dcid" yaml:"dcid"`
	Property string `json:"property" yaml:"property"`
	Errors   string `json:"spell_errors" yaml:"spell_errors"`
}

// csvHeader names the CSV columns in Record field order.
var csvHeader = []string{"file", "dcid", "property", "spell_errors"}

// Encode writes records to w in the given format.
func Encode(w io.Writer, records []Record, format Format) error {
	if records == nil {
		records = []Record{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		for _, r := range records {
			if err := cw.Write([]string{r.File, r.DCID, r.Property, r.Errors}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()

	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// FileWriter writes reports to files, choosing the format by extension.
type FileWriter struct{}

// NewFileWriter creates a new report file writer.
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// Write saves records to dest, creating parent directories.
func (FileWriter) Write(records []Record, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	if err := Encode(f, records, FormatForPath(dest)); err != nil {
		f.Close()
		return fmt.Errorf("encode report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}
