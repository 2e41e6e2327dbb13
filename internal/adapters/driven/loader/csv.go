// Package loader turns row-oriented source files into retrievable
// document units for index construction.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/campuskit/askbot-core/internal/core/domain"
)

// Load reads every path as a CSV table and emits one DocumentUnit per
// data row, preserving order across and within files. Any unreadable
// path fails the whole load; callers treat that as a fatal startup error.
func Load(paths []string) ([]domain.DocumentUnit, error) {
	var units []domain.DocumentUnit
	for _, path := range paths {
		fileUnits, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load corpus file %s: %w", path, err)
		}
		units = append(units, fileUnits...)
	}
	return units, nil
}

func loadFile(path string) ([]domain.DocumentUnit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		// Header only (or empty): no data rows.
		return nil, nil
	}

	header := records[0]
	units := make([]domain.DocumentUnit, 0, len(records)-1)
	for i, record := range records[1:] {
		units = append(units, domain.DocumentUnit{
			Text:   stringifyRow(header, record),
			Source: path,
			Row:    i + 1,
		})
	}
	return units, nil
}

// stringifyRow renders a row as "column: value" lines, the canonical
// form the index embeds and the prompt quotes.
func stringifyRow(header, record []string) string {
	var sb strings.Builder
	for i, value := range record {
		if i > 0 {
			sb.WriteString("\n")
		}
		if i < len(header) {
			sb.WriteString(header[i])
			sb.WriteString(": ")
		}
		sb.WriteString(value)
	}
	return sb.String()
}
