// Package extract splits raw ingested text and row tuples into
// candidate line items. Sources are finite and restartable: extracting
// the same source twice yields identical results.
package extract

import (
	"strings"
)

// Row is one physical input row. Structured rows carry pre-split
// designator/value cells; unstructured rows carry only the raw line.
type Row struct {
	Raw   string
	Ref   string
	Value string
	Desc  string
	// Structured marks rows whose cells were split by the source
	// (CSV columns, PDF table cells) rather than by line heuristics.
	Structured bool
}

// Source yields the rows of one input document. Implementations hold
// no iterator state; Rows may be called any number of times.
type Source interface {
	Name() string
	Rows() []Row
}

// TextSource wraps free-form pasted or preset BOM text.
type TextSource struct {
	name string
	text string
}

// NewTextSource creates a text source with a display name.
func NewTextSource(name, text string) *TextSource {
	return &TextSource{name: name, text: text}
}

func (s *TextSource) Name() string { return s.name }

func (s *TextSource) Rows() []Row {
	lines := strings.Split(strings.ReplaceAll(s.text, "\r\n", "\n"), "\n")
	rows := make([]Row, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, Row{Raw: strings.TrimSpace(line)})
	}
	return rows
}

// csvRefHeaders and csvValueHeaders are the column aliases recognized
// when guessing CSV layout.
var csvRefHeaders = []string{"ref", "designator", "part", "location"}
var csvValueHeaders = []string{"value", "val", "description"}

// CSVRowSource wraps pre-parsed CSV records. The first record is
// treated as a header when it names recognizable columns; otherwise the
// first two columns are assumed to be designator and value.
type CSVRowSource struct {
	name    string
	records [][]string
}

// NewCSVRowSource creates a source over CSV records.
func NewCSVRowSource(name string, records [][]string) *CSVRowSource {
	return &CSVRowSource{name: name, records: records}
}

func (s *CSVRowSource) Name() string { return s.name }

func (s *CSVRowSource) Rows() []Row {
	if len(s.records) == 0 {
		return nil
	}
	refIdx, valIdx, start := guessColumns(s.records[0], csvRefHeaders, csvValueHeaders)
	var rows []Row
	for _, rec := range s.records[start:] {
		rows = append(rows, cellsToRow(rec, refIdx, valIdx))
	}
	return rows
}

// TableRowSource wraps table rows extracted from a build-document PDF
// by an external collaborator. Summary rows like "4 x 100k" are
// skipped; single-cell rows are split on whitespace.
type TableRowSource struct {
	name string
	rows [][]string
}

// NewTableRowSource creates a source over PDF table rows.
func NewTableRowSource(name string, rows [][]string) *TableRowSource {
	return &TableRowSource{name: name, rows: rows}
}

func (s *TableRowSource) Name() string { return s.name }

func (s *TableRowSource) Rows() []Row {
	if len(s.rows) == 0 {
		return nil
	}
	refIdx, valIdx, start := guessColumns(s.rows[0],
		[]string{"location", "ref", "designator", "part"},
		[]string{"value", "val", "description"})
	var rows []Row
	for _, rec := range s.rows[start:] {
		if isSummaryRow(rec) {
			continue
		}
		rows = append(rows, cellsToRow(rec, refIdx, valIdx))
	}
	return rows
}

// guessColumns maps header aliases to column indexes. When no alias
// matches it falls back to columns 0 and 1 with no header row.
func guessColumns(header []string, refAliases, valAliases []string) (refIdx, valIdx, start int) {
	refIdx, valIdx = -1, -1
	for i, h := range header {
		clean := strings.ToLower(strings.TrimSpace(h))
		for _, a := range refAliases {
			if clean == a && refIdx < 0 {
				refIdx = i
			}
		}
		for _, a := range valAliases {
			if clean == a && valIdx < 0 {
				valIdx = i
			}
		}
	}
	if refIdx < 0 || valIdx < 0 {
		return 0, 1, 0
	}
	return refIdx, valIdx, 1
}

func cellsToRow(rec []string, refIdx, valIdx int) Row {
	raw := strings.TrimSpace(strings.Join(rec, " "))
	if len(rec) > refIdx && len(rec) > valIdx && refIdx != valIdx {
		ref := cleanCell(rec[refIdx])
		val := cleanCell(rec[valIdx])
		if ref != "" && val != "" {
			return Row{Raw: raw, Ref: ref, Value: val, Structured: true}
		}
	}
	if len(rec) == 1 {
		parts := strings.Fields(rec[0])
		if len(parts) >= 2 {
			return Row{
				Raw:        raw,
				Ref:        parts[0],
				Value:      parts[1],
				Desc:       strings.Join(parts[2:], " "),
				Structured: true,
			}
		}
	}
	return Row{Raw: raw}
}

func cleanCell(cell string) string {
	return strings.TrimSpace(strings.ReplaceAll(cell, "\n", " "))
}

// isSummaryRow detects quantity-summary rows ("4 x 100k") that appear
// below component tables in build documents.
func isSummaryRow(rec []string) bool {
	var first string
	for _, cell := range rec {
		if c := strings.TrimSpace(cell); c != "" {
			first = c
			break
		}
	}
	fields := strings.Fields(first)
	if len(fields) < 2 {
		return false
	}
	if !allDigits(fields[0]) {
		return false
	}
	return strings.EqualFold(fields[1], "x")
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
