// Package csvimport parses uploaded risk register files. Parsing is a pure
// function of the file text: no I/O, no persistence, identical input gives
// identical output.
//
// The accepted format is comma separated with a header row; column names may
// be Dutch or English and appear in any order. Fields may be wrapped in
// double quotes to protect embedded commas (no escaping beyond toggling).
// The standard library csv reader rejects this dialect's bare quotes, so the
// splitter is the same quote-toggling scan the files were written for.
package csvimport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/riskbases/riskbases/pkg/riskscore"
)

// ParsedRisk is one validated data row, ready to preview or import.
// Probability and impact are always in 1..5; Score and Band are derived
// from the clamped values.
type ParsedRisk struct {
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Probability int            `json:"probability"`
	Impact      int            `json:"impact"`
	Action      string         `json:"action"`
	Score       int            `json:"score"`
	Band        riskscore.Band `json:"band"`
}

// Result is the outcome of parsing one file. Warnings are advisory: they
// describe rows that were skipped or values that were corrected, and never
// block the import.
type Result struct {
	Risks    []ParsedRisk `json:"risks"`
	Warnings []string     `json:"warnings"`
}

// Column vocabulary, matched case-insensitively as substring or exact match.
var columnNames = map[string][]string{
	"title":       {"titel", "title"},
	"category":    {"categorie", "category"},
	"description": {"beschrijving", "description"},
	"probability": {"kans", "probability"},
	"impact":      {"impact"},
	"action":      {"actie", "action"},
}

const defaultScale = 3

// Parse converts raw file text into validated risk rows plus warnings.
// A missing header, too few lines, or a missing title column yields a single
// warning and zero rows; everything else degrades per row.
func Parse(text string) Result {
	lines := splitLines(text)
	if len(lines) < 2 {
		return Result{Warnings: []string{"file must contain a header row and at least one data row"}}
	}

	header := splitFields(lines[0])
	columns := resolveColumns(header)
	titleCol, ok := columns["title"]
	if !ok {
		return Result{Warnings: []string{"no title column found (expected 'titel' or 'title')"}}
	}

	result := Result{}
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := i + 1 // 1-based data row, header not counted
		fields := splitFields(line)

		title := cell(fields, titleCol)
		if title == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: missing title, row skipped", row))
			continue
		}

		probability := parseScale(cell(fields, colIndex(columns, "probability")), row, "probability", &result.Warnings)
		impact := parseScale(cell(fields, colIndex(columns, "impact")), row, "impact", &result.Warnings)

		score := riskscore.Score(probability, impact)
		result.Risks = append(result.Risks, ParsedRisk{
			Title:       title,
			Category:    cell(fields, colIndex(columns, "category")),
			Description: cell(fields, colIndex(columns, "description")),
			Probability: probability,
			Impact:      impact,
			Action:      cell(fields, colIndex(columns, "action")),
			Score:       score,
			Band:        riskscore.Classify(score),
		})
	}
	return result
}

func splitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return lo.Filter(lines, func(line string, index int) bool {
		// Keep interior blanks so data row numbering stays stable, but a
		// trailing newline must not count as a data row.
		return index < len(lines)-1 || strings.TrimSpace(line) != ""
	})
}

// splitFields splits one line on unquoted commas. A double quote toggles the
// in-quotes flag and is dropped from the field; every field is trimmed.
func splitFields(line string) []string {
	var fields []string
	var sb strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(sb.String()))
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(sb.String()))
	return fields
}

// resolveColumns maps logical column names to header indices. The first
// header cell matching a vocabulary entry (case-insensitive, substring or
// exact) wins.
func resolveColumns(header []string) map[string]int {
	columns := make(map[string]int, len(columnNames))
	for idx, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		for logical, candidates := range columnNames {
			if _, taken := columns[logical]; taken {
				continue
			}
			if lo.SomeBy(candidates, func(c string) bool { return name == c || strings.Contains(name, c) }) {
				columns[logical] = idx
			}
		}
	}
	return columns
}

func colIndex(columns map[string]int, logical string) int {
	if idx, ok := columns[logical]; ok {
		return idx
	}
	return -1
}

func cell(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// parseScale reads a 1..5 cell. A non-numeric value falls back to 3, an
// out-of-range number is clamped; both cases warn. An absent column is
// silently the default (warning every row for a column the file simply
// doesn't have would be noise).
func parseScale(raw string, row int, name string, warnings *[]string) int {
	if raw == "" {
		return defaultScale
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("row %d: %s %q is not a number, using %d", row, name, raw, defaultScale))
		return defaultScale
	}
	if v < riskscore.ScaleMin || v > riskscore.ScaleMax {
		clamped := riskscore.Clamp(v)
		*warnings = append(*warnings, fmt.Sprintf("row %d: %s %d is outside 1-5, clamped to %d", row, name, v, clamped))
		return clamped
	}
	return v
}
