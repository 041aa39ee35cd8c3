// Package tablemeta enriches table units with derived metadata.
package tablemeta

import (
	"context"
	"strings"

	"github.com/strata-labs/strata/internal/core/domain"
)

// Processor derives a title, column names and a row count for table
// units and stores them in unit metadata. Text units pass through
// untouched. Derivation is best-effort: a table without a recognisable
// header simply gains no column metadata.
type Processor struct{}

// New creates a new tablemeta processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "tablemeta"
}

// Process enriches table units in place and returns the same slice.
func (p *Processor) Process(_ context.Context, _ *domain.RawDocument, units []domain.Unit) ([]domain.Unit, error) {
	for i := range units {
		switch units[i].Tag {
		case domain.TagText:
			continue
		case domain.TagTable:
			if units[i].Metadata == nil {
				units[i].Metadata = make(map[string]any)
			}
			enrich(&units[i])
		}
	}
	return units, nil
}

func enrich(unit *domain.Unit) {
	lines := tableLines(unit.Content)
	if len(lines) == 0 {
		return
	}

	if title := tableTitle(unit.Content); title != "" {
		unit.Metadata["table_title"] = title
	}

	columns := splitRow(lines[0])
	if len(columns) > 0 {
		unit.Metadata["columns"] = columns
	}

	// Data rows: everything below the header and separator
	rows := 0
	for _, line := range lines[1:] {
		if isSeparatorRow(line) {
			continue
		}
		rows++
	}
	unit.Metadata["row_count"] = rows
}

// tableLines returns the pipe-delimited lines of the unit content.
func tableLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// tableTitle returns the last non-table line preceding the table,
// typically a heading or caption the parser kept with the block.
func tableTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "|") {
			return ""
		}
		return strings.TrimLeft(trimmed, "# ")
	}
	return ""
}

// splitRow splits one pipe-delimited row into trimmed cell values.
func splitRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		cells = append(cells, strings.TrimSpace(part))
	}
	return cells
}

// isSeparatorRow reports whether the row is a markdown header separator
// such as |---|:---:|.
func isSeparatorRow(line string) bool {
	line = strings.Trim(line, "|")
	if line == "" {
		return false
	}
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return false
		}
		for _, r := range cell {
			if r != '-' && r != ':' && r != ' ' {
				return false
			}
		}
	}
	return true
}
