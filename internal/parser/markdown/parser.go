// Package markdown parses converted documents into structural blocks.
// The upstream converter emits markdown; this parser splits it into
// ordered prose and table blocks so each table survives as one piece.
package markdown

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.StructureParser = (*Parser)(nil)

// Parser splits markdown content into prose and table blocks.
type Parser struct{}

// New creates a new markdown structure parser.
func New() *Parser {
	return &Parser{}
}

// Parse splits the document into ordered blocks. A table block spans
// from its header row to its last data row; a heading or caption line
// directly above a table is kept inside the table block. Content that
// is empty, binary or otherwise unusable yields
// domain.ErrStructureUnavailable so the caller can fall back to fixed
// windowing.
func (p *Parser) Parse(_ context.Context, doc *domain.RawDocument) ([]domain.Block, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(doc.Content) == "" {
		return nil, domain.ErrStructureUnavailable
	}
	if !utf8.ValidString(doc.Content) || strings.ContainsRune(doc.Content, 0) {
		return nil, domain.ErrStructureUnavailable
	}

	lines := strings.Split(doc.Content, "\n")

	var blocks []domain.Block
	var paragraph []string

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(paragraph, "\n"))
		if content != "" {
			blocks = append(blocks, domain.Block{Kind: domain.BlockProse, Content: content})
		}
		paragraph = nil
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if isTableStart(lines, i) {
			// A heading kept directly above the table acts as its caption
			var caption string
			if n := len(paragraph); n > 0 && isHeading(paragraph[n-1]) {
				caption = strings.TrimSpace(paragraph[n-1])
				paragraph = paragraph[:n-1]
			}
			flushParagraph()

			end := i
			for end < len(lines) && isTableRow(lines[end]) {
				end++
			}

			table := strings.TrimSpace(strings.Join(lines[i:end], "\n"))
			if caption != "" {
				table = caption + "\n" + table
			}
			blocks = append(blocks, domain.Block{Kind: domain.BlockTable, Content: table})

			i = end - 1
			continue
		}

		if trimmed == "" {
			flushParagraph()
			continue
		}

		paragraph = append(paragraph, line)
	}
	flushParagraph()

	if len(blocks) == 0 {
		return nil, domain.ErrStructureUnavailable
	}

	return blocks, nil
}

// isTableRow reports whether the line is a pipe-delimited row.
func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.Count(trimmed, "|") >= 2
}

// isTableStart reports whether a valid table begins at index i:
// a header row followed by a separator row such as |---|---|.
func isTableStart(lines []string, i int) bool {
	if !isTableRow(lines[i]) {
		return false
	}
	if i+1 >= len(lines) {
		return false
	}
	return isSeparatorRow(lines[i+1])
}

// isSeparatorRow reports whether the line is a markdown header
// separator; cells may use alignment colons.
func isSeparatorRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return false
	}
	inner := strings.Trim(trimmed, "|")
	if strings.TrimSpace(inner) == "" {
		return false
	}
	for _, cell := range strings.Split(inner, "|") {
		cell = strings.TrimSpace(cell)
		if !strings.Contains(cell, "-") {
			return false
		}
		for _, r := range cell {
			if r != '-' && r != ':' {
				return false
			}
		}
	}
	return true
}

// isHeading reports whether the line is a markdown heading.
func isHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}
