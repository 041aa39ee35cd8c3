// Package chunker provides fixed-size window chunking for documents
// whose structural markup is unavailable. It is the degraded path of
// the ingest pipeline: windows may cut through tables, which is an
// accepted trade of integrity for availability.
package chunker

import (
	"context"

	"github.com/google/uuid"

	"github.com/strata-labs/strata/internal/core/domain"
)

// DefaultWindowSize is the default number of characters per window.
// Larger than the structure-aware path's natural unit sizes so that a
// split table still lands mostly inside one window.
const DefaultWindowSize = 4000

// DefaultOverlap is the default number of overlapping characters
// between consecutive windows.
const DefaultOverlap = 400

// Processor splits raw document text into fixed-size overlapping
// windows, all tagged as text. Output is a pure function of the input
// text and the configured window and overlap sizes, except for unit
// IDs which are freshly generated per run.
type Processor struct {
	windowSize int
	overlap    int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithWindowSize sets the window size in characters.
func WithWindowSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.windowSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		windowSize: DefaultWindowSize,
		overlap:    DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave room for the window to advance
	if p.overlap >= p.windowSize {
		p.overlap = p.windowSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// WindowSize returns the configured window size.
func (p *Processor) WindowSize() int {
	return p.windowSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the document content into text-tagged units.
// Input units are ignored; this processor creates new units from the
// raw document content.
func (p *Processor) Process(_ context.Context, doc *domain.RawDocument, _ []domain.Unit) ([]domain.Unit, error) {
	if doc.Content == "" {
		// Empty content produces no units
		return nil, nil
	}

	// Window size and overlap are in characters. Indexing by rune keeps
	// every window edge on a rune boundary, so multi-byte text (CJK,
	// accented latin) never yields invalid UTF-8 windows.
	content := []rune(doc.Content)
	contentLen := len(content)

	estimated := (contentLen / (p.windowSize - p.overlap)) + 1
	units := make([]domain.Unit, 0, estimated)

	position := 0
	start := 0

	for start < contentLen {
		end := start + p.windowSize
		if end > contentLen {
			end = contentLen
		}

		units = append(units, domain.Unit{
			ID:         uuid.New().String(),
			Tag:        domain.TagText,
			Content:    string(content[start:end]),
			DocumentID: doc.ID,
			Position:   position,
			Metadata: map[string]any{
				"filename":     doc.Name,
				"window_start": start,
				"window_end":   end,
			},
		})
		position++

		if end == contentLen {
			break
		}
		start += p.windowSize - p.overlap
	}

	return units, nil
}
