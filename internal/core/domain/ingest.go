package domain

// RawDocument is an unparsed input document handed to the ingest
// pipeline. It is discarded after unit extraction and never persisted.
type RawDocument struct {
	// ID identifies the document; units carry it as DocumentID.
	ID string

	// Name is the original file name, kept in unit metadata.
	Name string

	// Content is the document body as produced by the upstream
	// converter, normally markdown.
	Content string
}

// IngestReport summarises one ingest run. Partial success is normal:
// already-indexed units stay indexed when a later unit fails.
type IngestReport struct {
	// DocumentID is the ingested document.
	DocumentID string

	// UnitsIndexed is the number of units written to their collection.
	UnitsIndexed int

	// UnitsFailed is the number of units that could not be embedded
	// or stored.
	UnitsFailed int

	// Degradations lists degraded paths taken during this ingest.
	Degradations []Degradation
}

// Degraded reports whether any degraded path was taken.
func (r *IngestReport) Degraded() bool {
	return len(r.Degradations) > 0
}
