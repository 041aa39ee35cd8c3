package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-labs/strata/internal/core/domain"
)

// mockIngestService records ingested documents and returns a fixed report.
type mockIngestService struct {
	docs   []*domain.RawDocument
	report *domain.IngestReport
	err    error
}

func (m *mockIngestService) Ingest(_ context.Context, doc *domain.RawDocument) (*domain.IngestReport, error) {
	m.docs = append(m.docs, doc)
	if m.err != nil {
		return nil, m.err
	}
	report := *m.report
	report.DocumentID = doc.ID
	return &report, nil
}

func TestIngestCmd_RequiresArgs(t *testing.T) {
	_, err := execute(t, "ingest")
	assert.Error(t, err)
}

func TestIngestCmd_IngestsFile(t *testing.T) {
	mock := &mockIngestService{report: &domain.IngestReport{UnitsIndexed: 4}}
	old := ingestService
	ingestService = mock
	defer func() { ingestService = old }()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nBody."), 0600))

	out, err := execute(t, "ingest", path)
	require.NoError(t, err)

	require.Len(t, mock.docs, 1)
	assert.Equal(t, path, mock.docs[0].ID)
	assert.Equal(t, "doc.md", mock.docs[0].Name)
	assert.Contains(t, out, "4 indexed")
}

func TestIngestCmd_ReportsDegradation(t *testing.T) {
	mock := &mockIngestService{report: &domain.IngestReport{
		UnitsIndexed: 2,
		Degradations: []domain.Degradation{domain.DegradedFallbackChunker},
	}}
	old := ingestService
	ingestService = mock
	defer func() { ingestService = old }()

	path := filepath.Join(t.TempDir(), "flat.txt")
	require.NoError(t, os.WriteFile(path, []byte("no structure here"), 0600))

	out, err := execute(t, "ingest", path)
	require.NoError(t, err)
	assert.Contains(t, out, "degraded: fallback_chunker")
}

func TestIngestCmd_MissingFile(t *testing.T) {
	mock := &mockIngestService{report: &domain.IngestReport{}}
	old := ingestService
	ingestService = mock
	defer func() { ingestService = old }()

	_, err := execute(t, "ingest", "/nonexistent/file.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
	assert.Empty(t, mock.docs)
}

func TestIngestCmd_ServiceNotConfigured(t *testing.T) {
	old := ingestService
	ingestService = nil
	defer func() { ingestService = old }()

	_, err := execute(t, "ingest", "whatever.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
