package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrStructureUnavailable", ErrStructureUnavailable},
		{"ErrIndexUnavailable", ErrIndexUnavailable},
		{"ErrCollectionUnavailable", ErrCollectionUnavailable},
		{"ErrRerankUnavailable", ErrRerankUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrStructureUnavailable tests the fallback trigger error
func TestErrStructureUnavailable(t *testing.T) {
	assert.Equal(t, "document structure unavailable", ErrStructureUnavailable.Error())
	assert.True(t, errors.Is(ErrStructureUnavailable, ErrStructureUnavailable))
	assert.False(t, errors.Is(ErrStructureUnavailable, ErrIndexUnavailable))
}

// TestErrorWrapping tests that wrapped errors still match sentinels
func TestErrorWrapping(t *testing.T) {
	wrapped := errors.Join(ErrIndexUnavailable, errors.New("dial tcp: refused"))
	assert.True(t, errors.Is(wrapped, ErrIndexUnavailable))
}
