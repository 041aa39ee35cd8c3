package postprocessors

import (
	"github.com/strata-labs/strata/internal/core/ports/driven"
	"github.com/strata-labs/strata/internal/postprocessors/chunker"
	"github.com/strata-labs/strata/internal/postprocessors/tablemeta"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
	r.Register("tablemeta", buildTablemeta)
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - window_size (int): Characters per window (default: 4000)
//   - overlap (int): Overlapping characters between windows (default: 400)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if cfg != nil {
		if size := getIntFromConfig(cfg, "window_size"); size > 0 {
			opts = append(opts, chunker.WithWindowSize(size))
		}
		if overlap := getIntFromConfig(cfg, "overlap"); overlap >= 0 {
			opts = append(opts, chunker.WithOverlap(overlap))
		}
	}

	return chunker.New(opts...), nil
}

// buildTablemeta creates a tablemeta processor. It takes no config.
func buildTablemeta(_ map[string]any) (driven.PostProcessor, error) {
	return tablemeta.New(), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
