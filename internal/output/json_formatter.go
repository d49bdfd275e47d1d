package output

import (
	"github.com/goccy/go-json"

	"github.com/rpgo/corpus-projector/internal/domain"
)

// JSONFormatter serializes the full projection as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.FullProjection) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
