package sink

import (
	"encoding/json"

	"github.com/aestriplex/grapher-footer/pkg/errors"
	"github.com/aestriplex/grapher-footer/pkg/footer"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	decision *footer.Decision
}

// WithDecision embeds the layout decision alongside the arrangement, for
// callers that want the reasoning as well as the geometry.
func WithDecision(d footer.Decision) JSONOption {
	return func(r *jsonRenderer) { r.decision = &d }
}

// jsonArtifact is the serialized shape of a rendered layout.
type jsonArtifact struct {
	Arrangement footer.Arrangement `json:"arrangement"`
	Decision    *footer.Decision   `json:"decision,omitempty"`
}

// RenderJSON serializes the arrangement as indented JSON.
func RenderJSON(a footer.Arrangement, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out, err := json.MarshalIndent(jsonArtifact{Arrangement: a, Decision: r.decision}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encoding JSON")
	}
	return out, nil
}
