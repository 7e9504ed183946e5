package textmeasure

// Memo caches measurement results for the lifetime of one layout pass.
// A layout pass measures the same text at the same size and wrap width
// several times (threshold checks, final metrics, arrangement), so a
// per-pass cache avoids repeated font work without introducing any
// cross-render memory: create a fresh Memo per pass, or call Reset.
//
// Memo is not safe for concurrent use. Layout computation is single
// threaded, so this is by construction never an issue within a pass.
type Memo struct {
	inner   Measurer
	widths  map[widthKey]float64
	metrics map[metricsKey]Metrics
}

type widthKey struct {
	text     string
	fontSize float64
}

type metricsKey struct {
	text       string
	fontSize   float64
	lineHeight float64
	maxWidth   float64
}

// NewMemo wraps inner with a per-pass measurement cache.
func NewMemo(inner Measurer) *Memo {
	m := &Memo{inner: inner}
	m.Reset()
	return m
}

// Reset clears all cached measurements, readying the Memo for a new pass.
func (m *Memo) Reset() {
	m.widths = make(map[widthKey]float64)
	m.metrics = make(map[metricsKey]Metrics)
}

// Width returns the cached single-line width, measuring on first use.
func (m *Memo) Width(text string, fontSize float64) float64 {
	k := widthKey{text, fontSize}
	if w, ok := m.widths[k]; ok {
		return w
	}
	w := m.inner.Width(text, fontSize)
	m.widths[k] = w
	return w
}

// Measure returns the cached wrapped metrics, measuring on first use.
func (m *Memo) Measure(text string, fontSize, lineHeight, maxWidth float64) Metrics {
	k := metricsKey{text, fontSize, lineHeight, maxWidth}
	if mt, ok := m.metrics[k]; ok {
		return mt
	}
	mt := m.inner.Measure(text, fontSize, lineHeight, maxWidth)
	m.metrics[k] = mt
	return mt
}

// Ensure Memo implements Measurer.
var _ Measurer = (*Memo)(nil)
