package serialize

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Comment outcomes reported on the comments_total counter.
const (
	CommentPreserved = "preserved"
	CommentDropped   = "dropped"
	CommentRejected  = "rejected"
)

// Metrics holds Prometheus counters for serialization passes. A nil
// *Metrics records nothing, and one Metrics may be shared by any number of
// serializers.
type Metrics struct {
	elements     prometheus.Counter
	textBytes    prometheus.Counter
	charRefs     prometheus.Counter
	comments     *prometheus.CounterVec
	unmatchedEnd prometheus.Counter
	writeErrors  prometheus.Counter
}

// NewMetrics creates and registers the serializer counters on reg. A nil
// reg uses prometheus.DefaultRegisterer; an empty namespace uses
// "htmlsanitizer".
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "htmlsanitizer"
	}
	factory := promauto.With(reg)
	opts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "serializer",
			Name:      name,
			Help:      help,
		}
	}

	return &Metrics{
		elements:     factory.NewCounter(opts("elements_total", "Start tags written")),
		textBytes:    factory.NewCounter(opts("text_bytes_total", "Bytes of text content received before escaping")),
		charRefs:     factory.NewCounter(opts("char_refs_total", "Numeric character references written for text content")),
		comments:     factory.NewCounterVec(opts("comments_total", "Comments seen, by outcome"), []string{"outcome"}),
		unmatchedEnd: factory.NewCounter(opts("unmatched_end_tags_total", "End events received with an empty element stack")),
		writeErrors:  factory.NewCounter(opts("write_errors_total", "Writes rejected by the output sink")),
	}
}

func (m *Metrics) element() {
	if m != nil {
		m.elements.Inc()
	}
}

func (m *Metrics) text(n, refs int) {
	if m != nil {
		m.textBytes.Add(float64(n))
		m.charRefs.Add(float64(refs))
	}
}

func (m *Metrics) comment(outcome string) {
	if m != nil {
		m.comments.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) unmatched() {
	if m != nil {
		m.unmatchedEnd.Inc()
	}
}

func (m *Metrics) writeError() {
	if m != nil {
		m.writeErrors.Inc()
	}
}
