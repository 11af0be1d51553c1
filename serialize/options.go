package serialize

import (
	"log/slog"
	"strings"
)

// Option configures a Serializer.
type Option func(*Serializer)

// WithLogger sets the logger used for diagnostics. If nil, slog.Default()
// is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) {
		s.logger = logger
	}
}

// WithMetrics records serializer activity on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Serializer) {
		s.metrics = m
	}
}

// WithBooleanAttributes adds attribute names that are written without a
// value, in addition to disabled and checked.
func WithBooleanAttributes(names ...string) Option {
	return func(s *Serializer) {
		for _, n := range names {
			s.booleanAttrs[strings.ToLower(n)] = true
		}
	}
}

// WithSurrogateMode selects how supplementary characters are written in
// text content. The default is SurrogatesJoint.
func WithSurrogateMode(mode SurrogateMode) Option {
	return func(s *Serializer) {
		s.text.mode = mode
	}
}

// WithCommentGuard makes Comment reject preserved comment bodies that
// could end the comment early, returning ErrUnsafeComment. Without it
// comment bodies are written verbatim and the event source is trusted to
// have removed such sequences.
func WithCommentGuard() Option {
	return func(s *Serializer) {
		s.guardComments = true
	}
}
