package serialize

import (
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// Policy is the read-only view of a sanitization policy the Serializer
// consults. Implementations must be safe to share between serializers.
type Policy interface {
	// PreservesComments reports whether comments are written to the output.
	PreservesComments() bool

	// EncodesIntlCharacters reports whether text characters other than the
	// five escaped ones are written as numeric character references.
	EncodesIntlCharacters() bool

	// AllowsEmpty reports whether a non-void element may be rendered with
	// no content.
	AllowsEmpty(tag string) bool

	// RequiresClosingTag reports whether an element must always carry an
	// explicit end tag, even when empty.
	RequiresClosingTag(tag string) bool
}

// Handler receives a stream of parsed-markup events.
type Handler interface {
	StartElement(tag string, attrs []html.Attribute) error
	EndElement(tag string) error
	Text(text string) error
	Comment(text string) error
}

// Serializer writes a stream of markup events to an io.Writer as escaped
// HTML5. Each document needs its own Serializer; it is not safe for
// concurrent use.
type Serializer struct {
	w      io.Writer
	policy Policy

	stack        []string
	booleanAttrs map[string]bool
	text         textEscaper

	guardComments bool
	logger        *slog.Logger
	metrics       *Metrics

	buf []byte
	err error
}

var _ Handler = (*Serializer)(nil)

// New returns a Serializer writing to w under policy p. A nil interface
// fails with ErrNilPolicy; a typed nil pointer is not detected, so its
// methods must tolerate a nil receiver.
func New(w io.Writer, p Policy, opts ...Option) (*Serializer, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	if p == nil {
		return nil, ErrNilPolicy
	}
	s := &Serializer{
		w:            w,
		policy:       p,
		booleanAttrs: make(map[string]bool, len(defaultBooleanAttrs)),
		buf:          make([]byte, 0, 256),
	}
	for _, n := range defaultBooleanAttrs {
		s.booleanAttrs[n] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.text.encodeIntl = p.EncodesIntlCharacters()
	return s, nil
}

// StartElement writes a start tag. Attributes are written in order,
// duplicates included. No self-closing form is ever written.
func (s *Serializer) StartElement(tag string, attrs []html.Attribute) error {
	if s.err != nil {
		return s.err
	}
	tag = strings.ToLower(tag)
	s.stack = append(s.stack, tag)
	s.metrics.element()

	b := append(s.buf[:0], '<')
	b = append(b, tag...)
	for _, a := range attrs {
		name := strings.ToLower(a.Key)
		if a.Namespace != "" {
			name = strings.ToLower(a.Namespace) + ":" + name
		}
		b = append(b, ' ')
		b = append(b, name...)
		switch {
		case isURIAttr(name):
			// Same rule as other values; scheme checks belong to the
			// allow-list layer.
			b = appendAttrValue(b, a.Val)
		case s.booleanAttrs[name]:
		default:
			b = appendAttrValue(b, a.Val)
		}
	}
	b = append(b, '>')
	return s.flush(b, "start", tag)
}

// EndElement writes an end tag unless tag is a void element. An end event
// with no open element leaves the stack untouched but is still written.
func (s *Serializer) EndElement(tag string) error {
	if s.err != nil {
		return s.err
	}
	tag = strings.ToLower(tag)
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	} else {
		s.metrics.unmatched()
		s.logger.Debug("end tag with no open element", slog.String("tag", tag))
	}
	if IsVoidElement(tag) {
		return nil
	}
	b := append(s.buf[:0], "</"...)
	b = append(b, tag...)
	b = append(b, '>')
	return s.flush(b, "end", tag)
}

// Text writes escaped character data.
func (s *Serializer) Text(text string) error {
	if s.err != nil {
		return s.err
	}
	if text == "" {
		return nil
	}
	refs := s.text.refs
	b := s.text.escape(s.buf[:0], text)
	s.metrics.text(len(text), s.text.refs-refs)
	return s.flush(b, "text", s.Current())
}

// Comment writes <!--text--> when the policy preserves comments, and
// nothing otherwise. The body is not escaped.
func (s *Serializer) Comment(text string) error {
	if s.err != nil {
		return s.err
	}
	if !s.policy.PreservesComments() {
		s.metrics.comment(CommentDropped)
		s.logger.Debug("comment dropped", slog.Int("len", len(text)))
		return nil
	}
	if s.guardComments && unsafeComment(text) {
		s.metrics.comment(CommentRejected)
		s.logger.Warn("unsafe comment rejected", slog.String("parent", s.Current()))
		s.err = &Error{Op: "comment", Tag: s.Current(), Err: ErrUnsafeComment}
		return s.err
	}
	s.metrics.comment(CommentPreserved)
	b := append(s.buf[:0], "<!--"...)
	b = append(b, text...)
	b = append(b, "-->"...)
	return s.flush(b, "comment", s.Current())
}

// Depth returns the number of open elements.
func (s *Serializer) Depth() int {
	return len(s.stack)
}

// Current returns the innermost open element, or "" at the top level.
func (s *Serializer) Current() string {
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1]
}

// Ancestors returns a copy of the open elements, outermost first.
func (s *Serializer) Ancestors() []string {
	out := make([]string, len(s.stack))
	copy(out, s.stack)
	return out
}

// Err returns the error that aborted the pass, if any.
func (s *Serializer) Err() error {
	return s.err
}

func (s *Serializer) flush(b []byte, op, tag string) error {
	s.buf = b
	if _, err := s.w.Write(b); err != nil {
		s.metrics.writeError()
		s.err = &Error{Op: op, Tag: tag, Err: err}
		return s.err
	}
	return nil
}

func appendAttrValue(b []byte, v string) []byte {
	b = append(b, `="`...)
	b = append(b, EscapeAttribute(v)...)
	return append(b, '"')
}

// unsafeComment reports whether body would end a <!-- comment before the
// closing --> written after it.
func unsafeComment(body string) bool {
	return strings.HasPrefix(body, ">") ||
		strings.HasPrefix(body, "->") ||
		strings.Contains(body, "-->") ||
		strings.Contains(body, "--!>")
}
