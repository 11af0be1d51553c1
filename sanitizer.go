package htmlsanitizer

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/njchilds90/htmlsanitizer/serialize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const tracerName = "github.com/njchilds90/htmlsanitizer"

// urlRegexp matches http/https URLs inside plain text.
var urlRegexp = regexp.MustCompile(`https?://[^\s<>"]+[^\s<>".,;:!?)\]]`)

// Sanitize parses htmlStr, applies p, and returns the sanitized HTML.
// If p is nil, DefaultPolicy is used.
func Sanitize(htmlStr string, p *Policy) (string, error) {
	return SanitizeReader(strings.NewReader(htmlStr), p)
}

// SanitizeReader reads HTML from r, applies p, and returns the
// sanitized HTML string.
func SanitizeReader(r io.Reader, p *Policy) (string, error) {
	var buf bytes.Buffer
	if err := SanitizeTo(context.Background(), &buf, r, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SanitizeTo reads HTML from r, applies p, and streams the result to w.
// Output written before an error is not rolled back. If p is nil,
// DefaultPolicy is used.
func SanitizeTo(ctx context.Context, w io.Writer, r io.Reader, p *Policy) (err error) {
	if p == nil {
		p = DefaultPolicy()
	}

	_, span := otel.Tracer(tracerName).Start(ctx, "htmlsanitizer.Sanitize",
		trace.WithAttributes(
			attribute.Bool("htmlsanitizer.strip_disallowed", p.StripDisallowed),
			attribute.Bool("htmlsanitizer.preserve_comments", p.PreserveComments),
			attribute.Int("htmlsanitizer.max_depth", p.MaxDepth),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	nodes, err := parseBody(r)
	if err != nil {
		return err
	}

	s, err := serialize.New(w, p, p.serializerOptions()...)
	if err != nil {
		return err
	}

	wk := &walker{
		s:              s,
		p:              p,
		logger:         p.logger(),
		allowedTags:    sliceToSet(p.AllowedTags),
		allowedSchemes: sliceToSet(p.AllowedSchemes),
	}
	for _, n := range nodes {
		if err := wk.walk(n, 1); err != nil {
			return err
		}
	}
	span.SetAttributes(attribute.Int("htmlsanitizer.dropped_empty", wk.droppedEmpty))
	return nil
}

// walker feeds the filtered node tree to a Serializer. Start tags of
// elements that may not be empty are held in pending until something is
// written inside them, so an element whose content was filtered away is
// dropped as well.
type walker struct {
	s      *serialize.Serializer
	p      *Policy
	logger *slog.Logger

	// Build lookup sets for O(1) access.
	allowedTags    map[string]bool
	allowedSchemes map[string]bool

	pending   []pendingTag
	linkDepth int

	droppedEmpty int
}

type pendingTag struct {
	tag   string
	attrs []html.Attribute
}

func (wk *walker) walk(n *html.Node, depth int) error {
	switch n.Type {
	case html.TextNode:
		if err := wk.open(); err != nil {
			return err
		}
		if wk.p.Linkify && wk.linkDepth == 0 {
			return writeLinkedText(wk.s, n.Data)
		}
		return wk.s.Text(n.Data)

	case html.ElementNode:
		return wk.element(n, depth)

	case html.CommentNode:
		if wk.p.PreservesComments() {
			if err := wk.open(); err != nil {
				return err
			}
		}
		return wk.s.Comment(n.Data)

	case html.DoctypeNode:
		// skip
		return nil

	default:
		return wk.children(n, depth)
	}
}

func (wk *walker) element(n *html.Node, depth int) error {
	tag := strings.ToLower(n.Data)
	tooDeep := wk.p.MaxDepth > 0 && depth > wk.p.MaxDepth

	if !wk.allowedTags[tag] || tooDeep {
		if wk.p.StripDisallowed {
			return nil // drop node and all descendants
		}
		// Escape the open tag, recurse into children, escape close tag.
		if err := wk.open(); err != nil {
			return err
		}
		if err := wk.s.Text(renderOpenTag(n)); err != nil {
			return err
		}
		if err := wk.children(n, depth); err != nil {
			return err
		}
		if serialize.IsVoidElement(tag) {
			return nil
		}
		return wk.s.Text("</" + tag + ">")
	}

	// Filter attributes.
	n.Attr = filterAttrs(n.Attr, tag, wk.p.AllowedAttributes, wk.allowedSchemes)

	// Run transformers.
	for _, t := range wk.p.Transformers {
		if n = t(n); n == nil {
			return nil
		}
	}

	if tag == "a" {
		wk.linkDepth++
		defer func() { wk.linkDepth-- }()
	}

	if serialize.IsVoidElement(tag) || wk.p.AllowsEmpty(tag) || wk.p.RequiresClosingTag(tag) {
		if err := wk.open(); err != nil {
			return err
		}
		if err := wk.s.StartElement(tag, n.Attr); err != nil {
			return err
		}
		if err := wk.children(n, depth); err != nil {
			return err
		}
		return wk.s.EndElement(tag)
	}

	mark := len(wk.pending)
	wk.pending = append(wk.pending, pendingTag{tag: tag, attrs: n.Attr})
	if err := wk.children(n, depth); err != nil {
		return err
	}
	if len(wk.pending) > mark {
		wk.pending = wk.pending[:mark]
		wk.droppedEmpty++
		wk.logger.Debug("empty element dropped", slog.String("tag", tag))
		return nil
	}
	return wk.s.EndElement(tag)
}

// open writes the start tags of all pending elements.
func (wk *walker) open() error {
	for _, e := range wk.pending {
		if err := wk.s.StartElement(e.tag, e.attrs); err != nil {
			return err
		}
	}
	wk.pending = wk.pending[:0]
	return nil
}

func (wk *walker) children(n *html.Node, depth int) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := wk.walk(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// StripTags removes all HTML tags and returns plain text. Entity
// references are decoded.
func StripTags(htmlStr string) (string, error) {
	nodes, err := parseBody(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return buf.String(), nil
}

// SetAttr sets (or adds) the attribute key=val on node n. It is
// intended for use inside Transformer functions.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// GetAttr returns the value of the named attribute on n, or "" if not
// present.
func GetAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// RemoveAttr removes the named attribute from n if present.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

// --- helpers ---------------------------------------------------------

// parseBody parses r as the contents of a <body> element.
func parseBody(r io.Reader) ([]*html.Node, error) {
	return html.ParseFragment(r, &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
}

func filterAttrs(attrs []html.Attribute, tag string, allowed map[string][]string, schemes map[string]bool) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		tagAllowed := attrAllowed(a.Key, tag, allowed)
		if !tagAllowed {
			continue
		}
		if a.Key == "href" || a.Key == "src" || a.Key == "action" {
			if !schemeAllowed(a.Val, schemes) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func attrAllowed(attr, tag string, allowed map[string][]string) bool {
	if list, ok := allowed["*"]; ok {
		for _, a := range list {
			if a == attr {
				return true
			}
		}
	}
	if list, ok := allowed[tag]; ok {
		for _, a := range list {
			if a == attr {
				return true
			}
		}
	}
	return false
}

func schemeAllowed(raw string, schemes map[string]bool) bool {
	// Decode HTML entities again to catch &amp;#106;avascript: style
	// double encoding.
	decoded := html.UnescapeString(strings.TrimSpace(raw))
	decoded = strings.ToLower(strings.TrimSpace(decoded))

	// Strip zero-width / control chars that can confuse parsers.
	decoded = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, decoded)

	u, err := url.Parse(decoded)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		// Relative URL, allow.
		return true
	}
	return schemes[scheme]
}

func sliceToSet(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[strings.ToLower(v)] = true
	}
	return m
}

// renderOpenTag reconstructs a disallowed start tag so it can be shown
// as text.
func renderOpenTag(n *html.Node) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(a.Val)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	return sb.String()
}

func writeLinkedText(s *serialize.Serializer, text string) error {
	last := 0
	matches := urlRegexp.FindAllStringIndex(text, -1)
	for _, m := range matches {
		if err := s.Text(text[last:m[0]]); err != nil {
			return err
		}
		rawURL := text[m[0]:m[1]]
		if err := s.StartElement("a", []html.Attribute{
			{Key: "href", Val: rawURL},
			{Key: "rel", Val: "noopener noreferrer"},
		}); err != nil {
			return err
		}
		if err := s.Text(rawURL); err != nil {
			return err
		}
		if err := s.EndElement("a"); err != nil {
			return err
		}
		last = m[1]
	}
	return s.Text(text[last:])
}
