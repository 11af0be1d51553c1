package htmlsanitizer

import (
	"log/slog"
	"strings"

	"github.com/njchilds90/htmlsanitizer/serialize"
	"golang.org/x/net/html"
)

// Transformer is a function that receives an allowed HTML node and may
// mutate it in place (e.g., adding or removing attributes). Returning
// nil removes the node from the output entirely.
type Transformer func(n *html.Node) *html.Node

// Policy defines what HTML is considered safe and how it is written.
// A *Policy satisfies serialize.Policy.
type Policy struct {
	// AllowedTags is the list of tag names that are kept in output.
	// All other element nodes are either stripped (removed entirely)
	// or escaped, depending on StripDisallowed.
	AllowedTags []string

	// AllowedAttributes maps tag names to the list of attribute names
	// that are kept on that tag. Use "*" as a key to allow attributes
	// on every tag.
	AllowedAttributes map[string][]string

	// AllowedSchemes lists the URL schemes (e.g. "http", "https",
	// "mailto") permitted in href, src and action attributes. Any
	// attribute whose URL scheme is not in this list is removed.
	AllowedSchemes []string

	// StripDisallowed controls behavior for disallowed element nodes.
	// When true the element and all its descendants are removed.
	// When false (default) the element tags are escaped to plain text
	// but descendants are still walked.
	StripDisallowed bool

	// Transformers is an optional slice of Transformer functions applied
	// in order to every allowed element node after attribute filtering.
	Transformers []Transformer

	// Linkify converts plain-text URLs found in text nodes into <a>
	// elements pointing to those URLs. Text already inside a link is
	// left alone.
	Linkify bool

	// MaxDepth limits how deeply nested elements may be. Nodes at
	// a depth greater than MaxDepth are treated as disallowed.
	// Zero means unlimited.
	MaxDepth int

	// PreserveComments keeps HTML comments in the output. Comment
	// bodies are written without escaping.
	PreserveComments bool

	// EntityEncodeIntlCharacters writes every text character other than
	// the escaped specials as a numeric character reference.
	EntityEncodeIntlCharacters bool

	// AllowedEmptyTags lists the non-void elements that may be written
	// with no children. Other allowed elements without children are
	// dropped. An empty list allows every element to be empty.
	AllowedEmptyTags []string

	// RequiresClosingTags lists elements that are always written with an
	// explicit end tag, even when they have no children and are not in
	// AllowedEmptyTags.
	RequiresClosingTags []string

	// BooleanAttributes adds attribute names that are written without a
	// value. disabled and checked are always boolean.
	BooleanAttributes []string

	// Logger receives diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics, if set, records serializer activity.
	Metrics *serialize.Metrics
}

var _ serialize.Policy = (*Policy)(nil)

// DefaultPolicy returns a Policy that allows a common safe subset of
// HTML used in content: headings, paragraphs, formatting, lists,
// links, images, code, blockquotes, while rejecting script, style,
// and other dangerous tags. Links and image sources must use http,
// https, or mailto.
func DefaultPolicy() *Policy {
	return &Policy{
		AllowedTags: []string{
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "br", "hr",
			"b", "i", "em", "strong", "u", "s", "strike", "del", "ins",
			"a", "img",
			"ul", "ol", "li",
			"table", "thead", "tbody", "tfoot", "tr", "th", "td",
			"code", "pre", "kbd", "samp",
			"blockquote", "cite", "q",
			"figure", "figcaption",
			"div", "span", "section", "article", "header", "footer",
			"details", "summary",
			"abbr", "acronym", "address",
			"sup", "sub",
		},
		AllowedAttributes: map[string][]string{
			"a":          {"href", "title", "target", "rel"},
			"img":        {"src", "alt", "title", "width", "height", "loading"},
			"td":         {"colspan", "rowspan", "align", "valign"},
			"th":         {"colspan", "rowspan", "align", "valign", "scope"},
			"blockquote": {"cite"},
			"q":          {"cite"},
			"abbr":       {"title"},
			"acronym":    {"title"},
			"details":    {"open"},
			"*":          {"id", "class", "lang", "dir"},
		},
		AllowedSchemes:    []string{"http", "https", "mailto"},
		StripDisallowed:   false,
		BooleanAttributes: []string{"open"},
	}
}

// StrictPolicy returns a Policy that allows only the most basic inline
// formatting tags with no attributes at all, suitable for comment
// sections and user-generated content where you want minimal markup.
// Empty elements other than br are dropped.
func StrictPolicy() *Policy {
	return &Policy{
		AllowedTags:       []string{"b", "i", "em", "strong", "br", "p", "ul", "ol", "li"},
		AllowedAttributes: map[string][]string{},
		AllowedSchemes:    []string{"https"},
		StripDisallowed:   true,
		AllowedEmptyTags:  []string{"br"},
	}
}

// PreservesComments implements serialize.Policy.
func (p *Policy) PreservesComments() bool { return p != nil && p.PreserveComments }

// EncodesIntlCharacters implements serialize.Policy.
func (p *Policy) EncodesIntlCharacters() bool { return p != nil && p.EntityEncodeIntlCharacters }

// AllowsEmpty implements serialize.Policy. A nil Policy allows every
// element to be empty.
func (p *Policy) AllowsEmpty(tag string) bool {
	return p == nil || len(p.AllowedEmptyTags) == 0 || containsFold(p.AllowedEmptyTags, tag)
}

// RequiresClosingTag implements serialize.Policy.
func (p *Policy) RequiresClosingTag(tag string) bool {
	return p != nil && containsFold(p.RequiresClosingTags, tag)
}

func (p *Policy) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Policy) serializerOptions() []serialize.Option {
	return []serialize.Option{
		serialize.WithLogger(p.logger()),
		serialize.WithMetrics(p.Metrics),
		serialize.WithBooleanAttributes(p.BooleanAttributes...),
		serialize.WithCommentGuard(),
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
