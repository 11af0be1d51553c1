// Package htmlsanitizer provides a fast, policy-driven HTML sanitizer
// for Go applications.
//
// # Overview
//
// htmlsanitizer parses an HTML string (or io.Reader) using the
// golang.org/x/net/html parser, walks the resulting node tree, and feeds
// the tags, attributes, and URL schemes permitted by a [Policy] to a
// [serialize.Serializer], which writes them back out as escaped HTML5.
//
// # Policies
//
// A [Policy] controls:
//   - Which element tags are allowed ([Policy.AllowedTags])
//   - Which attributes are allowed per tag ([Policy.AllowedAttributes])
//   - Which URL schemes are allowed in href/src/action ([Policy.AllowedSchemes])
//   - Whether disallowed tags are stripped (removed with children) or escaped ([Policy.StripDisallowed])
//   - Zero or more [Transformer] callbacks that can mutate allowed nodes
//   - Whether plain-text URLs in text nodes become clickable links ([Policy.Linkify])
//   - A maximum DOM nesting depth ([Policy.MaxDepth])
//   - Whether comments survive ([Policy.PreserveComments])
//   - Whether non-ASCII text is written as character references ([Policy.EntityEncodeIntlCharacters])
//   - Which elements may be empty ([Policy.AllowedEmptyTags], [Policy.RequiresClosingTags])
//
// Two built-in policies are provided:
//   - [DefaultPolicy]: a permissive but safe policy covering common
//     content tags. Good starting point for blog posts, articles, etc.
//   - [StrictPolicy]: a minimal policy allowing only basic inline
//     formatting with no attributes. Good for comment sections.
//
// Policies can also be read from YAML with [LoadPolicy].
//
// # Output
//
// Output follows HTML5 serialization: void elements such as <br> and
// <img> have no end tag and are never written as <br />, boolean
// attributes such as disabled are written without a value, and every
// attribute value is double-quoted.
//
// # Security
//
// htmlsanitizer defends against common XSS vectors including:
//   - Script injection via <script> tags
//   - Event handler attributes (onclick, onerror, etc.)
//   - javascript: and data: URL schemes (including entity-encoded forms)
//   - Attribute breakout via quotes in attribute values
//
// It does NOT provide a Content Security Policy header; pair with
// proper HTTP headers for defence in depth.
//
// # Thread Safety
//
// Sanitize, SanitizeTo and StripTags are safe for concurrent use. Policy
// structs should not be mutated after first use.
//
// # Example
//
//	p := htmlsanitizer.DefaultPolicy()
//	clean, err := htmlsanitizer.Sanitize(userInput, p)
package htmlsanitizer
