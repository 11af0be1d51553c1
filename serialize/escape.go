package serialize

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// attrReplacer escapes attribute values. Replacement is single-pass, so the
// ampersands it inserts are never escaped again. Single quotes are left
// alone: values are always double-quoted.
var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeAttribute escapes s for use inside a double-quoted attribute value.
func EscapeAttribute(s string) string {
	return attrReplacer.Replace(s)
}

// SurrogateMode selects how characters outside the Basic Multilingual Plane
// are written by Text.
type SurrogateMode int

const (
	// SurrogatesJoint writes a supplementary character as a single
	// reference to its code point, e.g. &#128512;.
	SurrogatesJoint SurrogateMode = iota

	// SurrogatesPerUnit splits a supplementary character into its UTF-16
	// code units and treats each one separately, e.g. &#55357;&#56832;.
	// With intl encoding off the trailing unit has no UTF-8 form and is
	// written as U+FFFD.
	SurrogatesPerUnit
)

func (m SurrogateMode) String() string {
	switch m {
	case SurrogatesJoint:
		return "joint"
	case SurrogatesPerUnit:
		return "per-unit"
	}
	return "SurrogateMode(" + strconv.Itoa(int(m)) + ")"
}

const replacementChar = "\uFFFD"

func isHighSurrogate(u rune) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u rune) bool  { return u >= 0xDC00 && u <= 0xDFFF }

// textEscaper appends escaped text to a scratch buffer.
type textEscaper struct {
	encodeIntl bool
	mode       SurrogateMode

	// refs counts numeric character references written.
	refs int
}

func (e *textEscaper) ref(buf []byte, u rune) []byte {
	e.refs++
	buf = append(buf, "&#"...)
	buf = strconv.AppendInt(buf, int64(u), 10)
	return append(buf, ';')
}

// escape appends the text-escaped form of s to buf.
func (e *textEscaper) escape(buf []byte, s string) []byte {
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			buf = e.ascii(buf, c)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			if u, ok := decodeSurrogate(s[i:]); ok {
				i += 3
				if isHighSurrogate(u) && e.mode == SurrogatesJoint {
					if lo, ok := decodeSurrogate(s[i:]); ok && isLowSurrogate(lo) {
						buf = e.ref(buf, utf16.DecodeRune(u, lo))
						i += 3
						continue
					}
				}
				buf = e.unit(buf, u)
				continue
			}
			buf = e.invalid(buf)
			i++
			continue
		}
		i += size
		if r > 0xFFFF {
			if e.mode == SurrogatesPerUnit {
				hi, lo := utf16.EncodeRune(r)
				buf = e.unit(buf, hi)
				buf = e.unit(buf, lo)
				continue
			}
			// Leads with a high surrogate in UTF-16: always encoded.
			buf = e.ref(buf, r)
			continue
		}
		if e.encodeIntl {
			buf = e.ref(buf, r)
			continue
		}
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}

func (e *textEscaper) ascii(buf []byte, c byte) []byte {
	switch c {
	case '<':
		return append(buf, "&lt;"...)
	case '>':
		return append(buf, "&gt;"...)
	case '&':
		return append(buf, "&amp;"...)
	case '"':
		return append(buf, "&quot;"...)
	case '\'':
		return append(buf, "&#39;"...)
	}
	if e.encodeIntl {
		return e.ref(buf, rune(c))
	}
	return append(buf, c)
}

// unit writes a lone UTF-16 surrogate code unit.
func (e *textEscaper) unit(buf []byte, u rune) []byte {
	if isHighSurrogate(u) || e.encodeIntl {
		return e.ref(buf, u)
	}
	return append(buf, replacementChar...)
}

func (e *textEscaper) invalid(buf []byte) []byte {
	if e.encodeIntl {
		return e.ref(buf, utf8.RuneError)
	}
	return append(buf, replacementChar...)
}

// decodeSurrogate decodes a surrogate code unit stored in generalized UTF-8
// (ED A0..BF 80..BF), the form unpaired UTF-16 halves take when converted
// without validation.
func decodeSurrogate(s string) (rune, bool) {
	if len(s) < 3 || s[0] != 0xED || s[1] < 0xA0 || s[1] > 0xBF || s[2] < 0x80 || s[2] > 0xBF {
		return 0, false
	}
	return 0xD000 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), true
}
