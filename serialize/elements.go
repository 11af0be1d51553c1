package serialize

// voidElements are elements that never have content or a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement reports whether tag (lowercase) is an HTML void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// defaultBooleanAttrs are written as a bare name. Extend per serializer
// with WithBooleanAttributes.
var defaultBooleanAttrs = []string{"disabled", "checked"}

func isURIAttr(name string) bool {
	return name == "href" || name == "src"
}
