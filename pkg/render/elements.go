package render

// inlineElements are rendered without surrounding newlines in
// pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"button": true,
	"code":   true,
	"em":     true,
	"i":      true,
	"img":    true,
	"small":  true,
	"span":   true,
	"strong": true,
}

// isInlineElement returns true if the tag is an inline element.
func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are attributes that don't need a value.
// When true, they're rendered as just the attribute name.
var booleanAttrs = map[string]bool{
	"async":    true,
	"checked":  true,
	"defer":    true,
	"disabled": true,
	"hidden":   true,
	"readonly": true,
	"selected": true,
}

// isBooleanAttr returns true if the attribute is a boolean attribute.
func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
