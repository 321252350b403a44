package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// renderPolicy allow-lists what the rich-text editor emits. Everything else
// is dropped before content reaches storage.
var renderPolicy = buildRenderPolicy()

// stripPolicy removes all markup, leaving plain text.
var stripPolicy = bluemonday.StrictPolicy()

var spaceRe = regexp.MustCompile(`\s+`)

func buildRenderPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "span", "strong", "em", "u", "s", "code", "pre", "blockquote",
		"ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6", "br", "hr",
	)
	p.AllowAttrs("class").OnElements("code", "pre")
	p.AllowStyles("color").Matching(regexp.MustCompile(`(?i)^(#[0-9a-f]{3,6}|rgb\((\s*\d+\s*,){2}\s*\d+\s*\))$`)).OnElements("span")

	p.AllowAttrs("href", "title", "rel", "target").OnElements("a")
	p.AllowStandardURLs()

	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowStyles("width", "height").Matching(regexp.MustCompile(`^\d+(px|%)$`)).OnElements("img")
	p.AllowStyles("display").Matching(regexp.MustCompile(`^(block|inline-block|inline)$`)).OnElements("img")
	return p
}

// HTML sanitizes rich-text content for storage and rendering.
func HTML(in string) string {
	return renderPolicy.Sanitize(in)
}

// PlainText strips all markup and collapses whitespace. Used for emptiness
// checks and tag names.
func PlainText(in string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(stripPolicy.Sanitize(in), " "))
}
