package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// NewPolicy returns the sanitizer policy for rendered notes: user generated
// content plus the task checkboxes, heading anchors and inlined images.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").Matching(regexp.MustCompile(`^$`)).OnElements("input")
	p.AllowAttrs("data-task-index").Matching(regexp.MustCompile(`^[0-9]+$`)).OnElements("input")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("input", "li", "ul", "code", "span")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowDataURIImages()

	return p
}
