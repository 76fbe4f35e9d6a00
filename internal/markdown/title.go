// Package markdown extracts display information from note bodies.
package markdown

import (
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FirstHeading returns the text of the first level-1 heading in body,
// or "" when there is none.
func FirstHeading(body string) string {
	src := []byte(body)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 {
			return strings.TrimSpace(string(heading.Text(src)))
		}
	}
	return ""
}

// DisplayTitle picks a title for a note: the frontmatter title when set,
// else the first H1 in the body, else the filename without extension.
func DisplayTitle(metaTitle, body, relPath string) string {
	if metaTitle != "" {
		return metaTitle
	}
	if h := FirstHeading(body); h != "" {
		return h
	}
	return strings.TrimSuffix(path.Base(relPath), ".md")
}
