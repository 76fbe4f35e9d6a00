// Package frontmatter reads and amends the YAML metadata block at the start
// of a markdown document.
package frontmatter

import (
	"errors"
	"strings"

	fm "github.com/adrg/frontmatter"
)

// delimiter is the sentinel line that opens and closes a metadata block.
const delimiter = "---"

var (
	// ErrUnterminated is returned when a metadata block opens but never closes.
	ErrUnterminated = errors.New("unterminated metadata block")
	// ErrNotMapping is returned when the metadata block parses but its top
	// level is not a key-value mapping.
	ErrNotMapping = errors.New("metadata block is not a key-value mapping")
	// ErrNavigationShape is returned when a navigation entry exists but is not
	// a mapping, so no icon can be added under it.
	ErrNavigationShape = errors.New("navigation entry is not a mapping")
)

// Split separates a document into its metadata block (delimiters stripped)
// and body. ok reports whether a metadata block is present. The block opens
// with a sentinel line at byte zero and closes at the first later line that
// is exactly the sentinel; a block that never closes is ErrUnterminated.
func Split(content string) (block, body string, ok bool, err error) {
	if !strings.HasPrefix(content, delimiter+"\n") {
		return "", content, false, nil
	}
	rest := content[len(delimiter)+1:]

	// Empty block: opening sentinel immediately followed by the closing one.
	if strings.HasPrefix(rest, delimiter+"\n") {
		return "", rest[len(delimiter)+1:], true, nil
	}
	if rest == delimiter {
		return "", "", true, nil
	}

	if idx := strings.Index(rest, "\n"+delimiter+"\n"); idx >= 0 {
		return rest[:idx+1], rest[idx+len(delimiter)+2:], true, nil
	}
	if strings.HasSuffix(rest, "\n"+delimiter) {
		return rest[:len(rest)-len(delimiter)], "", true, nil
	}
	return "", "", false, ErrUnterminated
}

// Meta is the subset of note metadata navstamp reads for reporting.
type Meta struct {
	Title      string `yaml:"title"`
	Navigation struct {
		Icon  string `yaml:"icon"`
		Title string `yaml:"title"`
	} `yaml:"navigation"`
}

// ParseMeta decodes the metadata block of a document for read-only reporting.
// Content without a metadata block yields a zero Meta and the full content as
// body. Malformed metadata is treated the same way; the apply path is where
// those errors surface.
func ParseMeta(content string) (Meta, string) {
	var meta Meta
	body, err := fm.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return Meta{}, content
	}
	return meta, string(body)
}
