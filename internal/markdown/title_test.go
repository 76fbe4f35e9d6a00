package markdown

import "testing"

func TestFirstHeading(t *testing.T) {
	body := `Intro paragraph.

# Field Notes

Some content.

# Second Heading
`
	if got := FirstHeading(body); got != "Field Notes" {
		t.Errorf("expected 'Field Notes', got %q", got)
	}
}

func TestFirstHeadingInlineMarkup(t *testing.T) {
	if got := FirstHeading("# My **Big** Title\n"); got != "My Big Title" {
		t.Errorf("expected inline markup stripped, got %q", got)
	}
}

func TestFirstHeadingNone(t *testing.T) {
	if got := FirstHeading("## Only a subheading\n\ntext\n"); got != "" {
		t.Errorf("expected no H1, got %q", got)
	}
	if got := FirstHeading(""); got != "" {
		t.Errorf("expected empty result for empty body, got %q", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := DisplayTitle("From Meta", "# From Body\n", "Blog/post.md"); got != "From Meta" {
		t.Errorf("expected frontmatter title to win, got %q", got)
	}
	if got := DisplayTitle("", "# From Body\n", "Blog/post.md"); got != "From Body" {
		t.Errorf("expected body heading, got %q", got)
	}
	if got := DisplayTitle("", "no headings here\n", "Blog/first-post.md"); got != "first-post" {
		t.Errorf("expected filename stem, got %q", got)
	}
}
