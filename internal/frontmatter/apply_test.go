package frontmatter

import (
	"errors"
	"strings"
	"testing"
)

func TestApplyNoFrontmatter(t *testing.T) {
	content := "# Title\ntext"
	result, action, err := Apply(content, "i-lucide-box", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionCreatedBlock {
		t.Errorf("expected action %q, got %q", ActionCreatedBlock, action)
	}
	want := "---\nnavigation:\n  icon: i-lucide-box\n---\n\n# Title\ntext"
	if result != want {
		t.Errorf("expected %q, got %q", want, result)
	}
}

func TestApplyNoFrontmatterEmptyFile(t *testing.T) {
	result, action, err := Apply("", "i-lucide-file", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionCreatedBlock {
		t.Errorf("expected action %q, got %q", ActionCreatedBlock, action)
	}
	want := "---\nnavigation:\n  icon: i-lucide-file\n---\n\n"
	if result != want {
		t.Errorf("expected %q, got %q", want, result)
	}
}

func TestApplyExistingNavigation(t *testing.T) {
	content := "---\nnavigation:\n  title: X\n---\nBody"
	result, action, err := Apply(content, "i-lucide-scroll", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionAddedIcon {
		t.Errorf("expected action %q, got %q", ActionAddedIcon, action)
	}
	want := "---\nnavigation:\n  title: X\n  icon: i-lucide-scroll\n---\nBody"
	if result != want {
		t.Errorf("expected %q, got %q", want, result)
	}
}

func TestApplyCreatesNavigation(t *testing.T) {
	content := "---\ntitle: Hello\n---\nBody"
	result, action, err := Apply(content, "i-lucide-file", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionCreatedNavigation {
		t.Errorf("expected action %q, got %q", ActionCreatedNavigation, action)
	}
	want := "---\ntitle: Hello\nnavigation:\n  icon: i-lucide-file\n---\nBody"
	if result != want {
		t.Errorf("expected %q, got %q", want, result)
	}
}

func TestApplyWithoutCreateNavigationLeavesFileAlone(t *testing.T) {
	// Legacy behavior: a block without a navigation key is not touched
	// unless the policy allows creating one.
	content := "---\ntitle: Hello\n---\nBody"
	result, action, err := Apply(content, "i-lucide-file", Policy{CreateNavigation: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionNone {
		t.Errorf("expected action %q, got %q", ActionNone, action)
	}
	if result != content {
		t.Errorf("expected content unchanged, got %q", result)
	}
}

func TestApplyAlreadyConfiguredNested(t *testing.T) {
	content := "---\nnavigation:\n  icon: i-lucide-home\n  title: Home\n---\nBody"
	result, action, err := Apply(content, "i-lucide-file", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionNone {
		t.Errorf("expected action %q, got %q", ActionNone, action)
	}
	if result != content {
		t.Errorf("expected content byte-for-byte unchanged, got %q", result)
	}
}

func TestApplyAlreadyConfiguredTopLevel(t *testing.T) {
	content := "---\nicon: i-lucide-home\ntitle: Home\n---\nBody"
	result, action, err := Apply(content, "i-lucide-file", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionNone {
		t.Errorf("expected action %q, got %q", ActionNone, action)
	}
	if result != content {
		t.Errorf("expected content byte-for-byte unchanged, got %q", result)
	}
}

func TestApplyAlreadyConfiguredOtherMapping(t *testing.T) {
	content := "---\nhero:\n  icon: i-lucide-star\n---\nBody"
	result, action, err := Apply(content, "i-lucide-file", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionNone {
		t.Errorf("expected action %q, got %q", ActionNone, action)
	}
	if result != content {
		t.Errorf("expected content byte-for-byte unchanged, got %q", result)
	}
}

func TestApplyIconInScalarValueDoesNotShortCircuit(t *testing.T) {
	// "icon" appearing inside a string value is not a declared icon.
	content := "---\ndescription: \"icon: not really\"\nnavigation:\n  title: X\n---\nBody"
	result, action, err := Apply(content, "i-lucide-box", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionAddedIcon {
		t.Errorf("expected action %q, got %q", ActionAddedIcon, action)
	}
	if !strings.Contains(result, "icon: i-lucide-box") {
		t.Errorf("expected icon to be added, got %q", result)
	}
}

func TestApplyNavigationScopeIgnoresTopLevelIcon(t *testing.T) {
	content := "---\nicon: i-lucide-home\nnavigation:\n  title: X\n---\nBody"
	policy := Policy{CreateNavigation: true, NavigationScopeOnly: true}
	result, action, err := Apply(content, "i-lucide-box", policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionAddedIcon {
		t.Errorf("expected action %q, got %q", ActionAddedIcon, action)
	}
	if !strings.Contains(result, "  icon: i-lucide-box\n") {
		t.Errorf("expected navigation icon to be added, got %q", result)
	}
}

func TestApplyNavigationScopeStillWriteOnce(t *testing.T) {
	content := "---\nnavigation:\n  icon: i-lucide-home\n---\nBody"
	policy := Policy{CreateNavigation: true, NavigationScopeOnly: true}
	result, action, err := Apply(content, "i-lucide-box", policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionNone {
		t.Errorf("expected action %q, got %q", ActionNone, action)
	}
	if result != content {
		t.Errorf("expected content unchanged, got %q", result)
	}
}

func TestApplyBareNavigationKey(t *testing.T) {
	content := "---\nnavigation:\n---\nBody"
	result, action, err := Apply(content, "i-lucide-box", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionAddedIcon {
		t.Errorf("expected action %q, got %q", ActionAddedIcon, action)
	}
	want := "---\nnavigation:\n  icon: i-lucide-box\n---\nBody"
	if result != want {
		t.Errorf("expected %q, got %q", want, result)
	}
}

func TestApplyEmptyBlock(t *testing.T) {
	content := "---\n---\nBody"
	result, action, err := Apply(content, "i-lucide-box", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionCreatedNavigation {
		t.Errorf("expected action %q, got %q", ActionCreatedNavigation, action)
	}
	want := "---\nnavigation:\n  icon: i-lucide-box\n---\nBody"
	if result != want {
		t.Errorf("expected %q, got %q", want, result)
	}
}

func TestApplyNavigationNotMapping(t *testing.T) {
	content := "---\nnavigation: true\n---\nBody"
	result, _, err := Apply(content, "i-lucide-box", DefaultPolicy)
	if !errors.Is(err, ErrNavigationShape) {
		t.Errorf("expected ErrNavigationShape, got %v", err)
	}
	if result != content {
		t.Errorf("expected content unchanged on error, got %q", result)
	}
}

func TestApplyBlockNotMapping(t *testing.T) {
	content := "---\n- one\n- two\n---\nBody"
	result, _, err := Apply(content, "i-lucide-box", DefaultPolicy)
	if !errors.Is(err, ErrNotMapping) {
		t.Errorf("expected ErrNotMapping, got %v", err)
	}
	if result != content {
		t.Errorf("expected content unchanged on error, got %q", result)
	}
}

func TestApplyUnterminated(t *testing.T) {
	content := "---\ntitle: Hello\nno close"
	result, _, err := Apply(content, "i-lucide-box", DefaultPolicy)
	if !errors.Is(err, ErrUnterminated) {
		t.Errorf("expected ErrUnterminated, got %v", err)
	}
	if result != content {
		t.Errorf("expected content unchanged on error, got %q", result)
	}
}

func TestApplyPreservesKeyOrderAndComments(t *testing.T) {
	content := "---\n# pinned\ntitle: Hello\ntags:\n  - a\n  - b\nnavigation:\n  title: X\n---\nBody"
	result, _, err := Apply(content, "i-lucide-box", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, "# pinned") {
		t.Errorf("expected comment preserved, got %q", result)
	}
	titleIdx := strings.Index(result, "title: Hello")
	tagsIdx := strings.Index(result, "tags:")
	navIdx := strings.Index(result, "navigation:")
	if titleIdx < 0 || tagsIdx < 0 || navIdx < 0 {
		t.Fatalf("expected all keys present, got %q", result)
	}
	if !(titleIdx < tagsIdx && tagsIdx < navIdx) {
		t.Errorf("expected key order preserved, got %q", result)
	}
}

func TestApplyIdempotent(t *testing.T) {
	content := "# Title\ntext\n"
	first, action, err := Apply(content, "i-lucide-box", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error on first pass: %v", err)
	}
	if !action.Mutated() {
		t.Fatalf("expected first pass to mutate, got %q", action)
	}
	second, action, err := Apply(first, "i-lucide-box", DefaultPolicy)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if action != ActionNone {
		t.Errorf("expected second pass action %q, got %q", ActionNone, action)
	}
	if second != first {
		t.Errorf("expected second pass unchanged, got %q", second)
	}
}

func TestActionMutated(t *testing.T) {
	if ActionNone.Mutated() {
		t.Error("expected ActionNone not to count as a mutation")
	}
	for _, action := range []Action{ActionCreatedBlock, ActionAddedIcon, ActionCreatedNavigation} {
		if !action.Mutated() {
			t.Errorf("expected %q to count as a mutation", action)
		}
	}
}
