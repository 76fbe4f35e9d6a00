package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Action describes what Apply did to a document.
type Action string

const (
	// ActionNone means the document was left untouched.
	ActionNone Action = "none"
	// ActionCreatedBlock means a metadata block was synthesized and prepended.
	ActionCreatedBlock Action = "created-frontmatter"
	// ActionAddedIcon means an icon entry was added to an existing navigation mapping.
	ActionAddedIcon Action = "added-icon"
	// ActionCreatedNavigation means a navigation mapping holding the icon was
	// added to an existing metadata block.
	ActionCreatedNavigation Action = "created-navigation"
)

// Mutated reports whether the action changed the document.
func (a Action) Mutated() bool {
	return a == ActionCreatedBlock || a == ActionAddedIcon || a == ActionCreatedNavigation
}

// Policy controls how Apply treats documents whose metadata block carries no icon.
type Policy struct {
	// CreateNavigation synthesizes a navigation mapping in blocks that have
	// none. When false such documents are left untouched.
	CreateNavigation bool
	// NavigationScopeOnly narrows the already-configured check to
	// navigation.icon. By default an icon key anywhere in the block counts.
	NavigationScopeOnly bool
}

// DefaultPolicy creates missing navigation mappings and honors an icon key
// anywhere in the metadata block.
var DefaultPolicy = Policy{CreateNavigation: true}

// Apply ensures the document declares icon under navigation in its metadata
// block, synthesizing or amending the block as needed. Documents already
// carrying an icon per the policy come back byte-for-byte unchanged: the
// write-once contract means an existing icon is never replaced, even when the
// mapping has since changed.
func Apply(content, icon string, policy Policy) (string, Action, error) {
	block, body, ok, err := Split(content)
	if err != nil {
		return content, ActionNone, err
	}

	if !ok {
		doc := fmt.Sprintf("%s\nnavigation:\n  icon: %s\n%s\n\n", delimiter, icon, delimiter)
		return doc + content, ActionCreatedBlock, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return content, ActionNone, fmt.Errorf("parse metadata block: %w", err)
	}
	root, err := mappingRoot(&doc)
	if err != nil {
		return content, ActionNone, err
	}

	if hasIcon(root, policy.NavigationScopeOnly) {
		return content, ActionNone, nil
	}

	nav := findKey(root, "navigation")
	action := ActionAddedIcon
	switch {
	case nav == nil:
		if !policy.CreateNavigation {
			return content, ActionNone, nil
		}
		nav = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "navigation"},
			nav)
		action = ActionCreatedNavigation
	case nav.Kind == yaml.MappingNode:
	case nav.Kind == yaml.ScalarNode && nav.Tag == "!!null":
		// A bare "navigation:" line parses as null; treat it as an empty mapping.
		nav.Kind = yaml.MappingNode
		nav.Tag = "!!map"
		nav.Value = ""
		nav.Style = 0
	default:
		return content, ActionNone, ErrNavigationShape
	}

	nav.Content = append(nav.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "icon"},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: icon})

	out, err := marshalBlock(&doc)
	if err != nil {
		return content, ActionNone, fmt.Errorf("serialize metadata block: %w", err)
	}
	return delimiter + "\n" + out + delimiter + "\n" + body, action, nil
}

// mappingRoot unwraps the parsed document down to its top-level mapping.
// Empty and null blocks (whitespace or comments only) become empty mappings
// so a navigation entry can still be added to them.
func mappingRoot(doc *yaml.Node) (*yaml.Node, error) {
	if doc.Kind == 0 {
		root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		doc.Kind = yaml.DocumentNode
		doc.Content = []*yaml.Node{root}
		return root, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, ErrNotMapping
	}
	root := doc.Content[0]
	switch {
	case root.Kind == yaml.MappingNode:
		return root, nil
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		root.Kind = yaml.MappingNode
		root.Tag = "!!map"
		root.Value = ""
		root.Style = 0
		return root, nil
	default:
		return nil, ErrNotMapping
	}
}

// hasIcon reports whether the mapping already declares an icon entry. With
// navOnly false, an icon key at the top level or inside any top-level mapping
// value counts; the short-circuit is deliberately not scoped to navigation.
func hasIcon(root *yaml.Node, navOnly bool) bool {
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if navOnly {
			if key.Value == "navigation" && val.Kind == yaml.MappingNode && findKey(val, "icon") != nil {
				return true
			}
			continue
		}
		if key.Value == "icon" {
			return true
		}
		if val.Kind == yaml.MappingNode && findKey(val, "icon") != nil {
			return true
		}
	}
	return false
}

// findKey returns the value node for key in a mapping, or nil.
func findKey(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func marshalBlock(doc *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
