package normalizer

import (
	"path"
	"strings"

	"github.com/navstamp/navstamp/internal/config"
)

// Icon sources reported by ResolveSource.
const (
	SourceFile    = "file"
	SourceFolder  = "folder"
	SourceDefault = "default"
)

// Resolver maps a vault-relative markdown path to its navigation icon.
// Exact filename overrides win over folder mappings, which win over the
// default icon.
type Resolver struct {
	defaultIcon string
	folders     map[string]string
	files       map[string]string
}

// NewResolver builds a resolver from the icon tables in cfg.
func NewResolver(cfg *config.Config) *Resolver {
	r := &Resolver{
		defaultIcon: cfg.Icons.Default,
		folders:     cfg.Icons.Folders,
		files:       cfg.Icons.Files,
	}
	if r.defaultIcon == "" {
		r.defaultIcon = config.DefaultIcon
	}
	return r
}

// Resolve returns the icon for a vault-relative path.
func (r *Resolver) Resolve(relPath string) string {
	icon, _ := r.ResolveSource(relPath)
	return icon
}

// ResolveSource returns the icon for a vault-relative path along with the
// rule that produced it: an exact filename override, the top-level folder
// mapping, or the default.
func (r *Resolver) ResolveSource(relPath string) (string, string) {
	rel := normalizeRel(relPath)
	if icon, ok := r.files[path.Base(rel)]; ok {
		return icon, SourceFile
	}
	if folder := TopFolder(rel); folder != "" {
		if icon, ok := r.folders[folder]; ok {
			return icon, SourceFolder
		}
	}
	return r.defaultIcon, SourceDefault
}

// TopFolder returns the first path segment of a vault-relative path, or
// "" for files at the vault root.
func TopFolder(relPath string) string {
	rel := normalizeRel(relPath)
	idx := strings.IndexByte(rel, '/')
	if idx < 0 {
		return ""
	}
	return rel[:idx]
}

func normalizeRel(relPath string) string {
	return strings.TrimPrefix(relPath, "./")
}
