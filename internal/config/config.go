// Package config provides configuration for the navstamp binary.
// Loads from: CLI flags > env vars > .navstamp/config.toml > built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultIcon is the fallback icon for files with no override and no folder mapping.
const DefaultIcon = "i-lucide-file"

// Recognized icon_scope values. "any" treats an icon key anywhere in the
// metadata block as already configured; "navigation" only honors
// navigation.icon.
const (
	IconScopeAny        = "any"
	IconScopeNavigation = "navigation"
)

// Config holds all navstamp configuration, loaded from TOML + env + flags.
type Config struct {
	Vault VaultConfig `toml:"vault"`
	Icons IconsConfig `toml:"icons"`
	Apply ApplyConfig `toml:"apply"`
}

// VaultConfig holds vault-related settings.
type VaultConfig struct {
	Path     string   `toml:"path"`
	SkipDirs []string `toml:"skip_dirs"`
}

// IconsConfig holds the icon resolution tables. Folders is keyed by the first
// path segment under the vault root; Files is keyed by exact filename and
// takes precedence over Folders.
type IconsConfig struct {
	Default string            `toml:"default"`
	Folders map[string]string `toml:"folders"`
	Files   map[string]string `toml:"files"`
}

// ApplyConfig controls how the normalizer amends metadata blocks.
type ApplyConfig struct {
	CreateNavigation bool   `toml:"create_navigation"`
	IconScope        string `toml:"icon_scope"` // "any" (default) or "navigation"
}

// NormalizedIconScope returns the effective icon_scope policy. Unknown values
// fall back to "any", the conservative policy (it mutates the fewest files).
func (a ApplyConfig) NormalizedIconScope() string {
	switch strings.ToLower(strings.TrimSpace(a.IconScope)) {
	case "", "any", "all":
		return IconScopeAny
	case "navigation", "nav":
		return IconScopeNavigation
	default:
		return IconScopeAny
	}
}

// DefaultConfig returns a Config with all built-in defaults. The icon tables
// carry the mapping the vault shipped with; config file entries merge over
// them per key.
func DefaultConfig() *Config {
	return &Config{
		Icons: IconsConfig{
			Default: DefaultIcon,
			Folders: map[string]string{
				"Blog":      "i-lucide-scroll",
				"Project":   "i-lucide-box",
				"Research":  "i-lucide-microscope",
				"Templates": "i-lucide-layout-template",
				"Bases":     "i-lucide-database",
			},
			Files: map[string]string{
				"About.md":    "i-lucide-user",
				"Colophon.md": "i-lucide-info",
				"Home.md":     "i-lucide-home",
				"TODO.md":     "i-lucide-check-square",
				"README.md":   "i-lucide-book",
				"AGENTS.md":   "i-lucide-bot",
			},
		},
		Apply: ApplyConfig{
			CreateNavigation: true,
			IconScope:        IconScopeAny,
		},
	}
}

// LoadConfig merges all configuration sources: defaults < TOML file < env vars.
// CLI flags (VaultOverride) are handled separately by the VaultPath() logic.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	configPath := findConfigFile()
	if configPath != "" {
		meta, err := toml.DecodeFile(configPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
		warnUnknownKeys(meta, configPath)
	}

	applyEnvOverrides(cfg)

	// Apply TOML skip_dirs to the global SkipDirs map.
	if len(cfg.Vault.SkipDirs) > 0 {
		RebuildSkipDirs(cfg.Vault.SkipDirs)
	}

	return cfg, nil
}

// LoadConfigFrom loads configuration from a specific file path, merging with
// defaults and env vars. Use this instead of LoadConfig() when you know
// exactly which config file to load (e.g., right after 'config init' writes one).
func LoadConfigFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			meta, err := toml.DecodeFile(configPath, cfg)
			if err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
			warnUnknownKeys(meta, configPath)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides layers environment variables over TOML values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NAVSTAMP_VAULT"); v != "" {
		cfg.Vault.Path = v
	}
	if v := os.Getenv("NAVSTAMP_DEFAULT_ICON"); v != "" {
		cfg.Icons.Default = v
	}
	if v := os.Getenv("NAVSTAMP_ICON_SCOPE"); v != "" {
		cfg.Apply.IconScope = v
	}
	if v := os.Getenv("NAVSTAMP_SKIP_DIRS"); v != "" {
		for _, d := range strings.Split(v, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				cfg.Vault.SkipDirs = append(cfg.Vault.SkipDirs, d)
			}
		}
	}
}

// findConfigFile looks for .navstamp/config.toml starting from vault path, then CWD.
func findConfigFile() string {
	// Check vault path first (if already resolved)
	if vp := resolveVaultForConfig(); vp != "" {
		p := filepath.Join(vp, ".navstamp", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	// Check CWD
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, ".navstamp", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// resolveVaultForConfig resolves the vault path for config loading without
// calling VaultPath() to avoid circular dependency with config loading.
func resolveVaultForConfig() string {
	if VaultOverride != "" {
		reg := LoadRegistry()
		if resolved := reg.ResolveVault(VaultOverride); resolved != "" {
			return resolved
		}
		return VaultOverride
	}
	if v := os.Getenv("NAVSTAMP_VAULT"); v != "" {
		return v
	}
	return ""
}

// ConfigFilePath returns the path where the config file should be written
// for the given vault path.
func ConfigFilePath(vaultPath string) string {
	return filepath.Join(vaultPath, ".navstamp", "config.toml")
}

// GenerateConfig writes a default .navstamp/config.toml with comments.
// If vaultPath is provided, it's included in the generated config.
func GenerateConfig(vaultPath string) error {
	configPath := ConfigFilePath(vaultPath)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	content := generateTOMLContent(vaultPath)
	return os.WriteFile(configPath, []byte(content), 0o600)
}

func generateTOMLContent(vaultPath string) string {
	var b strings.Builder
	b.WriteString("# navstamp configuration\n")
	b.WriteString("# https://github.com/navstamp/navstamp\n")
	b.WriteString("#\n")
	b.WriteString("# Priority: CLI flags > environment variables > this file > built-in defaults\n")
	b.WriteString("# Environment variables: NAVSTAMP_VAULT, NAVSTAMP_DEFAULT_ICON,\n")
	b.WriteString("#   NAVSTAMP_ICON_SCOPE, NAVSTAMP_SKIP_DIRS, NAVSTAMP_DATA_DIR,\n")
	b.WriteString("#   NAVSTAMP_LOG_LEVEL\n\n")

	b.WriteString("[vault]\n")
	if vaultPath != "" {
		b.WriteString(fmt.Sprintf("path = %q\n", vaultPath))
	} else {
		b.WriteString("# path = \"/path/to/your/vault\"  # auto-detected if unset\n")
	}
	b.WriteString("# skip_dirs = [\"drafts\", \"attachments\"]  # added to built-in exclusions\n\n")

	b.WriteString("[icons]\n")
	b.WriteString(fmt.Sprintf("default = %q\n\n", DefaultIcon))

	b.WriteString("# Folder name (first path segment under the vault root) to icon.\n")
	b.WriteString("# Entries here merge over the built-in table.\n")
	b.WriteString("[icons.folders]\n")
	b.WriteString("Blog = \"i-lucide-scroll\"\n")
	b.WriteString("Project = \"i-lucide-box\"\n")
	b.WriteString("Research = \"i-lucide-microscope\"\n")
	b.WriteString("Templates = \"i-lucide-layout-template\"\n")
	b.WriteString("Bases = \"i-lucide-database\"\n\n")

	b.WriteString("# Exact filename to icon. Takes precedence over folder mapping.\n")
	b.WriteString("[icons.files]\n")
	b.WriteString("\"About.md\" = \"i-lucide-user\"\n")
	b.WriteString("\"Colophon.md\" = \"i-lucide-info\"\n")
	b.WriteString("\"Home.md\" = \"i-lucide-home\"\n")
	b.WriteString("\"TODO.md\" = \"i-lucide-check-square\"\n")
	b.WriteString("\"README.md\" = \"i-lucide-book\"\n")
	b.WriteString("\"AGENTS.md\" = \"i-lucide-bot\"\n\n")

	b.WriteString("[apply]\n")
	b.WriteString("# Create a navigation block in files whose metadata has none.\n")
	b.WriteString("create_navigation = true\n")
	b.WriteString("# \"any\": an icon key anywhere in the metadata counts as configured.\n")
	b.WriteString("# \"navigation\": only navigation.icon counts.\n")
	b.WriteString("icon_scope = \"any\"\n")

	return b.String()
}

// ShowConfig returns the current effective configuration as TOML.
func ShowConfig() string {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Sprintf("# Error loading config: %v\n", err)
	}

	// Fill in the effective vault path if not explicitly set
	if cfg.Vault.Path == "" {
		cfg.Vault.Path = VaultPath()
	}

	var b strings.Builder
	b.WriteString("# Effective navstamp configuration (merged from all sources)\n\n")
	enc := toml.NewEncoder(&b)
	enc.Encode(cfg)
	return b.String()
}

// loadConfigSafe loads config without risking recursion. Returns nil on error.
func loadConfigSafe() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		return nil
	}
	return cfg
}

// FindConfigFile returns the path to the active config file, or empty string if none found.
func FindConfigFile() string {
	return findConfigFile()
}

// configSuggestions maps common wrong keys to the correct TOML key name.
var configSuggestions = map[string]string{
	"exclude_paths": "skip_dirs",
	"exclude_dirs":  "skip_dirs",
	"skip_paths":    "skip_dirs",
	"ignored_dirs":  "skip_dirs",
	"ignore_dirs":   "skip_dirs",
	"excludes":      "skip_dirs",
	"default_icon":  "default",
	"fallback":      "default",
	"fallback_icon": "default",
	"folder":        "folders",
	"mapping":       "folders",
	"map":           "folders",
	"file":          "files",
	"overrides":     "files",
	"scope":         "icon_scope",
	"create_nav":    "create_navigation",
	"add_missing":   "create_navigation",
}

// warnUnknownKeys prints warnings for unrecognized config keys.
func warnUnknownKeys(meta toml.MetaData, configPath string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}

	fname := filepath.Base(configPath)
	for _, key := range undecoded {
		keyStr := key.String()
		lastPart := key[len(key)-1]

		if suggestion, ok := configSuggestions[lastPart]; ok {
			fmt.Fprintf(os.Stderr, "navstamp: WARNING: unknown key %q in %s — did you mean %q?\n",
				keyStr, fname, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "navstamp: WARNING: unknown key %q in %s (will be ignored)\n",
				keyStr, fname)
		}
	}
}

// defaultSkipDirs are directories to skip during vault walks.
var defaultSkipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".obsidian":    true,
	".logseq":      true,
	".navstamp":    true,
	".trash":       true,
}

// SkipDirs is the set of directories to skip during vault walks.
var SkipDirs = buildSkipDirs()

func buildSkipDirs() map[string]bool {
	dirs := make(map[string]bool)
	for k, v := range defaultSkipDirs {
		dirs[k] = v
	}
	if extra := os.Getenv("NAVSTAMP_SKIP_DIRS"); extra != "" {
		for _, d := range strings.Split(extra, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				dirs[d] = true
			}
		}
	}
	return dirs
}

// RebuildSkipDirs rebuilds the SkipDirs map, incorporating config file settings.
// Should be called after config is loaded if skip_dirs is set in TOML.
func RebuildSkipDirs(extra []string) {
	dirs := make(map[string]bool)
	for k, v := range defaultSkipDirs {
		dirs[k] = v
	}
	if envExtra := os.Getenv("NAVSTAMP_SKIP_DIRS"); envExtra != "" {
		for _, d := range strings.Split(envExtra, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				dirs[d] = true
			}
		}
	}
	for _, d := range extra {
		d = strings.TrimSpace(d)
		if d != "" {
			dirs[d] = true
		}
	}
	SkipDirs = dirs
}

// VaultOverride is set by the --vault global flag.
var VaultOverride string

// VaultMarkers are dotfiles/directories that indicate a vault root.
// Checked in priority order: navstamp's own marker first, then common tools.
var VaultMarkers = []string{".navstamp", ".obsidian", ".logseq", ".foam", ".dendron"}

// VaultPath returns the vault root directory.
// SECURITY: Validates the path is a reasonable vault root (not / or other
// dangerous top-level paths that would cause the walker to rewrite files
// across the entire filesystem).
func VaultPath() string {
	var path string
	// CLI flag should always have highest priority.
	if VaultOverride != "" {
		reg := LoadRegistry()
		if resolved := reg.ResolveVault(VaultOverride); resolved != "" {
			path = resolved
		} else {
			path = VaultOverride
		}
	} else if v := os.Getenv("NAVSTAMP_VAULT"); v != "" {
		path = v
	} else if cfg := loadConfigSafe(); cfg != nil && cfg.Vault.Path != "" {
		path = cfg.Vault.Path
	} else {
		path = defaultVaultPath()
	}
	if path != "" {
		path = validateVaultPath(path)
	}
	return path
}

func defaultVaultPath() string {
	// Auto-detect: check CWD for any known marker (before registry default)
	if cwd, err := os.Getwd(); err == nil {
		for _, marker := range VaultMarkers {
			if _, err := os.Stat(filepath.Join(cwd, marker)); err == nil {
				return cwd
			}
		}
	}

	// Check registry default
	reg := LoadRegistry()
	if reg.Default != "" {
		if p, ok := reg.Vaults[reg.Default]; ok {
			return p
		}
	}

	// Walk up from CWD looking for any marker
	if cwd, err := os.Getwd(); err == nil {
		dir := filepath.Dir(cwd)
		for i := 0; i < 5; i++ {
			for _, marker := range VaultMarkers {
				if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
					return dir
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// No vault found — return empty string (caller should show helpful error)
	return ""
}

// validateVaultPath rejects vault paths that are too broad (e.g., /, /home, /Users)
// and resolves symlinks to prevent symlink-based escapes.
func validateVaultPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	// Block filesystem roots and shallow system directories.
	// On Windows, also block drive roots (C:\) and system directories.
	dangerous := []string{"/", "/home", "/Users", "/tmp", "/var", "/etc", "/opt"}
	if runtime.GOOS == "windows" && len(abs) >= 3 {
		for _, letter := range "ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
			dangerous = append(dangerous, string(letter)+":\\")
		}
		driveRoot := abs[:3] // e.g. "C:\"
		dangerous = append(dangerous, filepath.Join(driveRoot, "Users"), filepath.Join(driveRoot, "Windows"))
	}
	for _, d := range dangerous {
		if abs == d {
			fmt.Fprintf(os.Stderr, "WARNING: vault path %q is too broad, ignoring.\n", abs)
			return ""
		}
	}

	// SECURITY: resolve symlinks and re-check the real path against dangerous roots.
	// A symlink could point vault operations at /, /home, etc.
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Path may not exist yet (e.g., before vault add); skip symlink check
		return path
	}
	for _, d := range dangerous {
		if resolved == d {
			fmt.Fprintf(os.Stderr, "WARNING: vault path %q resolves to %q which is too broad, ignoring.\n", abs, resolved)
			return ""
		}
		// Also resolve the dangerous path itself through symlinks (e.g., on macOS
		// /tmp -> /private/tmp) so we catch indirect matches.
		if resolvedDangerous, err := filepath.EvalSymlinks(d); err == nil {
			if resolved == resolvedDangerous {
				fmt.Fprintf(os.Stderr, "WARNING: vault path %q resolves to %q which is too broad, ignoring.\n", abs, resolved)
				return ""
			}
		}
	}
	return path
}

// Sentinel errors for consistent messaging across commands.
var (
	// ErrNoVault is returned when no vault path can be resolved.
	ErrNoVault = fmt.Errorf("no vault found — run 'navstamp vault add <name> <path>' or set NAVSTAMP_VAULT")
)

// DataDir returns the data directory for the navstamp binary.
// SECURITY: Validates NAVSTAMP_DATA_DIR is an existing, writable directory.
func DataDir() string {
	if v := os.Getenv("NAVSTAMP_DATA_DIR"); v != "" {
		return validateDataDir(v)
	}
	return filepath.Join(VaultPath(), ".navstamp")
}

// ReportPath returns the path where the last apply report is saved.
func ReportPath() string {
	return filepath.Join(DataDir(), "last_run.json")
}

// validateDataDir checks that the given path is a valid directory (or can be
// created). Falls back to the default data dir if the path is invalid.
func validateDataDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: NAVSTAMP_DATA_DIR=%q is not a valid path, using default.\n", dir)
		return filepath.Join(VaultPath(), ".navstamp")
	}

	info, err := os.Stat(abs)
	if err == nil {
		// Path exists — must be a directory
		if !info.IsDir() {
			fmt.Fprintf(os.Stderr, "WARNING: NAVSTAMP_DATA_DIR=%q is not a directory, using default.\n", abs)
			return filepath.Join(VaultPath(), ".navstamp")
		}
		// Check writable by attempting to create a temp file
		testFile := filepath.Join(abs, ".navstamp_write_test")
		if f, err := os.Create(testFile); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: NAVSTAMP_DATA_DIR=%q is not writable, using default.\n", abs)
			return filepath.Join(VaultPath(), ".navstamp")
		} else {
			f.Close()
			os.Remove(testFile)
		}
		return abs
	}

	// Path doesn't exist — try to create it
	if err := os.MkdirAll(abs, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: NAVSTAMP_DATA_DIR=%q cannot be created (%v), using default.\n", abs, err)
		return filepath.Join(VaultPath(), ".navstamp")
	}
	return abs
}
