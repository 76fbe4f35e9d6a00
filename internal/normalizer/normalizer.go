// Package normalizer walks a vault and ensures every markdown file
// declares a navigation icon in its frontmatter.
package normalizer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/navstamp/navstamp/internal/config"
	"github.com/navstamp/navstamp/internal/frontmatter"
	"github.com/navstamp/navstamp/internal/logger"
)

// Version is set by cmd/navstamp to record which navstamp version
// performed the run.
var Version string

// Stats holds normalize run statistics.
type Stats struct {
	TotalFiles         int      `json:"total_files"`
	FrontmatterCreated int      `json:"frontmatter_created"`
	IconsAdded         int      `json:"icons_added"`
	NavigationCreated  int      `json:"navigation_created"`
	AlreadyConfigured  int      `json:"already_configured"`
	Failed             int      `json:"failed"`
	FailedPaths        []string `json:"failed_paths,omitempty"`
	DryRun             bool     `json:"dry_run"`
	RunID              string   `json:"run_id"`
	Version            string   `json:"version,omitempty"`
	Timestamp          string   `json:"timestamp"`
	DurationMs         int64    `json:"duration_ms"`
}

// Changed returns the number of files a run modified (or would modify,
// for a dry run).
func (s *Stats) Changed() int {
	return s.FrontmatterCreated + s.IconsAdded + s.NavigationCreated
}

// Result records the outcome for a single file.
type Result struct {
	Path   string             `json:"path"`
	Action frontmatter.Action `json:"action"`
	Icon   string             `json:"icon,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// Report pairs run statistics with per-file outcomes.
type Report struct {
	Stats   Stats    `json:"stats"`
	Results []Result `json:"results"`
}

// ProgressFunc is called after each file is processed. current is the
// number of files processed so far, total is the total count, and path
// is the file just processed.
type ProgressFunc func(current, total int, path string)

// Options adjusts a normalize run.
type Options struct {
	// DryRun resolves and classifies every file without writing anything.
	DryRun bool
	// Vault is the vault path, used for logging only.
	Vault string
	// ReportPath, when set, is where the run report is saved. Dry runs
	// never save a report.
	ReportPath string
	Progress   ProgressFunc
	Log        *logger.Logger
}

// Normalize walks the store and stamps icons with default options.
func Normalize(store FileStore, cfg *config.Config) (*Report, error) {
	return NormalizeWithOptions(store, cfg, Options{})
}

// NormalizeWithOptions walks every markdown file in the store, resolves
// its icon, and rewrites its frontmatter when the icon is missing. A
// failure on one file is recorded and does not stop the run.
func NormalizeWithOptions(store FileStore, cfg *config.Config, opts Options) (*Report, error) {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}

	start := time.Now()
	files, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("list vault files: %w", err)
	}
	log.RunStarted(opts.Vault, len(files), opts.DryRun)

	resolver := NewResolver(cfg)
	policy := policyFromConfig(cfg)

	report := &Report{
		Stats: Stats{
			TotalFiles: len(files),
			DryRun:     opts.DryRun,
			RunID:      uuid.New().String(),
			Version:    Version,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		},
	}

	for i, relPath := range files {
		res := processFile(store, resolver, policy, relPath, opts.DryRun)
		report.Results = append(report.Results, res)
		report.Stats.record(res)

		switch {
		case res.Error != "":
			log.FileFailed(relPath, fmt.Errorf("%s", res.Error))
		case res.Action.Mutated():
			log.FileChanged(relPath, string(res.Action), res.Icon)
		default:
			log.Skipped(relPath, "already configured")
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(files), relPath)
		}
	}

	report.Stats.DurationMs = time.Since(start).Milliseconds()

	if opts.ReportPath != "" && !opts.DryRun {
		saveReport(report, opts.ReportPath)
		log.ReportSaved(opts.ReportPath)
	}

	log.RunCompleted(report.Stats.Changed(), report.Stats.AlreadyConfigured, report.Stats.Failed, time.Since(start))
	return report, nil
}

func policyFromConfig(cfg *config.Config) frontmatter.Policy {
	return frontmatter.Policy{
		CreateNavigation:    cfg.Apply.CreateNavigation,
		NavigationScopeOnly: cfg.Apply.NormalizedIconScope() == config.IconScopeNavigation,
	}
}

func processFile(store FileStore, resolver *Resolver, policy frontmatter.Policy, relPath string, dryRun bool) Result {
	res := Result{Path: relPath, Action: frontmatter.ActionNone}

	data, err := store.Read(relPath)
	if err != nil {
		res.Error = fmt.Sprintf("read: %v", err)
		return res
	}
	if !utf8.Valid(data) {
		res.Error = "not valid UTF-8"
		return res
	}

	res.Icon = resolver.Resolve(relPath)
	updated, action, err := frontmatter.Apply(string(data), res.Icon, policy)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Action = action

	if action.Mutated() && !dryRun {
		if err := store.Write(relPath, []byte(updated)); err != nil {
			res.Error = fmt.Sprintf("write: %v", err)
		}
	}
	return res
}

func (s *Stats) record(res Result) {
	if res.Error != "" {
		s.Failed++
		s.FailedPaths = append(s.FailedPaths, res.Path)
		return
	}
	switch res.Action {
	case frontmatter.ActionCreatedBlock:
		s.FrontmatterCreated++
	case frontmatter.ActionAddedIcon:
		s.IconsAdded++
	case frontmatter.ActionCreatedNavigation:
		s.NavigationCreated++
	default:
		s.AlreadyConfigured++
	}
}

// List statuses classify a file's frontmatter state.
const (
	StatusOK            = "ok"
	StatusMissing       = "missing"
	StatusNoFrontmatter = "no-frontmatter"
	StatusError         = "error"
)

// ListEntry describes one file and the icon a run would give it.
type ListEntry struct {
	Path   string `json:"path"`
	Icon   string `json:"icon"`
	Source string `json:"source"`
	Status string `json:"status"`
}

// List enumerates markdown files with their resolved icons without
// modifying anything. Status reports what an apply run would do with
// the file: leave it alone, stamp an existing block, synthesize a
// block, or fail.
func List(store FileStore, cfg *config.Config) ([]ListEntry, error) {
	files, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("list vault files: %w", err)
	}

	resolver := NewResolver(cfg)
	policy := policyFromConfig(cfg)

	entries := make([]ListEntry, 0, len(files))
	for _, relPath := range files {
		icon, source := resolver.ResolveSource(relPath)
		entry := ListEntry{Path: relPath, Icon: icon, Source: source, Status: StatusError}
		if data, err := store.Read(relPath); err == nil && utf8.Valid(data) {
			_, action, applyErr := frontmatter.Apply(string(data), icon, policy)
			switch {
			case applyErr != nil:
				entry.Status = StatusError
			case action == frontmatter.ActionNone:
				entry.Status = StatusOK
			case action == frontmatter.ActionCreatedBlock:
				entry.Status = StatusNoFrontmatter
			default:
				entry.Status = StatusMissing
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func saveReport(report *Report, path string) {
	os.MkdirAll(filepath.Dir(path), 0o755)
	data, _ := json.MarshalIndent(report, "", "  ")
	os.WriteFile(path, data, 0o644)
}

// LastRunSummary reads the report saved by the most recent apply run and
// returns a flat summary for diagnostics.
func LastRunSummary(path string) map[string]interface{} {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]interface{}{
			"status": "no saved run",
			"hint":   "run 'navstamp apply' first",
		}
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return map[string]interface{}{
			"status": "unreadable report",
			"error":  err.Error(),
		}
	}

	result := map[string]interface{}{
		"status":      "ok",
		"run_id":      report.Stats.RunID,
		"timestamp":   report.Stats.Timestamp,
		"total_files": report.Stats.TotalFiles,
		"changed":     report.Stats.Changed(),
		"failed":      report.Stats.Failed,
	}
	if report.Stats.Version != "" {
		result["version"] = report.Stats.Version
	}
	return result
}
