package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/navstamp/navstamp/internal/cli"
	"github.com/navstamp/navstamp/internal/config"
	"github.com/navstamp/navstamp/internal/normalizer"
)

func doctorCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check setup health and diagnose issues",
		Long:  "Runs health checks on your navstamp setup: verifies the vault resolves, the config parses, and every file's frontmatter is readable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// DoctorResult represents a single health check result
type DoctorResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "pass", "skip", "fail"
	Message string `json:"message,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// DoctorReport represents the complete health check report
type DoctorReport struct {
	Checks  []DoctorResult `json:"checks"`
	Summary struct {
		Total   int `json:"total"`
		Passed  int `json:"passed"`
		Skipped int `json:"skipped"`
		Failed  int `json:"failed"`
	} `json:"summary"`
}

// sanitizeErrorForJSON removes potentially sensitive information from error messages
// SECURITY: Prevents leaking absolute file paths, hostnames, or other PII in JSON output
func sanitizeErrorForJSON(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "/") || strings.Contains(msg, "\\") {
		if idx := strings.LastIndex(msg, ":"); idx != -1 {
			return strings.TrimSpace(msg[idx+1:])
		}
		return "operation failed"
	}
	return msg
}

func runDoctor(jsonOut bool) error {
	passed := 0
	failed := 0
	skipped := 0
	var results []DoctorResult

	// Track vault availability so vault-dependent checks can skip gracefully
	// instead of cascading into confusing errors.
	vaultOK := false
	vaultPath := ""

	check := func(name string, hint string, fn func() (string, error)) {
		detail, err := fn()
		if err != nil {
			if jsonOut {
				results = append(results, DoctorResult{
					Name:    name,
					Status:  "fail",
					Message: sanitizeErrorForJSON(err),
					Hint:    hint,
				})
			} else {
				fmt.Printf("  %s %s: %s\n", cli.Fail("✗"), name, err)
				if hint != "" {
					fmt.Printf("    → %s\n", hint)
				}
			}
			failed++
		} else {
			if jsonOut {
				results = append(results, DoctorResult{
					Name:    name,
					Status:  "pass",
					Message: detail,
				})
			} else {
				if detail != "" {
					fmt.Printf("  %s %s (%s)\n", cli.Success("✓"), name, detail)
				} else {
					fmt.Printf("  %s %s\n", cli.Success("✓"), name)
				}
			}
			passed++
		}
	}

	// skip marks a check as skipped instead of failed.
	skip := func(name string, reason string) {
		if jsonOut {
			results = append(results, DoctorResult{
				Name:    name,
				Status:  "skip",
				Message: reason,
			})
		} else {
			fmt.Printf("  %s %s: %s\n", cli.Dim("-"), name, reason)
		}
		skipped++
	}

	if !jsonOut {
		cli.Header("navstamp Health Check")
		cli.Section("Setup")
	}

	// 1. Vault path
	check("Vault path", "run 'navstamp vault add <name> <path>' or set NAVSTAMP_VAULT", func() (string, error) {
		vp := config.VaultPath()
		if vp == "" {
			return "", config.ErrNoVault
		}
		info, err := os.Stat(vp)
		if err != nil {
			return "", fmt.Errorf("vault path not accessible (moved or deleted?)")
		}
		if !info.IsDir() {
			return "", fmt.Errorf("vault path is not a directory")
		}
		vaultOK = true
		vaultPath = vp
		return cli.ShortenHome(vp), nil
	})

	// 2. Config file
	var cfg *config.Config
	check("Config file", "fix the TOML syntax in .navstamp/config.toml", func() (string, error) {
		loaded, err := config.LoadConfig()
		if err != nil {
			return "", err
		}
		cfg = loaded
		if found := config.FindConfigFile(); found != "" {
			return cli.ShortenHome(found), nil
		}
		return "using built-in defaults", nil
	})

	// 3. Icon tables
	if cfg == nil {
		skip("Icon tables", "skipped (config failed to load)")
	} else {
		check("Icon tables", "run 'navstamp config init' to write a starter config", func() (string, error) {
			defaultIcon := cfg.Icons.Default
			if defaultIcon == "" {
				defaultIcon = config.DefaultIcon
			}
			return fmt.Sprintf("%d folder mappings, %d filename overrides, default %s",
				len(cfg.Icons.Folders), len(cfg.Icons.Files), defaultIcon), nil
		})
	}

	if !jsonOut {
		cli.Section("Vault")
	}

	// 4-6: Vault-dependent checks
	if !vaultOK || cfg == nil {
		skip("Vault scan", "skipped (vault or config not available)")
		skip("Frontmatter health", "skipped (vault or config not available)")
		skip("Data directory", "skipped (vault or config not available)")
	} else {
		store := normalizer.NewDirStore(vaultPath)

		check("Vault scan", "check directory permissions", func() (string, error) {
			files, err := store.List()
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s markdown files", cli.FormatNumber(len(files))), nil
		})

		check("Frontmatter health", "run 'navstamp apply --verbose' to see per-file errors", func() (string, error) {
			report, err := normalizer.NormalizeWithOptions(store, cfg, normalizer.Options{DryRun: true})
			if err != nil {
				return "", err
			}
			if report.Stats.Failed > 0 {
				return "", fmt.Errorf("%d file(s) have unreadable frontmatter", report.Stats.Failed)
			}
			if missing := report.Stats.Changed(); missing > 0 {
				return fmt.Sprintf("%d file(s) missing icons, run 'navstamp apply'", missing), nil
			}
			return "every file declares an icon", nil
		})

		check("Data directory", "check permissions, or set NAVSTAMP_DATA_DIR", func() (string, error) {
			dataDir := config.DataDir()
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return "", fmt.Errorf("cannot create")
			}
			probe := filepath.Join(dataDir, ".doctor_probe")
			if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
				return "", fmt.Errorf("not writable")
			}
			os.Remove(probe)
			return cli.ShortenHome(dataDir), nil
		})
	}

	// 7. Last run
	if !vaultOK {
		skip("Last run", "skipped (vault not available)")
	} else {
		summary := normalizer.LastRunSummary(config.ReportPath())
		if summary["status"] == "ok" {
			check("Last run", "", func() (string, error) {
				return fmt.Sprintf("changed %v of %v files at %v",
					summary["changed"], summary["total_files"], summary["timestamp"]), nil
			})
		} else {
			skip("Last run", "no saved run yet, run 'navstamp apply'")
		}
	}

	// 8. Registry
	reg := config.LoadRegistry()
	if len(reg.Vaults) == 0 {
		skip("Vault registry", "no vaults registered (auto-detect only)")
	} else {
		check("Vault registry", "", func() (string, error) {
			detail := fmt.Sprintf("%d vault(s) registered", len(reg.Vaults))
			if reg.Default != "" {
				detail += fmt.Sprintf(", default %q", reg.Default)
			}
			return detail, nil
		})
	}

	if jsonOut {
		report := DoctorReport{
			Checks: results,
		}
		report.Summary.Total = len(results)
		report.Summary.Passed = passed
		report.Summary.Skipped = skipped
		report.Summary.Failed = failed

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Println(string(data))

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	}

	summary := fmt.Sprintf("%d passed, %d failed", passed, failed)
	if skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", skipped)
	}
	lines := []string{summary}
	if !vaultOK {
		lines = append(lines, "Vault not found. Run 'navstamp vault add <name> <path>' or set NAVSTAMP_VAULT.")
	}
	if failed > 0 {
		lines = append(lines, "Still stuck? Report a bug: https://github.com/navstamp/navstamp/issues")
	}
	cli.Box(lines)

	cli.Footer()

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}
