package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/navstamp/navstamp/internal/cli"
	"github.com/navstamp/navstamp/internal/config"
	"github.com/navstamp/navstamp/internal/logger"
	"github.com/navstamp/navstamp/internal/normalizer"
)

func applyCmd() *cobra.Command {
	var dryRun, jsonOut, verbose bool
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Stamp navigation icons into vault frontmatter",
		Long:  "Walks the vault and inserts navigation.icon into every markdown file that lacks one. Icons come from the folder mapping, exact filename overrides, and the default icon.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(dryRun, jsonOut, verbose)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the run report as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every file decision")
	return cmd
}

func runApply(dryRun, jsonOut, verbose bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	vaultPath := config.VaultPath()
	if vaultPath == "" {
		return config.ErrNoVault
	}

	lg := logger.NewWithLevel(os.Stderr, logLevel(verbose))
	lg.ConfigLoaded(vaultPath, config.FindConfigFile())

	store := normalizer.NewDirStore(vaultPath)
	report, err := normalizer.NormalizeWithOptions(store, cfg, normalizer.Options{
		DryRun:     dryRun,
		Vault:      vaultPath,
		ReportPath: config.ReportPath(),
		Log:        lg,
	})
	if err != nil {
		return err
	}

	if jsonOut {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printApplyReport(report, dryRun)
	}

	if report.Stats.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", report.Stats.Failed)
	}
	return nil
}

func printApplyReport(report *normalizer.Report, dryRun bool) {
	if dryRun {
		fmt.Println(cli.Warn("Dry run: no files were modified."))
		fmt.Println()
	}

	for _, res := range report.Results {
		switch {
		case res.Error != "":
			fmt.Println(cli.FailLine(res.Path, res.Error))
		case res.Action.Mutated():
			fmt.Println(cli.ChangeLine(res.Path, string(res.Action), res.Icon))
		}
	}

	stats := report.Stats
	fmt.Println()
	fmt.Printf("  %-22s %s\n", "Files scanned:", cli.FormatNumber(stats.TotalFiles))
	if stats.FrontmatterCreated > 0 {
		fmt.Printf("  %-22s %d\n", "Frontmatter created:", stats.FrontmatterCreated)
	}
	if stats.IconsAdded > 0 {
		fmt.Printf("  %-22s %d\n", "Icons added:", stats.IconsAdded)
	}
	if stats.NavigationCreated > 0 {
		fmt.Printf("  %-22s %d\n", "Navigation created:", stats.NavigationCreated)
	}
	fmt.Printf("  %-22s %d\n", "Already configured:", stats.AlreadyConfigured)
	if stats.Failed > 0 {
		fmt.Printf("  %-22s %s\n", "Failed:", cli.Fail(fmt.Sprintf("%d", stats.Failed)))
	}

	if stats.Changed() == 0 && stats.Failed == 0 {
		fmt.Printf("\n  %s\n", cli.Success("✓ every file already declares a navigation icon"))
	}
}

// logLevel picks the log level from --verbose and NAVSTAMP_LOG_LEVEL.
func logLevel(verbose bool) log.Level {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	if v := os.Getenv("NAVSTAMP_LOG_LEVEL"); v != "" {
		if parsed, err := log.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	return level
}
