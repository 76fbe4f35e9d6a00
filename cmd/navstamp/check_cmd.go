package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/navstamp/navstamp/internal/cli"
	"github.com/navstamp/navstamp/internal/config"
	"github.com/navstamp/navstamp/internal/logger"
	"github.com/navstamp/navstamp/internal/normalizer"
)

func checkCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify every file declares a navigation icon",
		Long:  "Runs the same walk as apply without writing anything. Exits non-zero when any file is missing an icon, so it can gate CI.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the check report as JSON")
	return cmd
}

func runCheck(jsonOut bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	vaultPath := config.VaultPath()
	if vaultPath == "" {
		return config.ErrNoVault
	}

	store := normalizer.NewDirStore(vaultPath)
	report, err := normalizer.NormalizeWithOptions(store, cfg, normalizer.Options{
		DryRun: true,
		Vault:  vaultPath,
		Log:    logger.NewWithLevel(os.Stderr, logLevel(false)),
	})
	if err != nil {
		return err
	}

	stats := report.Stats
	if jsonOut {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	} else {
		cli.Header("Icon Check")
		fmt.Println()
		for _, res := range report.Results {
			switch {
			case res.Error != "":
				fmt.Println(cli.FailLine(res.Path, res.Error))
			case res.Action.Mutated():
				fmt.Printf("  %s %s %s\n", cli.Warn("•"), res.Path, cli.Dim("missing icon, would get "+res.Icon))
			}
		}
		summary := fmt.Sprintf("%s files checked, %d missing icons, %d failed",
			cli.FormatNumber(stats.TotalFiles), stats.Changed(), stats.Failed)
		cli.Box([]string{summary})
		if stats.Changed() == 0 && stats.Failed == 0 {
			fmt.Printf("\n  %s\n", cli.Success("✓ vault is fully stamped"))
		} else if stats.Changed() > 0 {
			fmt.Printf("\n  Run %s to stamp the missing icons.\n", cli.Bold("navstamp apply"))
		}
		cli.Footer()
	}

	if stats.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", stats.Failed)
	}
	if stats.Changed() > 0 {
		return fmt.Errorf("%d file(s) missing navigation icons", stats.Changed())
	}
	return nil
}
