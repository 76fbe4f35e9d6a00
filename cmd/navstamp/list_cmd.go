package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navstamp/navstamp/internal/cli"
	"github.com/navstamp/navstamp/internal/config"
	"github.com/navstamp/navstamp/internal/frontmatter"
	"github.com/navstamp/navstamp/internal/markdown"
	"github.com/navstamp/navstamp/internal/normalizer"
)

// listEntry extends the engine's entry with a display title for output.
type listEntry struct {
	normalizer.ListEntry
	Title string `json:"title,omitempty"`
}

func listCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vault files with their resolved icons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runList(jsonOut bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	vaultPath := config.VaultPath()
	if vaultPath == "" {
		return config.ErrNoVault
	}

	store := normalizer.NewDirStore(vaultPath)
	entries, err := normalizer.List(store, cfg)
	if err != nil {
		return err
	}

	rows := make([]listEntry, 0, len(entries))
	for _, e := range entries {
		row := listEntry{ListEntry: e}
		if data, err := store.Read(e.Path); err == nil {
			meta, body := frontmatter.ParseMeta(string(data))
			row.Title = markdown.DisplayTitle(meta.Title, body, e.Path)
		}
		rows = append(rows, row)
	}

	if jsonOut {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	stamped := 0
	for _, row := range rows {
		marker := cli.Warn("•")
		switch row.Status {
		case normalizer.StatusOK:
			marker = cli.Success("✓")
			stamped++
		case normalizer.StatusError:
			marker = cli.Fail("✗")
		}
		fmt.Printf("  %s %-40s %-24s %-8s %-14s %s\n",
			marker, row.Path, row.Icon, row.Source, row.Status, cli.Dim(row.Title))
	}
	fmt.Printf("\n  %s files, %d stamped, %d missing\n",
		cli.FormatNumber(len(rows)), stamped, len(rows)-stamped)
	return nil
}
