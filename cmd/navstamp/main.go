// Package main is the entrypoint for the navstamp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/navstamp/navstamp/internal/config"
	"github.com/navstamp/navstamp/internal/normalizer"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	_ = godotenv.Load()
	normalizer.Version = Version

	root := &cobra.Command{
		Use:   "navstamp",
		Short: "Navigation icon normalizer for markdown vaults",
		Long:  "navstamp walks a markdown vault and stamps a navigation icon into every file's frontmatter. Files that already declare an icon are never touched.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(applyCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(listCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(vaultCmd())
	root.AddCommand(configCmd())
	root.AddCommand(versionCmd())
	root.AddCommand(completionCmd())

	// Global --vault flag
	root.PersistentFlags().StringVar(&config.VaultOverride, "vault", "", "Vault name or path (overrides auto-detect)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the navstamp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("navstamp %s\n", Version)
		},
	}
}

type navstampError struct {
	message string
	hint    string
}

func (e *navstampError) Error() string {
	return fmt.Sprintf("%s\n  Hint: %s", e.message, e.hint)
}

func userError(message, hint string) error {
	return &navstampError{message: message, hint: hint}
}
