package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lumilearn/lumi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lumi",
	Short: "AI study companion in your terminal",
	Long:  "Lumi is a study companion for your terminal. Paste anything you want to learn and get a personal tutor, quiz, and notes tailored to how you learn best.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LUMI_DB env var)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LUMI_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
