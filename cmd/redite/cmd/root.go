package cmd

import (
	"github.com/camille/redite/internal/app"
	"github.com/spf13/cobra"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "redite",
	Short: "redite — repetition detector for French prose",
	Long:  "Builds a lemma dictionary from lexicon sources and flags repeated vocabulary in French text.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.redite, or $REDITE_HOME)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// resolveDataDir honors the --data-dir flag, then the defaults.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	return app.DataDir()
}
