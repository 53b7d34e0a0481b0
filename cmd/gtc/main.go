package main

import (
	"os"

	"github.com/spf13/cobra"

	"gradualtype/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gtc",
	Short: "Gradual type checker expression evaluator",
	Long:  `gtc drives the expression type evaluator end to end against *.gtcexpr fixtures.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
