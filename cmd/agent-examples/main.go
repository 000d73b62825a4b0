package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "agent-examples",
	Short: "Agent workflow examples",
	Long: `agent-examples runs the example agent workflows from the command line:
a daily horoscope lookup and a multi-model research workflow.

Model credentials come from the environment: OPENAI_API_KEY and
ANTHROPIC_API_KEY, with optional OPENAI_API_BASE_URL and
ANTHROPIC_API_BASE_URL overrides.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(horoscopeCmd)
	rootCmd.AddCommand(researchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
