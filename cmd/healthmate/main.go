// HealthMate is a gentle terminal companion for people managing everyday
// health conditions: exercises, recipes and tips, by keyboard, mouse or
// voice.
//
// Usage:
//
//	healthmate [--config path] [--verbose|--quiet] [--no-speech] [--no-voice]
//	healthmate show <condition-id>
//	healthmate list
//	healthmate search <words...>
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	contentPath string
	logFile     string
	verbose     bool
	quiet       bool
	noSpeech    bool
	noVoice     bool
)

var rootCmd = &cobra.Command{
	Use:   "healthmate",
	Short: "Browse gentle exercises and healthy recipes for common conditions",
	Long: `HealthMate shows condition pages with exercise and recipe carousels.

Navigate with the arrow keys or by dragging a card with the mouse. Press v
to ask for a condition by voice, and s to have the current card read aloud.`,
	SilenceUsage: true,
	RunE:         runBrowse,
}

var showCmd = &cobra.Command{
	Use:   "show <condition-id>",
	Short: "Open the browser directly on one condition",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the condition catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var searchCmd = &cobra.Command{
	Use:   "search <words...>",
	Short: "Find the condition matching a health concern",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/healthmate/config.toml)")
	rootCmd.PersistentFlags().StringVar(&contentPath, "content", "", "condition catalog YAML (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "disable all logging")
	rootCmd.PersistentFlags().BoolVar(&noSpeech, "no-speech", false, "disable text-to-speech even if Azure keys are set")
	rootCmd.PersistentFlags().BoolVar(&noVoice, "no-voice", false, "disable voice input")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
