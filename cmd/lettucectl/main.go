// Lettucectl is a terminal client for the Lettuce Engine.
//
// It provides Engine discovery, an interactive TUI for managing AI
// character sessions, and direct commands for scripting against the
// Engine's REST API. All state lives on the Engine; this tool only
// stores local connection credentials and chat personas.
//
// Usage:
//
//	lettucectl [command] [flags]
//
// Running without arguments launches the interactive TUI.
// See 'lettucectl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lettucelabs/lettucectl/internal/logging"
	"github.com/lettucelabs/lettucectl/internal/tui"
	"github.com/lettucelabs/lettucectl/internal/version"
)

func main() {
	// Silent unless LETTUCECTL_LOG_LEVEL is set
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lettucectl",
	Short: "Lettuce Engine Terminal Client",
	Long: `A terminal client for the Lettuce Engine.

Provides Engine discovery, an interactive TUI for chatting with and
managing AI characters, and direct commands for scripting.

If no command is specified, the interactive TUI will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the TUI when no subcommand provided
		return runTUI(tui.ScreenHome)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lettucectl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
