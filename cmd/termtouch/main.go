// Package main implements termtouch, a touch-driven terminal widget.
// The default command runs an interactive demo where the mouse plays the
// finger; replay drives the same widget headlessly from a .tape script.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	configFile string
	themeName  string
)

func main() {
	var recordPath string

	rootCmd := &cobra.Command{
		Use:   "termtouch",
		Short: "Touch gestures for a terminal widget",
		Long: `termtouch - touch gestures for a terminal widget

Drives a terminal grid with touch semantics: tap to open the on-screen
keyboard, hold to select a word, drag to scroll with inertia and swipe
through history and completions. The mouse stands in for a finger.`,
		Example: `  # Run the interactive demo
  termtouch

  # Record the demo session as a tape
  termtouch --record session.tape

  # Replay a tape headlessly
  termtouch replay session.tape

  # List the gestures
  termtouch gestures`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), recordPath)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to the config file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme, overriding appearance.theme")
	rootCmd.Flags().StringVar(&recordPath, "record", "", "Write the session to a .tape file on exit")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive demo (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), recordPath)
		},
	}
	demoCmd.Flags().StringVar(&recordPath, "record", "", "Write the session to a .tape file on exit")

	// Replay command
	var outputPath string
	var verbose bool

	replayCmd := &cobra.Command{
		Use:   "replay <file.tape>",
		Short: "Replay a tape script headlessly",
		Long: `Replay a tape script against a headless widget

Time is virtual: Sleep and Tick advance a 60 FPS clock, so a script
produces the same transcript on every run. Print commands write the
grid to stdout, or to the file named by --output or an Output command.`,
		Example: `  # Replay and print snapshots
  termtouch replay demo.tape

  # Echo every command as it runs
  termtouch replay --verbose demo.tape`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), args[0], outputPath, verbose)
		},
	}

	replayCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the transcript to a file")
	replayCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Echo each command before running it")

	validateCmd := &cobra.Command{
		Use:   "validate <file.tape>",
		Short: "Check a tape script for syntax errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateTape(args[0])
		},
	}

	// Config command group
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage termtouch configuration",
		Long:  `Manage the termtouch configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the termtouch configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running demo picks up
the saved file without a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var assumeYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the termtouch configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(assumeYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configShowCmd)

	gesturesCmd := &cobra.Command{
		Use:     "gestures",
		Aliases: []string{"g"},
		Short:   "List the gestures",
		Long:    `Display every gesture and what it does, using the configured thresholds`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listGestures()
		},
	}

	rootCmd.AddCommand(demoCmd, replayCmd, validateCmd, configCmd, gesturesCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
