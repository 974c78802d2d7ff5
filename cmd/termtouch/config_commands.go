package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/termtouch/internal/config"
	"github.com/Gaurav-Gosain/termtouch/internal/theme"
)

// configPath returns the --config flag or the XDG location.
func configPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("could not determine config path: %w", err)
	}
	return path, nil
}

func printConfigPath() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	// Ensure config file exists (create default if needed)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", path)
		if err := config.Save(config.DefaultConfig(), path); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	// Report mistakes right away instead of at the next start.
	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("saved config is invalid: %w", err)
	}
	return nil
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults(assumeYes bool) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !assumeYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("refusing to overwrite the config without a terminal, pass --yes")
		}

		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", path)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.Save(config.DefaultConfig(), path); err != nil {
		return err
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", path)
	fmt.Println("\nYou can customize it with: termtouch config edit")
	return nil
}

// showConfig prints the configuration in effect after flags are applied
func showConfig() error {
	cfg, _ := loadConfig()
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// listGestures prints every gesture section in a table
func listGestures() error {
	cfg, _ := loadConfig()

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.CLITableKey()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableBorder()).Render("termtouch gestures"))
	fmt.Println()

	for _, section := range config.GetGestures(cfg) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, g := range section.Bindings {
			rows = append(rows, []string{g.Gesture, g.Description})
		}
		if len(rows) == 0 {
			continue
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableDim())).
			Headers("Gesture", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == 0:
					return keyStyle
				default:
					return cellStyle
				}
			})

		title := section.Title
		switch section.Condition {
		case "keyboard":
			title += " (keyboard open)"
		case "!keyboard":
			title += " (keyboard closed)"
		}
		lipgloss.Println(lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableKey()).Render(title))
		lipgloss.Println(t.Render())
		fmt.Println()
	}

	note := lipgloss.NewStyle().
		Foreground(theme.CLITableDim()).
		Italic(true).
		Render("Thresholds come from the [gesture] and [swipe] sections of the config file.")
	lipgloss.Println(note)
	fmt.Println()
	return nil
}
