package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/termtouch/internal/app"
	"github.com/Gaurav-Gosain/termtouch/internal/config"
	"github.com/Gaurav-Gosain/termtouch/internal/logging"
	"github.com/Gaurav-Gosain/termtouch/internal/tape"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
	"github.com/Gaurav-Gosain/termtouch/internal/theme"
)

var logger = logging.New("termtouch")

// loadConfig resolves the config file, applies the global flags and sets up
// logging and the theme. A broken config falls back to the defaults.
func loadConfig() (*config.Config, string) {
	var (
		cfg  *config.Config
		path = configFile
		err  error
	)
	if path == "" {
		if path, err = config.GetConfigPath(); err != nil {
			logger.Warn("could not determine config path", "err", err)
		}
		cfg, err = config.LoadUserConfig()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}

	if themeName != "" {
		cfg.Appearance.Theme = themeName
	}

	lvl, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("invalid log level", "err", err)
	}
	if debugMode {
		lvl = log.DebugLevel
	}
	logging.SetLevel(lvl)

	if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
		logger.Warn("failed to initialize theme", "err", err)
	}
	return cfg, path
}

// openLogFile sends logs to the XDG state dir while the TUI owns the screen.
func openLogFile() (io.Closer, error) {
	path, err := xdg.StateFile("termtouch/termtouch.log")
	if err != nil {
		return nil, fmt.Errorf("could not determine log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	logging.SetOutput(f)
	return f, nil
}

func runDemo(ctx context.Context, recordPath string) error {
	cfg, path := loadConfig()

	if f, err := openLogFile(); err != nil {
		logger.Warn("logging to stderr", "err", err)
	} else {
		defer func() {
			logging.SetOutput(os.Stderr)
			_ = f.Close()
		}()
	}

	if recordPath != "" {
		abs, err := filepath.Abs(recordPath)
		if err != nil {
			return fmt.Errorf("invalid record path: %w", err)
		}
		recordPath = abs
	}

	model, err := app.New(ctx, app.Options{
		Config:     cfg,
		ConfigPath: path,
		RecordPath: recordPath,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithFPS(app.NormalFPS),
		tea.WithoutSignalHandler(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.QuitMsg{})
		}
	}()

	_, err = p.Run()

	shutdownErr := model.Shutdown()
	_ = terminal.ResetTerminal(os.Stdout)

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	if shutdownErr != nil {
		return shutdownErr
	}
	if recordPath != "" {
		fmt.Printf("Recorded %d commands to %s\n", model.Recorder().CommandCount(), recordPath)
	}
	return nil
}

func readTape(path string) ([]tape.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tape: %w", err)
	}
	commands, errs := tape.ParseFile(string(data))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e)
		}
		return nil, fmt.Errorf("%s: %d syntax errors", path, len(errs))
	}
	return commands, nil
}

func runReplay(ctx context.Context, path, outputPath string, verbose bool) error {
	cfg, _ := loadConfig()

	commands, err := readTape(path)
	if err != nil {
		return err
	}

	runner := tape.NewHeadlessRunner(commands, cfg)
	defer func() { _ = runner.Close() }()
	runner.SetVerbose(verbose)
	// Color only what goes straight to a terminal.
	runner.SetStyled(outputPath == "" && !writesOutput(commands) && term.IsTerminal(int(os.Stdout.Fd())))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := runner.Run(ctx)

	if outputPath == "" {
		outputPath = runner.OutputPath()
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(runner.GetOutput()), 0o644); err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
	} else if err := runner.WriteOutput(colorprofile.NewWriter(os.Stdout, os.Environ())); err != nil {
		return err
	}

	stats := runner.Stats()
	logger.Debug("replay finished",
		"commands", stats.ExecutedCount,
		"frames", stats.Frames,
		"virtual", stats.VirtualTime,
		"wall", stats.WallTime,
	)
	if runErr != nil {
		return fmt.Errorf("%s: %w", path, runErr)
	}
	return nil
}

func writesOutput(commands []tape.Command) bool {
	for _, c := range commands {
		if c.Type == tape.CommandType_Output {
			return true
		}
	}
	return false
}

func validateTape(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tape: %w", err)
	}
	ok, errs := tape.ValidateScript(string(data))
	if !ok {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e)
		}
		return errors.New("invalid tape")
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}
