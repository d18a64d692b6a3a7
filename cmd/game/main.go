package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/spaceshooter/internal/audio"
	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/loop"
	"github.com/tomz197/spaceshooter/internal/status"
)

func main() {
	settings := config.LoadSettings()

	logger, closeLog, err := newLogger(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	opts := loop.Options{
		Settings: settings,
		Store:    status.NewFileStore(settings.HighScorePath),
		Audio:    audio.Nop{},
		Logger:   logger,
	}

	if settings.Audio {
		spk := audio.NewSpeaker(settings.Volume)
		if err := spk.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer spk.Close()
			opts.Audio = spk
		}
	}

	logger.Info("starting", "renderer", settings.Renderer, "highscores", settings.HighScorePath)
	if settings.Renderer == config.RendererTcell {
		err = runScreen(opts)
	} else {
		err = runTerminal(opts)
	}
	if err != nil {
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// runTerminal puts stdin into raw mode and renders with ANSI sequences.
func runTerminal(opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, opts)
}

// runScreen renders through tcell.
func runScreen(opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return loop.RunScreen(screen, opts)
}

// newLogger writes to SHOOTER_LOG_FILE when set. The terminal is owned by
// the game, so logs are discarded otherwise.
func newLogger(settings config.Settings) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "shooter",
	})
	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger, closeFn, nil
}
