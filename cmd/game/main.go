package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/liftrunner/internal/audio"
	"github.com/tomz197/liftrunner/internal/audio/speaker"
	"github.com/tomz197/liftrunner/internal/config"
	"github.com/tomz197/liftrunner/internal/loop"
	loopconfig "github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/store"
)

const defaultScoresPath = ".liftrunner_scores"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, closeLog, err := newLogger(config.GetEnv("LIFTRUNNER_LOG", ""))
	if err != nil {
		return err
	}
	defer closeLog()

	tuning := loopconfig.DefaultTuning()
	if path := config.GetEnv("LIFTRUNNER_TUNING", ""); path != "" {
		if tuning, err = loopconfig.LoadTuning(path); err != nil {
			return fmt.Errorf("load tuning: %w", err)
		}
		logger.Info("tuning loaded", "path", path)
	}

	var sink audio.Sink = audio.Nop{}
	if config.GetEnvBool("LIFTRUNNER_AUDIO", true) {
		sp, err := speaker.New()
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sp.Close()
			sink = sp
		}
	}

	scores := store.NewFile(config.GetEnv("LIFTRUNNER_SCORES", defaultScoresPath), logger)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, loop.Options{
		Scores: store.For(scores, localUser()),
		Audio:  sink,
		Tuning: &tuning,
		Seed:   config.GetEnvInt("LIFTRUNNER_SEED", 0),
		Logger: logger,
	})
}

// newLogger writes to path, or discards when path is empty. Stdout belongs to the game.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "liftrunner",
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}

func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
