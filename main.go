package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"term-lock/internal/audit"
	"term-lock/internal/config"
	"term-lock/internal/frames"
	"term-lock/internal/lock"
	"term-lock/internal/loop"
	"term-lock/internal/render"
	"term-lock/internal/term"
)

func main() {
	rootFlagSet := flag.NewFlagSet("term-lock", flag.ExitOnError)
	frameDir := rootFlagSet.String("frames", config.DefaultFrameDir, "Directory of numbered animation frame files")
	logPath := rootFlagSet.String("log", config.DefaultLogPath, "Append-only audit log file")
	fps := rootFlagSet.Int("fps", config.DefaultFrameRate, "Animation frame rate")

	rootCmd := &ffcli.Command{
		Name:       "term-lock",
		ShortUsage: "term-lock",
		ShortHelp:  "Lock the terminal behind a looping animation and a password gate",
		LongHelp: "Runs until the current user's password is entered at the prompt\n" +
			"raised by the interrupt key. Job-control and quit signals are blocked.",
		FlagSet: rootFlagSet,
		Options: []ff.Option{ff.WithEnvVarPrefix("TERM_LOCK")},
		Exec: func(ctx context.Context, args []string) error {
			return execLock(*frameDir, *logPath, *fps)
		},
	}

	if err := rootCmd.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func execLock(frameDir, logPath string, fps int) error {
	defer memguard.Purge()

	cfg := config.Default()
	cfg.FrameDir = frameDir
	cfg.LogPath = logPath
	cfg.FrameRate = fps
	if err := cfg.Validate(); err != nil {
		return err
	}

	rec, logFile, err := audit.Open(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	rec.Startup()

	sess, err := term.NewSession()
	if err != nil {
		rec.Critical(err)
		return err
	}
	src, err := frames.Open(cfg.FrameDir)
	if err != nil {
		rec.Critical(err)
		return err
	}
	backend, err := lock.DetectBackend(rec.User())
	if err != nil {
		rec.Critical(err)
		return err
	}

	screen := render.New(sess.Output(), cfg)
	gate := &lock.Gate{
		Term:    sess,
		Input:   sess.Input(),
		Screen:  screen,
		Backend: backend,
		Sink:    rec,
		User:    rec.User(),
	}

	interrupt, blocked, stopSignals := loop.Notify()
	defer stopSignals()

	l := &loop.Loop{
		Frames:    src,
		Screen:    screen,
		Gate:      gate,
		Term:      sess,
		Rec:       rec,
		Delay:     cfg.FrameDelay(),
		Interrupt: interrupt,
		Blocked:   blocked,
	}

	if err := l.Run(); err != nil {
		// A corrupted terminal on a crash is a correctness bug: reset
		// the color and restore before propagating. Restore is
		// idempotent, so the loop's own deferred restore stays safe.
		screen.ResetColor()
		sess.Restore()
		rec.Critical(err)
		return err
	}
	return nil
}
