// term-lock-play loops the animation with no lock, for previewing frame
// assets. The interrupt key exits immediately; nothing is trapped.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"term-lock/internal/config"
	"term-lock/internal/frames"
	"term-lock/internal/render"
)

func main() {
	frameDir := flag.String("frames", config.DefaultFrameDir, "Directory of numbered animation frame files")
	fps := flag.Int("fps", config.DefaultFrameRate, "Animation frame rate")
	flag.Parse()

	if err := play(*frameDir, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func play(frameDir string, fps int) error {
	cfg := config.Default()
	cfg.FrameDir = frameDir
	cfg.FrameRate = fps
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := frames.Open(cfg.FrameDir)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	screen := render.New(os.Stdout, cfg)
	defer screen.ResetColor()

	cur := frames.NewCursor(src.Count())
	ticker := time.NewTicker(cfg.FrameDelay())
	defer ticker.Stop()

	for {
		text, err := src.Text(cur.Index)
		if err != nil && !errors.Is(err, frames.ErrMissingFrame) {
			return err
		}
		if err == nil {
			if err := screen.Frame(text); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		cur.Advance()
	}
}
