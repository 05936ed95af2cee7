// Package config holds the process-wide settings shared by the lock
// components. A Settings value is built once at startup from flags and
// environment, then passed by pointer; nothing mutates it afterwards.
package config

import (
	"fmt"
	"time"
)

// ---- Defaults

const (
	// DefaultFrameDir is where the pre-rendered animation frames live.
	DefaultFrameDir = "./animation_frames"

	// DefaultLogPath is the fixed append-only audit log.
	DefaultLogPath = "terminal_lock.log"

	// DefaultFrameRate is frames per second for the animation loop.
	DefaultFrameRate = 24

	// FieldWidth is the password input field width in cells. The
	// PasswordBuffer cap is the same value; the field never scrolls.
	FieldWidth = 20

	// CanvasWidth and CanvasHeight are the frame asset dimensions the
	// prompt overlay is centered against.
	CanvasWidth  = 100
	CanvasHeight = 25
)

// Palette is the ANSI SGR palette used for frame and overlay rendering.
// The byte sequences are part of the external terminal contract and must
// be emitted exactly.
type Palette struct {
	Base    string // frame body foreground
	Accent  string // highlight-span foreground
	Bold    string
	Reset   string
	BlackBG string
}

// DefaultPalette renders frames white with blue+bold highlight spans.
func DefaultPalette() Palette {
	return Palette{
		Base:    "\x1b[37m",
		Accent:  "\x1b[34m",
		Bold:    "\x1b[1m",
		Reset:   "\x1b[0m",
		BlackBG: "\x1b[40m",
	}
}

// Settings is the immutable process-wide configuration.
type Settings struct {
	FrameDir  string
	LogPath   string
	FrameRate int

	FieldWidth   int
	CanvasWidth  int
	CanvasHeight int

	Palette Palette
}

// Default returns the settings matching the original deployment.
func Default() *Settings {
	return &Settings{
		FrameDir:     DefaultFrameDir,
		LogPath:      DefaultLogPath,
		FrameRate:    DefaultFrameRate,
		FieldWidth:   FieldWidth,
		CanvasWidth:  CanvasWidth,
		CanvasHeight: CanvasHeight,
		Palette:      DefaultPalette(),
	}
}

// FrameDelay is the per-frame sleep interval.
func (s *Settings) FrameDelay() time.Duration {
	return time.Second / time.Duration(s.FrameRate)
}

// Validate rejects settings no loop could run with.
func (s *Settings) Validate() error {
	if s.FrameDir == "" {
		return fmt.Errorf("frame directory must not be empty")
	}
	if s.LogPath == "" {
		return fmt.Errorf("log path must not be empty")
	}
	if s.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", s.FrameRate)
	}
	if s.FieldWidth <= 0 {
		return fmt.Errorf("field width must be positive, got %d", s.FieldWidth)
	}
	return nil
}
