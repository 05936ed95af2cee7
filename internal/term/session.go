// Package term owns the terminal device: mode transitions, the alternate
// screen buffer, and raw single-keystroke input. Every other package writes
// to the terminal only through a Session acquired here.
package term

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotATerminal is returned at startup when the process is not attached
// to a TTY. Everything downstream assumes one.
var ErrNotATerminal = errors.New("stdin/stdout is not a terminal")

// Control sequences. These exact bytes are part of the compatibility
// contract with standard terminal emulators.
const (
	altScreenEnter = "\x1b[?1049h"
	altScreenExit  = "\x1b[?1049l"
	cursorHide     = "\x1b[?25l"
	cursorShow     = "\x1b[?25h"
)

// Session wraps the controlling terminal. It snapshots the terminal
// attributes once at construction and guarantees they are reinstated at
// most once, no matter how many times Restore runs.
type Session struct {
	in    *os.File
	out   *os.File
	saved *term.State

	immersive bool
	restored  bool
}

// NewSession snapshots the current terminal state. Fails fast with
// ErrNotATerminal when either side of the session is not a TTY.
func NewSession() (*Session, error) {
	return newSession(os.Stdin, os.Stdout)
}

func newSession(in, out *os.File) (*Session, error) {
	if !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		return nil, ErrNotATerminal
	}
	saved, err := term.GetState(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("saving terminal state: %w", err)
	}
	return &Session{in: in, out: out, saved: saved}, nil
}

// Input returns the terminal input stream for keystroke reads.
func (s *Session) Input() io.Reader { return s.in }

// Output returns the terminal output stream for rendering.
func (s *Session) Output() io.Writer { return s.out }

// EnterImmersive switches to the alternate screen buffer and hides the
// cursor, so the animation neither scrolls nor pollutes shell history.
func (s *Session) EnterImmersive() error {
	if _, err := s.out.WriteString(altScreenEnter + cursorHide); err != nil {
		return fmt.Errorf("entering alternate screen: %w", err)
	}
	s.immersive = true
	return nil
}

// Restore reverses EnterImmersive and reinstates the saved terminal
// attributes. Safe to call on every exit path; the second and later calls
// are no-ops.
func (s *Session) Restore() error {
	if s.restored {
		return nil
	}
	s.restored = true

	var first error
	if s.immersive {
		if _, err := s.out.WriteString(cursorShow + altScreenExit); err != nil {
			first = fmt.Errorf("leaving alternate screen: %w", err)
		}
		s.immersive = false
	}
	if s.saved != nil {
		if err := term.Restore(int(s.in.Fd()), s.saved); err != nil && first == nil {
			first = fmt.Errorf("restoring terminal attributes: %w", err)
		}
	}
	return first
}

// WithRawMode runs body with the terminal in raw (no-echo, unbuffered)
// input mode, reinstating the previous mode on every exit path from body.
// A failed mode restore cannot be recovered from and surfaces to the
// caller, unless body already failed.
func (s *Session) WithRawMode(body func() error) (err error) {
	prev, err := term.MakeRaw(int(s.in.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer func() {
		if rerr := term.Restore(int(s.in.Fd()), prev); rerr != nil && err == nil {
			err = fmt.Errorf("restoring input mode: %w", rerr)
		}
	}()
	return body()
}
