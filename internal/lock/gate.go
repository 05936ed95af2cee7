package lock

import (
	"io"

	"term-lock/internal/render"
	"term-lock/internal/term"
)

// Outcome is the gate's verdict, propagated to the render loop.
type Outcome int

const (
	// OutcomeResume means the attempt failed or was abandoned; the
	// animation continues from where it was interrupted.
	OutcomeResume Outcome = iota
	// OutcomeUnlock means the credential check passed.
	OutcomeUnlock
)

// Attempt method labels for the audit record.
const (
	MethodInterrupted = "interrupted"
	MethodError       = "error"
)

// Terminal is the raw-mode scope the gate runs its prompt under.
type Terminal interface {
	WithRawMode(body func() error) error
}

// AttemptSink records one audit entry per completed or abandoned attempt.
type AttemptSink interface {
	Attempt(method string, success bool)
}

// Gate collects a masked password and verifies it against the credential
// backend. One Run is one attempt: Prompting until Enter or cancel, then
// Verifying, then exactly one attempt record.
type Gate struct {
	Term    Terminal
	Input   io.Reader
	Screen  *render.Renderer
	Backend Backend
	Sink    AttemptSink
	User    string
}

// Run draws the prompt overlay and drives the keystroke loop. The secret
// lives only in a SecureBuffer destroyed before return. A non-nil error is
// a terminal write failure, which the caller treats as fatal.
func (g *Gate) Run() (Outcome, error) {
	origin, err := g.Screen.PasswordPrompt()
	if err != nil {
		return OutcomeResume, err
	}

	buf := NewSecureBuffer()
	defer buf.Destroy()

	outcome := OutcomeResume
	err = g.Term.WithRawMode(func() error {
		for {
			key, err := term.ReadKey(g.Input)
			if err != nil {
				// An interrupted read cancels the attempt.
				g.Sink.Attempt(MethodInterrupted, false)
				return nil
			}

			switch key.Kind {
			case term.KindEnter:
				if err := g.Screen.HideCursor(); err != nil {
					return err
				}
				ok, verr := g.Backend.Verify(g.User, buf.Bytes())
				if verr != nil {
					g.Sink.Attempt(MethodError, false)
					return nil
				}
				g.Sink.Attempt(g.Backend.Name(), ok)
				if ok {
					outcome = OutcomeUnlock
				}
				return nil

			case term.KindCancel:
				g.Sink.Attempt(MethodInterrupted, false)
				return nil

			case term.KindBackspace:
				if buf.Backspace() {
					if err := g.Screen.UnmaskAt(origin, buf.Len()); err != nil {
						return err
					}
				}

			case term.KindClear:
				buf.Clear()
				if err := g.Screen.ClearField(origin); err != nil {
					return err
				}

			case term.KindRune:
				if buf.AppendRune(key.Rune) {
					if err := g.Screen.MaskAt(origin, buf.Len()-1); err != nil {
						return err
					}
				}
			}
		}
	})
	return outcome, err
}
