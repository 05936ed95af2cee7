// Package loop drives the lock: the Animating ⇄ Authenticating state
// machine, cooperative signal observation, and the guarantee that the
// terminal session is restored on every exit path.
package loop

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"term-lock/internal/frames"
	"term-lock/internal/lock"
	"term-lock/internal/render"
)

// FrameSource supplies frame text by 1-based index.
type FrameSource interface {
	Count() int
	Text(i int) (string, error)
}

// Gate runs one authentication attempt.
type Gate interface {
	Run() (lock.Outcome, error)
}

// Terminal is the session whose restore the loop guarantees.
type Terminal interface {
	EnterImmersive() error
	Restore() error
}

// Recorder is the audit surface the loop reports to.
type Recorder interface {
	SignalBlocked(name string)
	FrameSkipped(index int, err error)
	SessionEnd()
}

// Notify installs the lock's signal dispositions: the interrupt becomes a
// cooperative suspend request, and the job-control/quit signals are
// captured so they cannot bypass the gate. Trapping them via signal.Notify
// cancels their default process-stopping dispositions; the runtime handler
// does nothing beyond delivering to the channel, and all observation
// happens in the loop between frames.
func Notify() (interrupt, blocked chan os.Signal, stop func()) {
	interrupt = make(chan os.Signal, 1)
	blocked = make(chan os.Signal, 4)
	signal.Notify(interrupt, os.Interrupt)
	signal.Notify(blocked, syscall.SIGQUIT, syscall.SIGTSTP)
	return interrupt, blocked, func() {
		signal.Stop(interrupt)
		signal.Stop(blocked)
	}
}

// Loop is the top-level driver. Single-threaded: the frame-rate sleep is
// the only suspension point, and signals are polled, never handled
// preemptively.
type Loop struct {
	Frames FrameSource
	Screen *render.Renderer
	Gate   Gate
	Term   Terminal
	Rec    Recorder

	Delay     time.Duration
	Interrupt <-chan os.Signal
	Blocked   <-chan os.Signal
}

// Run enters the alternate screen and animates until an authenticated
// exit or a fatal error. The session restore runs on every return path.
func (l *Loop) Run() (err error) {
	if err := l.Term.EnterImmersive(); err != nil {
		return err
	}
	defer func() {
		if rerr := l.Term.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	cur := frames.NewCursor(l.Frames.Count())
	suspend := false

	for {
		l.drainBlocked()

		if suspend || l.interruptPending() {
			suspend = false
			outcome, gerr := l.Gate.Run()
			if gerr != nil {
				return gerr
			}
			if outcome == lock.OutcomeUnlock {
				if err := l.Screen.ResetColor(); err != nil {
					return err
				}
				l.Rec.SessionEnd()
				return nil
			}
			// Failed attempt: resume at the preserved frame index. The
			// next frame redraw clears the prompt overlay.
			continue
		}

		text, ferr := l.Frames.Text(cur.Index)
		if ferr != nil {
			if !errors.Is(ferr, frames.ErrMissingFrame) {
				return ferr
			}
			l.Rec.FrameSkipped(cur.Index, ferr)
			cur.Advance()
			continue
		}
		if err := l.Screen.Frame(text); err != nil {
			return err
		}

		if l.sleep() {
			// Interrupted mid-sleep: do not advance, so the animation
			// resumes from this frame after a failed attempt.
			suspend = true
			continue
		}
		cur.Advance()
	}
}

// sleep waits one frame interval, returning true if the suspend request
// arrived during the wait.
func (l *Loop) sleep() bool {
	t := time.NewTimer(l.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return false
	case <-l.Interrupt:
		return true
	}
}

// interruptPending polls the suspend request without blocking.
func (l *Loop) interruptPending() bool {
	select {
	case <-l.Interrupt:
		return true
	default:
		return false
	}
}

// drainBlocked logs and discards any neutralized signals that arrived
// since the last tick. They must never suspend or kill the process.
func (l *Loop) drainBlocked() {
	for {
		select {
		case s := <-l.Blocked:
			l.Rec.SignalBlocked(signalName(s))
		default:
			return
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGQUIT:
		return "SIGQUIT"
	case syscall.SIGTSTP:
		return "SIGTSTP"
	default:
		return s.String()
	}
}
