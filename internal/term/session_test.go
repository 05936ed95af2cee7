package term

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_NotATerminal(t *testing.T) {
	// A pipe is not a TTY; the session must fail fast at startup.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	_, err = newSession(r, w)
	assert.ErrorIs(t, err, ErrNotATerminal)
}

func TestSession_RestoreIdempotent(t *testing.T) {
	// Restore must be a no-op after the first call even when the session
	// was never immersive. Construct the struct directly; the TTY path is
	// unavailable under test.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	s := &Session{in: r, out: w}
	require.NoError(t, s.Restore())
	require.NoError(t, s.Restore())
	assert.True(t, s.restored)
}

func TestSession_WithRawMode(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	s := &Session{in: r, out: w}

	// Raw mode cannot be entered on a pipe; body must never run without it.
	ran := false
	err = s.WithRawMode(func() error {
		ran = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, ran)
}
