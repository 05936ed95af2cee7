package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"term-lock/internal/config"
)

func newTestRenderer() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, config.Default()), &buf
}

func TestRenderer_Frame(t *testing.T) {
	t.Run("plain frame bytes", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.Frame("hello"))

		assert.Equal(t, "\x1b[2J\x1b[H\x1b[?25l\x1b[37mhello", buf.String())
	})

	t.Run("highlight span becomes bold accent", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.Frame(`ab<span class="b">cd</span>ef`))

		want := "\x1b[2J\x1b[H\x1b[?25l\x1b[37m" +
			"ab" + "\x1b[34m\x1b[1m" + "cd" + "\x1b[0m\x1b[37m" + "ef"
		assert.Equal(t, want, buf.String())
	})

	t.Run("multiple spans", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.Frame(`<span class="b">a</span>.<span class="b">b</span>`))

		out := buf.String()
		assert.Equal(t, 2, strings.Count(out, "\x1b[34m\x1b[1m"))
		assert.Equal(t, 2, strings.Count(out, "\x1b[0m\x1b[37m"))
		assert.NotContains(t, out, "span", "markup must never reach the terminal")
	})
}

func TestRenderer_PasswordPrompt(t *testing.T) {
	r, buf := newTestRenderer()

	origin, err := r.PasswordPrompt()
	require.NoError(t, err)

	// Geometry against the 100x25 canvas: box 50x7 centered, field of 20
	// underscores inside "[ ... ]".
	assert.Equal(t, Origin{Col: 40, Row: 13}, origin)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[s\x1b[?25l"), "saves cursor and hides it first")
	assert.Contains(t, out, "\x1b[9;25H", "box top row position")
	assert.Contains(t, out, "\x1b[40m", "black background behind the box")
	assert.Contains(t, out, "╔"+strings.Repeat("═", 48)+"╗")
	assert.Contains(t, out, "╚"+strings.Repeat("═", 48)+"╝")
	assert.Contains(t, out, "[ Authentication Required ]")
	assert.Contains(t, out, "[ "+strings.Repeat("_", 20)+" ]")
	assert.Contains(t, out, "\x1b[13;40H\x1b[?25h", "cursor parked at the field, visible")
	assert.True(t, strings.HasSuffix(out, "\x1b[0m"), "attributes reset last")
}

func TestRenderer_FieldEchoes(t *testing.T) {
	origin := Origin{Col: 40, Row: 13}

	t.Run("mask at position", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.MaskAt(origin, 0))
		assert.Equal(t, "\x1b[13;40H*", buf.String())
	})

	t.Run("mask at later position", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.MaskAt(origin, 5))
		assert.Equal(t, "\x1b[13;45H*", buf.String())
	})

	t.Run("unmask redraws placeholder and parks cursor", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.UnmaskAt(origin, 3))
		assert.Equal(t, "\x1b[13;43H_\x1b[13;43H", buf.String())
	})

	t.Run("clear field redraws every placeholder", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.ClearField(origin))
		assert.Equal(t, "\x1b[13;40H"+strings.Repeat("_", 20)+"\x1b[13;40H", buf.String())
	})

	t.Run("hide cursor", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.HideCursor())
		assert.Equal(t, "\x1b[?25l", buf.String())
	})

	t.Run("reset color", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.ResetColor())
		assert.Equal(t, "\x1b[0m", buf.String())
	})
}

// errWriter fails after n successful writes.
type errWriter struct {
	n int
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, assert.AnError
	}
	w.n--
	return len(p), nil
}

func TestRenderer_WriteFailure(t *testing.T) {
	r := New(&errWriter{}, config.Default())
	err := r.Frame("hello")
	assert.Error(t, err, "terminal write failure must surface, not vanish")
}
