// Package render paints animation frames and the password-entry overlay.
// It is pure output: nothing here reads input or blocks.
//
// The emitted control sequences are the external terminal contract and are
// reproduced byte-for-byte; do not "clean them up".
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"term-lock/internal/config"
)

// Highlight-span markup embedded in frame assets.
const (
	spanOpen  = `<span class="b">`
	spanClose = `</span>`
)

const (
	clearHome  = "\x1b[2J\x1b[H"
	cursorHide = "\x1b[?25l"
	cursorShow = "\x1b[?25h"
	cursorSave = "\x1b[s"
)

// Prompt box geometry.
const (
	boxWidth  = 50
	boxHeight = 7

	boxTopLeft     = '╔'
	boxTopRight    = '╗'
	boxBottomLeft  = '╚'
	boxBottomRight = '╝'
	boxHorizontal  = '═'
	boxVertical    = '║'

	promptTitle = "[ Authentication Required ]"
)

// Origin is the 1-based screen coordinate of the first input-field cell.
type Origin struct {
	Col int
	Row int
}

// Renderer draws frames and the password overlay to one terminal writer.
type Renderer struct {
	w   *bufio.Writer
	cfg *config.Settings
}

// New wraps out in a Renderer using the process settings.
func New(out io.Writer, cfg *config.Settings) *Renderer {
	return &Renderer{w: bufio.NewWriter(out), cfg: cfg}
}

// Frame clears the screen, homes the cursor, and paints one frame. The
// highlight span opens accent+bold and closes back to the base color; all
// other frame bytes pass through verbatim.
func (r *Renderer) Frame(text string) error {
	pal := r.cfg.Palette
	body := strings.ReplaceAll(text, spanOpen, pal.Accent+pal.Bold)
	body = strings.ReplaceAll(body, spanClose, pal.Reset+pal.Base)

	if _, err := r.w.WriteString(clearHome + cursorHide + pal.Base + body); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return r.flush()
}

// PasswordPrompt draws the centered bordered entry box over the current
// frame and returns the origin of the input field, leaving the cursor
// visible there for mask echoing.
func (r *Renderer) PasswordPrompt() (Origin, error) {
	vPad := (r.cfg.CanvasHeight - boxHeight) / 2
	hOff := (r.cfg.CanvasWidth - boxWidth) / 2
	inner := boxWidth - 2

	horiz := strings.Repeat(string(boxHorizontal), inner)
	blank := string(boxVertical) + strings.Repeat(" ", inner) + string(boxVertical)

	titlePad := (inner - runewidth.StringWidth(promptTitle)) / 2
	titleLine := string(boxVertical) + strings.Repeat(" ", titlePad) + promptTitle +
		strings.Repeat(" ", inner-titlePad-runewidth.StringWidth(promptTitle)) + string(boxVertical)

	field := "[ " + strings.Repeat("_", r.cfg.FieldWidth) + " ]"
	fieldPad := (inner - runewidth.StringWidth(field)) / 2
	fieldLine := string(boxVertical) + strings.Repeat(" ", fieldPad) + field +
		strings.Repeat(" ", inner-fieldPad-runewidth.StringWidth(field)) + string(boxVertical)

	var b strings.Builder
	b.WriteString(cursorSave + cursorHide)
	b.WriteString(moveTo(vPad, hOff))
	b.WriteString(r.cfg.Palette.BlackBG)
	b.WriteString(string(boxTopLeft) + horiz + string(boxTopRight))
	b.WriteString(moveTo(vPad+1, hOff) + blank)
	b.WriteString(moveTo(vPad+2, hOff) + titleLine)
	b.WriteString(moveTo(vPad+3, hOff) + blank)
	b.WriteString(moveTo(vPad+4, hOff) + fieldLine)
	b.WriteString(moveTo(vPad+5, hOff) + blank)
	b.WriteString(moveTo(vPad+6, hOff))
	b.WriteString(string(boxBottomLeft) + horiz + string(boxBottomRight))

	// Field origin: past the left margin and the "[ " bracket.
	origin := Origin{Col: hOff + fieldPad + 3, Row: vPad + 4}
	b.WriteString(moveTo(origin.Row, origin.Col) + cursorShow)
	b.WriteString(r.cfg.Palette.Reset)

	if _, err := r.w.WriteString(b.String()); err != nil {
		return Origin{}, fmt.Errorf("writing prompt: %w", err)
	}
	return origin, r.flush()
}

// MaskAt echoes a mask character at field position pos (0-based).
func (r *Renderer) MaskAt(o Origin, pos int) error {
	if _, err := r.w.WriteString(moveTo(o.Row, o.Col+pos) + "*"); err != nil {
		return fmt.Errorf("writing mask: %w", err)
	}
	return r.flush()
}

// UnmaskAt redraws the placeholder at field position pos and parks the
// cursor there, undoing one mask character.
func (r *Renderer) UnmaskAt(o Origin, pos int) error {
	seq := moveTo(o.Row, o.Col+pos) + "_" + moveTo(o.Row, o.Col+pos)
	if _, err := r.w.WriteString(seq); err != nil {
		return fmt.Errorf("erasing mask: %w", err)
	}
	return r.flush()
}

// ClearField redraws every placeholder and returns the cursor to the
// field origin.
func (r *Renderer) ClearField(o Origin) error {
	seq := moveTo(o.Row, o.Col) + strings.Repeat("_", r.cfg.FieldWidth) + moveTo(o.Row, o.Col)
	if _, err := r.w.WriteString(seq); err != nil {
		return fmt.Errorf("clearing field: %w", err)
	}
	return r.flush()
}

// HideCursor hides the cursor, used when the prompt is done echoing.
func (r *Renderer) HideCursor() error {
	if _, err := r.w.WriteString(cursorHide); err != nil {
		return fmt.Errorf("hiding cursor: %w", err)
	}
	return r.flush()
}

// ResetColor emits the SGR reset, used before restoring the terminal.
func (r *Renderer) ResetColor() error {
	if _, err := r.w.WriteString(r.cfg.Palette.Reset); err != nil {
		return fmt.Errorf("resetting color: %w", err)
	}
	return r.flush()
}

func (r *Renderer) flush() error {
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// moveTo addresses the cursor at 1-based row;col.
func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}
