package term

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Kind classifies a single raw keystroke for the password prompt.
type Kind int

const (
	// KindRune is a printable character.
	KindRune Kind = iota
	// KindEnter submits the buffer.
	KindEnter
	// KindBackspace removes the last character.
	KindBackspace
	// KindCancel abandons the attempt (Ctrl+C under raw mode).
	KindCancel
	// KindClear wipes the whole field (Ctrl+U).
	KindClear
	// KindIgnore is any other control byte; the prompt discards it.
	KindIgnore
)

// Key is one decoded keystroke.
type Key struct {
	Kind Kind
	Rune rune
}

// Raw-mode control bytes.
const (
	byteCtrlC     = 0x03
	byteBackspace = 0x08
	byteEnterLF   = 0x0a
	byteEnterCR   = 0x0d
	byteCtrlU     = 0x15
	byteEscape    = 0x1b
	byteDelete    = 0x7f
)

// ReadKey blocks until exactly one key is available on r and decodes it.
// It must be called under raw mode; there is deliberately no timeout.
// A multi-byte UTF-8 keystroke arrives as its full byte sequence and is
// decoded to a single printable Key.
func ReadKey(r io.Reader) (Key, error) {
	var b [utf8.UTFMax]byte
	if _, err := io.ReadFull(r, b[:1]); err != nil {
		return Key{}, fmt.Errorf("reading keystroke: %w", err)
	}
	if b[0] < utf8.RuneSelf {
		return DecodeKey(b[0]), nil
	}

	n := seqLen(b[0])
	if n == 0 {
		// Stray continuation byte; nothing to decode.
		return Key{Kind: KindIgnore}, nil
	}
	if _, err := io.ReadFull(r, b[1:n]); err != nil {
		return Key{}, fmt.Errorf("reading keystroke: %w", err)
	}
	ch, size := utf8.DecodeRune(b[:n])
	if ch == utf8.RuneError && size <= 1 {
		return Key{Kind: KindIgnore}, nil
	}
	return Key{Kind: KindRune, Rune: ch}, nil
}

// seqLen returns the UTF-8 sequence length implied by a lead byte, or 0
// when the byte cannot start a sequence.
func seqLen(b byte) int {
	switch {
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}

// DecodeKey maps one single-byte (ASCII) keystroke to a Key.
func DecodeKey(b byte) Key {
	switch b {
	case byteEnterCR, byteEnterLF:
		return Key{Kind: KindEnter}
	case byteBackspace, byteDelete:
		return Key{Kind: KindBackspace}
	case byteCtrlC:
		return Key{Kind: KindCancel}
	case byteCtrlU:
		return Key{Kind: KindClear}
	case byteEscape:
		return Key{Kind: KindIgnore}
	}
	if b < 0x20 {
		return Key{Kind: KindIgnore}
	}
	return Key{Kind: KindRune, Rune: rune(b)}
}
