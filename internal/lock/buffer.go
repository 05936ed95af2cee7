// Package lock implements the authentication gate: the secure password
// buffer, the OS credential backends, and the prompting state machine.
package lock

import (
	"unicode/utf8"

	"github.com/awnumar/memguard"
)

// MaxPasswordLen caps the password at the input field width. Appending
// beyond the cap is a no-op.
const MaxPasswordLen = 20

// SecureBuffer collects password input in memory that is locked against
// swapping and wiped on destruction. The secret never leaves this buffer
// except through Bytes, and is never written anywhere durable.
type SecureBuffer struct {
	buf    *memguard.LockedBuffer
	widths []int // byte width of each appended symbol, for Backspace
	n      int   // bytes in use
	max    int   // symbol cap
}

// NewSecureBuffer allocates a locked buffer sized for MaxPasswordLen
// symbols.
func NewSecureBuffer() *SecureBuffer {
	return newSecureBuffer(MaxPasswordLen)
}

func newSecureBuffer(maxSymbols int) *SecureBuffer {
	return &SecureBuffer{
		buf: memguard.NewBuffer(maxSymbols * utf8.UTFMax),
		max: maxSymbols,
	}
}

// AppendRune appends one symbol. Returns false when the buffer is at
// capacity or destroyed.
func (sb *SecureBuffer) AppendRune(r rune) bool {
	if sb.buf == nil || len(sb.widths) >= sb.max {
		return false
	}
	w := utf8.EncodeRune(sb.buf.Bytes()[sb.n:], r)
	sb.n += w
	sb.widths = append(sb.widths, w)
	return true
}

// Backspace removes the last symbol. Returns false on an empty buffer.
func (sb *SecureBuffer) Backspace() bool {
	if sb.buf == nil || len(sb.widths) == 0 {
		return false
	}
	w := sb.widths[len(sb.widths)-1]
	sb.widths = sb.widths[:len(sb.widths)-1]
	memguard.WipeBytes(sb.buf.Bytes()[sb.n-w : sb.n])
	sb.n -= w
	return true
}

// Len returns the number of symbols held.
func (sb *SecureBuffer) Len() int { return len(sb.widths) }

// Bytes returns the secret as a live view into locked memory. Callers
// must not retain it past the buffer's lifetime.
func (sb *SecureBuffer) Bytes() []byte {
	if sb.buf == nil {
		return nil
	}
	return sb.buf.Bytes()[:sb.n]
}

// Clear wipes the contents, leaving the buffer usable.
func (sb *SecureBuffer) Clear() {
	if sb.buf == nil {
		return
	}
	memguard.WipeBytes(sb.buf.Bytes())
	sb.n = 0
	sb.widths = sb.widths[:0]
}

// Destroy wipes and releases the locked memory. The buffer is unusable
// afterwards; all operations become no-ops.
func (sb *SecureBuffer) Destroy() {
	if sb.buf == nil {
		return
	}
	sb.buf.Destroy()
	sb.buf = nil
	sb.widths = nil
	sb.n = 0
}
