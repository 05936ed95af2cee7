package frames

// ---- Playback Position

// FirstFrame is where playback starts and where wraparound lands.
const FirstFrame = 1

// Cursor tracks the looping playback position through a frame sequence.
// It only ever moves forward, wrapping back to FirstFrame after the last
// frame, so the animation can resume exactly where an interruption left it.
type Cursor struct {
	// Index is the current 1-based frame index.
	Index int

	// Count is the total number of frames in the sequence.
	Count int
}

// NewCursor creates a cursor positioned at the first frame.
func NewCursor(count int) *Cursor {
	return &Cursor{Index: FirstFrame, Count: count}
}

// Advance moves to the next frame, wrapping after the last one.
func (c *Cursor) Advance() {
	c.Index++
	if c.Index > c.Count {
		c.Index = FirstFrame
	}
}

// Valid reports whether the cursor points inside the sequence.
func (c *Cursor) Valid() bool {
	return c.Index >= FirstFrame && c.Index <= c.Count
}
