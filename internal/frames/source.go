// Package frames supplies the pre-rendered animation frames by index and
// tracks the looping playback position.
package frames

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMissingFrame marks a frame file absent from the asset directory.
// Callers skip the index and keep looping.
var ErrMissingFrame = errors.New("missing animation frame")

// framePattern is the on-disk naming scheme: frame_001.txt ... frame_NNN.txt.
const framePattern = "frame_%03d.txt"

// Source reads numbered frame files from a directory. Indices run from 1
// to Count inclusive.
type Source struct {
	dir   string
	count int
}

// Open scans dir and determines the frame count: the highest index whose
// file exists. Gaps below the top index are tolerated and surface later as
// ErrMissingFrame. An empty or unreadable directory is an error; a lock
// screen with nothing to draw is useless.
func Open(dir string) (*Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading frame directory: %w", err)
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, ok := frameIndex(e.Name())
		if ok && n > count {
			count = n
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("no frames matching %q in %s", framePattern, dir)
	}
	return &Source{dir: dir, count: count}, nil
}

// frameIndex parses a file name against framePattern. Only exact,
// zero-padded matches count; Text formats lookups the same way.
func frameIndex(name string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(name, "frame_%d.txt", &n); err != nil || n < 1 {
		return 0, false
	}
	if fmt.Sprintf(framePattern, n) != name {
		return 0, false
	}
	return n, true
}

// Count returns the number of frames, fixed for the lifetime of the Source.
func (s *Source) Count() int { return s.count }

// Text returns the raw frame text for index i (1-based).
func (s *Source) Text(i int) (string, error) {
	if i < 1 || i > s.count {
		return "", fmt.Errorf("frame index %d out of range [1,%d]", i, s.count)
	}
	path := filepath.Join(s.dir, fmt.Sprintf(framePattern, i))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrMissingFrame, path)
		}
		return "", fmt.Errorf("reading frame %d: %w", i, err)
	}
	return string(data), nil
}
