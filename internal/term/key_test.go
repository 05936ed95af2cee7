package term

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name string
		b    byte
		want Key
	}{
		{name: "carriage return is enter", b: 0x0d, want: Key{Kind: KindEnter}},
		{name: "linefeed is enter", b: 0x0a, want: Key{Kind: KindEnter}},
		{name: "delete is backspace", b: 0x7f, want: Key{Kind: KindBackspace}},
		{name: "ctrl-h is backspace", b: 0x08, want: Key{Kind: KindBackspace}},
		{name: "ctrl-c is cancel", b: 0x03, want: Key{Kind: KindCancel}},
		{name: "ctrl-u is clear", b: 0x15, want: Key{Kind: KindClear}},
		{name: "escape is ignored", b: 0x1b, want: Key{Kind: KindIgnore}},
		{name: "bell is ignored", b: 0x07, want: Key{Kind: KindIgnore}},
		{name: "tab is ignored", b: 0x09, want: Key{Kind: KindIgnore}},
		{name: "space is printable", b: ' ', want: Key{Kind: KindRune, Rune: ' '}},
		{name: "letter is printable", b: 'q', want: Key{Kind: KindRune, Rune: 'q'}},
		{name: "digit is printable", b: '7', want: Key{Kind: KindRune, Rune: '7'}},
		{name: "punctuation is printable", b: '!', want: Key{Kind: KindRune, Rune: '!'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeKey(tt.b))
		})
	}
}

func TestReadKey(t *testing.T) {
	t.Run("reads exactly one key at a time", func(t *testing.T) {
		r := strings.NewReader("ab\r")

		k, err := ReadKey(r)
		require.NoError(t, err)
		assert.Equal(t, Key{Kind: KindRune, Rune: 'a'}, k)

		k, err = ReadKey(r)
		require.NoError(t, err)
		assert.Equal(t, Key{Kind: KindRune, Rune: 'b'}, k)

		k, err = ReadKey(r)
		require.NoError(t, err)
		assert.Equal(t, Key{Kind: KindEnter}, k)
	})

	t.Run("exhausted input surfaces the error", func(t *testing.T) {
		_, err := ReadKey(strings.NewReader(""))
		require.Error(t, err)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("two-byte sequence decodes to one printable key", func(t *testing.T) {
		k, err := ReadKey(strings.NewReader("é"))
		require.NoError(t, err)
		assert.Equal(t, Key{Kind: KindRune, Rune: 'é'}, k)
	})

	t.Run("three-byte sequence decodes to one printable key", func(t *testing.T) {
		k, err := ReadKey(strings.NewReader("日"))
		require.NoError(t, err)
		assert.Equal(t, Key{Kind: KindRune, Rune: '日'}, k)
	})

	t.Run("four-byte sequence decodes to one printable key", func(t *testing.T) {
		k, err := ReadKey(strings.NewReader("🔒"))
		require.NoError(t, err)
		assert.Equal(t, Key{Kind: KindRune, Rune: '🔒'}, k)
	})

	t.Run("multibyte keys read in sequence", func(t *testing.T) {
		r := strings.NewReader("café\r")
		var got []rune
		for {
			k, err := ReadKey(r)
			require.NoError(t, err)
			if k.Kind == KindEnter {
				break
			}
			require.Equal(t, KindRune, k.Kind)
			got = append(got, k.Rune)
		}
		assert.Equal(t, "café", string(got))
	})

	t.Run("stray continuation byte is ignored", func(t *testing.T) {
		k, err := ReadKey(strings.NewReader("\x80a"))
		require.NoError(t, err)
		assert.Equal(t, Key{Kind: KindIgnore}, k)
	})

	t.Run("invalid sequence is ignored", func(t *testing.T) {
		// A lead byte followed by a non-continuation byte.
		k, err := ReadKey(strings.NewReader("\xc3\x41"))
		require.NoError(t, err)
		assert.Equal(t, Key{Kind: KindIgnore}, k)
	})

	t.Run("truncated sequence surfaces the error", func(t *testing.T) {
		_, err := ReadKey(strings.NewReader("\xc3"))
		require.Error(t, err)
	})
}
