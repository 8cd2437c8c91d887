package escpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer(t *testing.T) {
	t.Run("init", func(t *testing.T) {
		assert.Equal(t, []byte{0x1B, '@'}, New().Init().Bytes())
	})

	t.Run("line", func(t *testing.T) {
		assert.Equal(
			t,
			[]byte{'H', 'i', 0x0A},
			New().Line("Hi").Bytes(),
		)
	})

	t.Run("feed clamps", func(t *testing.T) {
		assert.Equal(t, []byte{0x1B, 'd', 0}, New().Feed(-1).Bytes())
		assert.Equal(t, []byte{0x1B, 'd', 255}, New().Feed(1000).Bytes())
	})

	t.Run("align", func(t *testing.T) {
		assert.Equal(
			t,
			[]byte{0x1B, 'a', 1},
			New().Align(AlignCenter).Bytes(),
		)
	})

	t.Run("bold", func(t *testing.T) {
		assert.Equal(t, []byte{0x1B, 'E', 1}, New().Bold(true).Bytes())
		assert.Equal(t, []byte{0x1B, 'E', 0}, New().Bold(false).Bytes())
	})

	t.Run("cut", func(t *testing.T) {
		assert.Equal(t, []byte{0x1D, 'V', 'B', 0}, New().Cut().Bytes())
	})

	t.Run("chained", func(t *testing.T) {
		got := New().
			Init().
			Align(AlignCenter).
			Bold(true).
			Line("RECEIPT").
			Bold(false).
			Align(AlignLeft).
			Line("Total: $4.20").
			Feed(3).
			Cut().
			Bytes()

		expected := []byte{
			0x1B, '@',
			0x1B, 'a', 1,
			0x1B, 'E', 1,
			'R', 'E', 'C', 'E', 'I', 'P', 'T', 0x0A,
			0x1B, 'E', 0,
			0x1B, 'a', 0,
			'T', 'o', 't', 'a', 'l', ':', ' ', '$', '4', '.', '2', '0', 0x0A,
			0x1B, 'd', 3,
			0x1D, 'V', 'B', 0,
		}
		assert.Equal(t, expected, got)
	})
}

func TestEncodeText(t *testing.T) {
	t.Run("adds trailing newline", func(t *testing.T) {
		expected := []byte{
			0x1B, '@',
			'H', 'i', 0x0A,
			0x1B, 'd', 3,
			0x1D, 'V', 'B', 0,
		}
		assert.Equal(t, expected, EncodeText("Hi"))
	})

	t.Run("keeps existing newline", func(t *testing.T) {
		assert.Equal(t, EncodeText("Hi"), EncodeText("Hi\n"))
	})

	t.Run("multiline", func(t *testing.T) {
		expected := []byte{
			0x1B, '@',
			'a', 0x0A, 'b', 0x0A,
			0x1B, 'd', 3,
			0x1D, 'V', 'B', 0,
		}
		assert.Equal(t, expected, EncodeText("a\nb"))
	})
}
