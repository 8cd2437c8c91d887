// Package escpos builds ESC/POS command streams for thermal receipt
// printers.
package escpos

import (
	"bytes"
	"strings"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment selects horizontal justification.
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// Buffer builds an ESC/POS command stream.
type Buffer struct {
	buf bytes.Buffer
}

func New() *Buffer {
	return &Buffer{}
}

// Init resets the printer to its power-on state.
func (b *Buffer) Init() *Buffer {
	b.buf.Write([]byte{esc, '@'})
	return b
}

// Text appends raw text. The printer's active code page applies.
func (b *Buffer) Text(s string) *Buffer {
	b.buf.WriteString(s)
	return b
}

// Line appends text followed by a line feed.
func (b *Buffer) Line(s string) *Buffer {
	b.buf.WriteString(s)
	b.buf.WriteByte(lf)
	return b
}

// Feed advances the paper n lines.
func (b *Buffer) Feed(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	b.buf.Write([]byte{esc, 'd', byte(n)})
	return b
}

// Align sets justification for subsequent lines.
func (b *Buffer) Align(a Alignment) *Buffer {
	b.buf.Write([]byte{esc, 'a', byte(a)})
	return b
}

// Bold toggles emphasized printing.
func (b *Buffer) Bold(on bool) *Buffer {
	v := byte(0)
	if on {
		v = 1
	}
	b.buf.Write([]byte{esc, 'E', v})
	return b
}

// Cut feeds to the cut position and performs a partial cut.
func (b *Buffer) Cut() *Buffer {
	b.buf.Write([]byte{gs, 'V', 'B', 0})
	return b
}

// Bytes returns the raw command bytes to send to the printer.
func (b *Buffer) Bytes() []byte {
	return b.buf.Bytes()
}

// String returns the stream as a string, for debugging.
func (b *Buffer) String() string {
	return b.buf.String()
}

// EncodeText renders plain text as a standalone print job: a reset, the
// text, a trailing feed and a cut.
func EncodeText(text string) []byte {
	b := New().Init()
	if strings.HasSuffix(text, "\n") {
		b.Text(text)
	} else {
		b.Line(text)
	}
	return b.Feed(3).Cut().Bytes()
}
