package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment values for Document.Align
const (
	AlignLeft   byte = 0
	AlignCenter byte = 1
	AlignRight  byte = 2
)

// Character sizes for Document.Size
const (
	SizeNormal byte = 0x00
	SizeDouble byte = 0x11
	SizeTall   byte = 0x01
)

// Common paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// Document builds an ESC/POS byte stream. Widths are counted in runes so
// multi-byte names still line up.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for a printer width in characters
func NewDocument(width int) *Document {
	if width <= 0 {
		width = Width58mm
	}
	d := &Document{width: width}
	d.buf.Write([]byte{esc, '@'})
	return d
}

// Width is the number of characters per line
func (d *Document) Width() int {
	return d.width
}

func (d *Document) Align(a byte) *Document {
	d.buf.Write([]byte{esc, 'a', a})
	return d
}

func (d *Document) Bold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

func (d *Document) Size(s byte) *Document {
	d.buf.Write([]byte{gs, '!', s})
	return d
}

// Line writes s and ends the line. Text longer than the paper is wrapped
// by the printer.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

// Pair prints key on the left and value flush right. A key too long for
// the line is truncated so the value always shows.
func (d *Document) Pair(key, value string) *Document {
	room := d.width - utf8.RuneCountInString(value) - 1
	if room < 0 {
		room = 0
	}
	key = truncate(key, room)
	pad := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if pad < 1 {
		pad = 1
	}
	return d.Line(key + strings.Repeat(" ", pad) + value)
}

// Rule prints a full-width line of c
func (d *Document) Rule(c rune) *Document {
	return d.Line(strings.Repeat(string(c), d.width))
}

func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lf)
	}
	return d
}

// Cut feeds and partially cuts the paper
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{gs, 'V', 0x01})
	return d
}

// Bytes returns the stream built so far
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
