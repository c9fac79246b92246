package tone

import (
	"image"
	"image/color"
)

// Side is the width and height of a digraph image.
const Side = 256

// Buffer is the 256x256 grayscale intensity grid. Pixel i sits at
// x = i%256 (second byte of the pair), y = i/256 (first byte).
type Buffer struct {
	pix []uint8 // 0=black 255=white
}

// NewBuffer returns an all-black buffer.
func NewBuffer() *Buffer {
	return &Buffer{pix: make([]uint8, Side*Side)}
}

func (b *Buffer) ColorModel() color.Model { return color.GrayModel }
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, Side, Side) }
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= Side || y >= Side {
		return color.Gray{}
	}
	return color.Gray{Y: b.pix[y*Side+x]}
}

// Pix returns the underlying pixel slice for read-only iteration.
func (b *Buffer) Pix() []uint8 { return b.pix }

// SetPix sets a raw pixel (digraph index) if within bounds.
func (b *Buffer) SetPix(i int, v uint8) {
	if i >= 0 && i < len(b.pix) {
		b.pix[i] = v
	}
}

// Clear blanks the buffer.
func (b *Buffer) Clear() {
	for i := range b.pix {
		b.pix[i] = 0
	}
}

// Lit counts non-black pixels.
func (b *Buffer) Lit() int {
	n := 0
	for _, v := range b.pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Gray returns a copy of the buffer as an *image.Gray.
func (b *Buffer) Gray() *image.Gray {
	g := image.NewGray(b.Bounds())
	copy(g.Pix, b.pix)
	return g
}
