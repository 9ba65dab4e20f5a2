package image1bit

import (
	"image"
	"image/color"
)

// Bit is a 1-bit color.
type Bit bool

// Possible bit values.
const (
	On  Bit = true
	Off Bit = false
)

// RGBA converts the bit to standard RGBA.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit using 50% luminance as threshold.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// VerticalLSB is a 1-bit image where each byte encodes a column of 8
// vertically stacked pixels, least significant bit topmost.
type VerticalLSB struct {
	Pix    []byte          // Pixel data (8 pixels per byte, vertical)
	Stride int             // Bytes per page (equals image width)
	Rect   image.Rectangle // Image bounds
}

// NewVerticalLSB creates a new VerticalLSB image with the specified bounds.
// The height must be a multiple of 8 (since 8 pixels per byte).
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &VerticalLSB{Rect: r}
	}
	if h%8 != 0 {
		panic("image1bit: height must be a multiple of 8")
	}

	return &VerticalLSB{
		Pix:    make([]byte, w*h/8),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *VerticalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *VerticalLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit at (x, y).
func (p *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
func (p *VerticalLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *VerticalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// FillRect fills the rectangle (x, y, w, h) with the bit value, clipped to
// the image bounds.
func (p *VerticalLSB) FillRect(x, y, w, h int, b Bit) {
	r := image.Rect(x, y, x+w, y+h).Intersect(p.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			p.SetBit(px, py, b)
		}
	}
}

// DrawBitmap blits a row-packed monochrome bitmap at (x, y).
// Each bitmap row occupies (w+7)/8 bytes, most significant bit leftmost.
// Set bits are drawn as On; clear bits are transparent.
func (p *VerticalLSB) DrawBitmap(x, y, w, h int, data []byte) {
	rowBytes := (w + 7) / 8
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			byt := data[row*rowBytes+col/8]
			if byt&(0x80>>uint(col%8)) != 0 {
				p.SetBit(x+col, y+row, On)
			}
		}
	}
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Memory layout: byte (y/8)*Stride+x holds the 8-pixel column at x in page
// y/8; bit y%8 selects the row within the page, LSB on top.
func (p *VerticalLSB) pixOffset(x, y int) (offset int, mask byte) {
	px, py := x-p.Rect.Min.X, y-p.Rect.Min.Y
	offset = (py/8)*p.Stride + px
	mask = 1 << uint(py%8)
	return
}
