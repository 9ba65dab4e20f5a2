package image1bit

import (
	"image"
	"image/color"
	"testing"
)

func TestBitRGBA(t *testing.T) {
	tests := []struct {
		name string
		bit  Bit
		want uint32
	}{
		{"off", Off, 0x0000},
		{"on", On, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.bit.RGBA()
			if r != tt.want || g != tt.want || b != tt.want || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, %x)",
					r, g, b, a, tt.want, tt.want, tt.want, uint32(0xFFFF))
			}
		})
	}
}

func TestBitString(t *testing.T) {
	if On.String() != "On" {
		t.Errorf("On.String() = %q, want %q", On.String(), "On")
	}
	if Off.String() != "Off" {
		t.Errorf("Off.String() = %q, want %q", Off.String(), "Off")
	}
}

func TestBitModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Bit
	}{
		{"bit passthrough on", On, On},
		{"bit passthrough off", Off, Off},
		{"black", color.Black, Off},
		{"white", color.White, On},
		{"dark gray rgb", color.RGBA{0x40, 0x40, 0x40, 0xFF}, Off},
		{"light gray rgb", color.RGBA{0xC0, 0xC0, 0xC0, 0xFF}, On},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BitModel.Convert(tt.input).(Bit)
			if result != tt.want {
				t.Errorf("BitModel.Convert(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestNewVerticalLSB(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantPanic  bool
		wantStride int
		wantPixLen int
	}{
		{"128x64", image.Rect(0, 0, 128, 64), false, 128, 1024},
		{"128x32", image.Rect(0, 0, 128, 32), false, 128, 512},
		{"4x8", image.Rect(0, 0, 4, 8), false, 4, 4},
		{"offset rect", image.Rect(10, 20, 14, 28), false, 4, 4},
		{"non-page height panics", image.Rect(0, 0, 4, 5), true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if (r != nil) != tt.wantPanic {
					t.Errorf("panic = %v, want panic = %v", r != nil, tt.wantPanic)
				}
			}()

			img := NewVerticalLSB(tt.rect)
			if !tt.wantPanic {
				if img.Rect != tt.rect {
					t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
				}
				if img.Stride != tt.wantStride {
					t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
				}
				if len(img.Pix) != tt.wantPixLen {
					t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
				}
			}
		})
	}
}

func TestVerticalLSBPacking(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 4, 16))

	// Top row of the first page is bit 0 of each column byte
	img.SetBit(0, 0, On)
	if img.Pix[0] != 0x01 {
		t.Errorf("Pix[0] = 0x%02X, want 0x01", img.Pix[0])
	}

	// Bottom row of the first page is bit 7
	img.SetBit(1, 7, On)
	if img.Pix[1] != 0x80 {
		t.Errorf("Pix[1] = 0x%02X, want 0x80", img.Pix[1])
	}

	// Second page starts a stride later
	img.SetBit(2, 8, On)
	if img.Pix[4+2] != 0x01 {
		t.Errorf("Pix[6] = 0x%02X, want 0x01", img.Pix[4+2])
	}
}

func TestVerticalLSBSetGet(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 4, 8))

	pattern := [][2]int{{0, 0}, {1, 3}, {2, 7}, {3, 4}}
	for _, p := range pattern {
		img.SetBit(p[0], p[1], On)
	}

	for _, p := range pattern {
		if !img.BitAt(p[0], p[1]) {
			t.Errorf("BitAt(%d, %d) = Off, want On", p[0], p[1])
		}
	}

	// Clearing works too
	img.SetBit(1, 3, Off)
	if img.BitAt(1, 3) {
		t.Error("BitAt(1, 3) = On after clearing, want Off")
	}
}

func TestVerticalLSBAt(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 2, 8))
	img.SetBit(0, 0, On)

	c := img.At(0, 0)
	b, ok := c.(Bit)
	if !ok {
		t.Errorf("At(0, 0) returned %T, want Bit", c)
	}
	if !b {
		t.Error("At(0, 0) = Off, want On")
	}
}

func TestVerticalLSBSet(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 2, 8))

	img.Set(0, 0, color.White)
	if !img.BitAt(0, 0) {
		t.Error("After Set(0, 0, color.White), BitAt(0, 0) = Off, want On")
	}

	img.Set(0, 0, color.Black)
	if img.BitAt(0, 0) {
		t.Error("After Set(0, 0, color.Black), BitAt(0, 0) = On, want Off")
	}
}

func TestVerticalLSBColorModel(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 4, 8))
	if img.ColorModel() != BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
}

func TestVerticalLSBBounds(t *testing.T) {
	rect := image.Rect(10, 16, 14, 24)
	img := NewVerticalLSB(rect)
	if img.Bounds() != rect {
		t.Errorf("Bounds() = %v, want %v", img.Bounds(), rect)
	}
}

func TestVerticalLSBOutOfBounds(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 4, 8))

	// Out of bounds reads return Off
	if img.BitAt(-1, 0) || img.BitAt(0, -1) || img.BitAt(4, 0) || img.BitAt(0, 8) {
		t.Error("out-of-bounds BitAt should return Off")
	}

	// Out of bounds writes do nothing
	img.SetBit(-1, 0, On)
	img.SetBit(0, -1, On)
	img.SetBit(4, 0, On)
	img.SetBit(0, 8, On)

	for _, b := range img.Pix {
		if b != 0 {
			t.Fatal("out-of-bounds SetBit modified the buffer")
		}
	}
}

func TestVerticalLSBOffsetRect(t *testing.T) {
	rect := image.Rect(100, 48, 104, 56)
	img := NewVerticalLSB(rect)

	img.SetBit(100, 48, On)
	if !img.BitAt(100, 48) {
		t.Error("SetBit(100, 48) then BitAt(100, 48) = Off, want On")
	}
	if img.Pix[0] != 0x01 {
		t.Errorf("Pix[0] = 0x%02X, want 0x01", img.Pix[0])
	}
}

func TestVerticalLSBPixOffset(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 8, 16))

	tests := []struct {
		x, y   int
		offset int
		mask   byte
	}{
		{0, 0, 0, 0x01},
		{0, 7, 0, 0x80},
		{3, 0, 3, 0x01},
		{0, 8, 8, 0x01}, // Second page, 8 bytes per page
		{5, 13, 13, 0x20},
	}

	for _, tt := range tests {
		offset, mask := img.pixOffset(tt.x, tt.y)
		if offset != tt.offset || mask != tt.mask {
			t.Errorf("pixOffset(%d, %d) = (%d, 0x%02X), want (%d, 0x%02X)",
				tt.x, tt.y, offset, mask, tt.offset, tt.mask)
		}
	}
}

func TestFillRect(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 8, 8))
	img.FillRect(2, 2, 4, 4, On)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := x >= 2 && x < 6 && y >= 2 && y < 6
			if bool(img.BitAt(x, y)) != want {
				t.Errorf("BitAt(%d, %d) = %v, want %v", x, y, img.BitAt(x, y), Bit(want))
			}
		}
	}

	// Clearing a sub-rectangle
	img.FillRect(3, 3, 2, 2, Off)
	if img.BitAt(3, 3) || img.BitAt(4, 4) {
		t.Error("FillRect(Off) did not clear the region")
	}
}

func TestFillRectClipped(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 4, 8))

	// Fill extending past every edge must not panic and must clip
	img.FillRect(-2, -2, 100, 100, On)

	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			if !img.BitAt(x, y) {
				t.Fatalf("BitAt(%d, %d) = Off after full-coverage fill", x, y)
			}
		}
	}
}

func TestDrawBitmap(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 16, 8))

	// 8x2 bitmap: full top row, alternating bottom row
	data := []byte{0xFF, 0xAA}
	img.DrawBitmap(4, 2, 8, 2, data)

	for x := 0; x < 8; x++ {
		if !img.BitAt(4+x, 2) {
			t.Errorf("BitAt(%d, 2) = Off, want On", 4+x)
		}
		want := x%2 == 0 // 0xAA: MSB first, even columns set
		if bool(img.BitAt(4+x, 3)) != want {
			t.Errorf("BitAt(%d, 3) = %v, want %v", 4+x, img.BitAt(4+x, 3), Bit(want))
		}
	}
}

func TestDrawBitmapTransparent(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 8, 8))
	img.FillRect(0, 0, 8, 8, On)

	// Clear bits in the bitmap must leave existing pixels alone
	img.DrawBitmap(0, 0, 8, 1, []byte{0x0F})

	for x := 0; x < 8; x++ {
		if !img.BitAt(x, 0) {
			t.Errorf("BitAt(%d, 0) = Off, clear bitmap bits must be transparent", x)
		}
	}
}

func TestDrawBitmapWideRows(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 16, 8))

	// 12-wide bitmap uses 2 bytes per row
	data := []byte{
		0xFF, 0xF0,
		0x80, 0x10,
	}
	img.DrawBitmap(0, 0, 12, 2, data)

	for x := 0; x < 12; x++ {
		if !img.BitAt(x, 0) {
			t.Errorf("BitAt(%d, 0) = Off, want On", x)
		}
	}
	if !img.BitAt(0, 1) || !img.BitAt(11, 1) {
		t.Error("corner bits of row 1 should be On")
	}
	if img.BitAt(1, 1) || img.BitAt(10, 1) {
		t.Error("inner bits of row 1 should be Off")
	}
}
