package ssd1306flip

import (
	"errors"

	"github.com/flavioheleno/ssd1306flip/image1bit"
)

// Shade is one of the four logical colors the renderer works in. The panel
// itself is monochrome; the two gray shades exist only as dither patterns
// rotated across consecutive frames at the physical refresh rate.
type Shade uint8

// Logical colors, brightest first.
const (
	White Shade = iota
	LightGray
	DarkGray
	Black
)

// ditherSlots is the widest dither cycle supported.
const ditherSlots = 3

// DitherTable maps a Shade and a dither phase to the bit actually drawn
// that frame. The table width must match the scheduler's phase modulus;
// a 2-phase table under a 3-phase scheduler (or vice versa) would break
// the gray illusion without any other symptom.
type DitherTable struct {
	phases int
	lut    [4][ditherSlots]image1bit.Bit
}

// NewDitherTable builds the color-cycle table for a 2- or 3-phase cycle.
func NewDitherTable(phases int) (*DitherTable, error) {
	t := &DitherTable{phases: phases}
	switch phases {
	case 2:
		t.lut = [4][ditherSlots]image1bit.Bit{
			White:     {image1bit.On, image1bit.On},
			LightGray: {image1bit.On, image1bit.Off},
			DarkGray:  {image1bit.Off, image1bit.On},
			Black:     {image1bit.Off, image1bit.Off},
		}
	case 3:
		t.lut = [4][ditherSlots]image1bit.Bit{
			White:     {image1bit.On, image1bit.On, image1bit.On},
			LightGray: {image1bit.On, image1bit.On, image1bit.Off},
			DarkGray:  {image1bit.On, image1bit.Off, image1bit.Off},
			Black:     {image1bit.Off, image1bit.Off, image1bit.Off},
		}
	default:
		return nil, errors.New("ssd1306flip: dither phase count must be 2 or 3")
	}
	return t, nil
}

// Phases returns the table's phase modulus.
func (t *DitherTable) Phases() int {
	return t.phases
}

// Bit returns the bit drawn for shade s at the given dither phase.
func (t *DitherTable) Bit(s Shade, phase int) image1bit.Bit {
	return t.lut[s][phase%t.phases]
}

// Bitmap is a row-packed monochrome bitmap, most significant bit leftmost.
type Bitmap struct {
	W, H int
	Data []byte
}

// defaultLogo is the 24x16 diamond mark drawn in the middle of the scene.
var defaultLogo = Bitmap{
	W: 24,
	H: 16,
	Data: []byte{
		0x00, 0x18, 0x00,
		0x00, 0x3C, 0x00,
		0x00, 0x7E, 0x00,
		0x00, 0xFF, 0x00,
		0x01, 0xFF, 0x80,
		0x03, 0xE7, 0xC0,
		0x07, 0xC3, 0xE0,
		0x0F, 0x81, 0xF0,
		0x0F, 0x81, 0xF0,
		0x07, 0xC3, 0xE0,
		0x03, 0xE7, 0xC0,
		0x01, 0xFF, 0x80,
		0x00, 0xFF, 0x00,
		0x00, 0x7E, 0x00,
		0x00, 0x3C, 0x00,
		0x00, 0x18, 0x00,
	},
}

// Scene bar and strip layout, in rows.
const (
	stripBands      = 2
	stripBandH      = 3
	barBands        = 3
	barBandH        = 2
	barH            = barBands * barBandH
	barDivisor      = 9
	colorCycleTicks = 32 // ticks per band color rotation step
)

// bandShades is the 3-color rotation used by the strip and the bar.
var bandShades = [3]Shade{LightGray, DarkGray, Black}

// barShades are the three sub-bands of the moving bar, top to bottom.
var barShades = [barBands]Shade{LightGray, White, DarkGray}

// Scene draws the test pattern: a two-band color-cycle strip, a centered
// logo and a moving bar, all composed from the four logical shades.
type Scene struct {
	Table *DitherTable
	Logo  Bitmap
}

// NewScene creates a scene using the given dither table and the default
// logo bitmap.
func NewScene(table *DitherTable) *Scene {
	return &Scene{Table: table, Logo: defaultLogo}
}

// BarPosition returns the top row of the moving bar within a half-screen of
// rowSpan rows, and whether the bar is moving down. The position follows a
// triangle wave with period 2*(rowSpan-barH) ticks, slowed by barDivisor.
func BarPosition(frame uint32, rowSpan int) (pos int, down bool) {
	span := rowSpan - barH
	period := 2 * span
	t := int(frame / barDivisor % uint32(period))
	if t <= span {
		return t, true
	}
	return period - t, false
}

// Render draws one frame of the scene into the given half of the local
// framebuffer. Rows outside that half are never touched.
func (s *Scene) Render(fb *image1bit.VerticalLSB, frame uint32, half, ditherPhase int) {
	w := fb.Rect.Dx()
	rows := fb.Rect.Dy() / 2
	yOff := half * rows

	bit := func(sh Shade) image1bit.Bit {
		return s.Table.Bit(sh, ditherPhase)
	}

	// Decorative strip: two bands of three color-cycling segments.
	colorOffset := int(frame / colorCycleTicks)
	segW := w / 3
	for band := 0; band < stripBands; band++ {
		y := yOff + band*stripBandH
		for seg := 0; seg < 3; seg++ {
			sh := bandShades[(colorOffset+seg)%3]
			fb.FillRect(seg*segW, y, segW, stripBandH, bit(sh))
		}
	}

	pos, down := BarPosition(frame, rows)

	drawLogo := func() {
		fb.DrawBitmap((w-s.Logo.W)/2, yOff+(rows-s.Logo.H)/2, s.Logo.W, s.Logo.H, s.Logo.Data)
	}
	drawBar := func() {
		for i, sh := range barShades {
			fb.FillRect(0, yOff+pos+i*barBandH, w, barBandH, bit(sh))
		}
	}

	// Keep the bar in front of the logo in its direction of travel.
	if down {
		drawLogo()
		drawBar()
	} else {
		drawBar()
		drawLogo()
	}
}
