package ssd1306flip

import "errors"

// GeometryMode selects how the half-height display window is mapped onto
// the panel.
type GeometryMode int

const (
	// Centered scans 32 rows, vertically centered on the panel.
	Centered GeometryMode = iota
	// TopAligned scans 32 rows at the top of the panel.
	TopAligned
	// BottomAligned scans 32 rows at the bottom of the panel.
	BottomAligned
	// Animated is Centered with the vertical offset bounced every tick.
	Animated
	// Zoom scans all 64 rows with the hardware zoom doubling each scanned
	// row, kept for comparison against the half-height modes.
	Zoom
)

// geometryModeCount is the number of modes the button cycles through.
const geometryModeCount = 5

func (m GeometryMode) String() string {
	switch m {
	case Centered:
		return "centered"
	case TopAligned:
		return "top"
	case BottomAligned:
		return "bottom"
	case Animated:
		return "animated"
	case Zoom:
		return "zoom"
	}
	return "unknown"
}

// geometryScript returns the fixed configuration script for mode m:
// mux ratio, vertical display offset and zoom, in that order. The script
// is the same bytes on every call for a given mode.
func (d *Dev) geometryScript(m GeometryMode) []byte {
	h := d.rect.Dy()
	half := h / 2

	mux, offset, zoom := half, h/4, byte(0)
	switch m {
	case TopAligned:
		offset = 0
	case BottomAligned:
		offset = half
	case Zoom:
		mux, offset, zoom = h, 0, 1
	}

	return []byte{
		setMultiplexRatio, byte(mux - 1),
		setDisplayOffset, byte(offset),
		setZoomIn, zoom,
	}
}

// ApplyGeometryMode reconfigures the scanned window for mode m.
//
// The mux ratio and offset latch at the next blanking interval; there is no
// way to observe or synchronize with that interval, so a mode change can
// flicker for one frame but never tears.
func (d *Dev) ApplyGeometryMode(m GeometryMode) error {
	if d.halted {
		return errors.New("ssd1306flip: halted")
	}
	if m < Centered || m > Zoom {
		return errors.New("ssd1306flip: invalid geometry mode")
	}
	d.mode = m
	return d.sendCommands(d.geometryScript(m))
}

// Mode returns the current geometry mode.
func (d *Dev) Mode() GeometryMode {
	return d.mode
}

// SelectDisplayedHalf points the display start line at GDDRAM half 0 or 1.
//
// The start line latches one blanking interval later than the offset and
// mux registers do: the visible switch completes two frames after the
// command is issued, not one. The part gives no feedback channel to detect
// the blanking interval, so the only guarantee callers get is that the
// command is atomic per frame (it either fully applies or is fully
// deferred). Issue exactly one per tick, for the half whose upload just
// finished.
func (d *Dev) SelectDisplayedHalf(half int) error {
	if d.halted {
		return errors.New("ssd1306flip: halted")
	}
	if half != 0 && half != 1 {
		return errors.New("ssd1306flip: half index must be 0 or 1")
	}
	return d.sendCommand(setStartLine | byte(half*d.rect.Dy()/2))
}

// setVerticalOffset re-issues the display offset, used by Animated mode to
// bounce the scanned window.
func (d *Dev) setVerticalOffset(offset int) error {
	return d.sendCommands([]byte{setDisplayOffset, byte(offset)})
}
