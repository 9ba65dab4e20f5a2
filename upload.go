package ssd1306flip

import "errors"

// UploadAndClear streams one half of the local framebuffer to the matching
// GDDRAM half and zeroes the local copy, leaving the half pre-cleared for
// the next render pass.
//
// Exactly W*H/8/2 bytes are transferred. The caller must only upload the
// half that is not currently selected for display; the frame scheduler's
// alternation enforces that, not this method.
func (d *Dev) UploadAndClear(half int) error {
	if d.halted {
		return errors.New("ssd1306flip: halted")
	}
	if half != 0 && half != 1 {
		return errors.New("ssd1306flip: half index must be 0 or 1")
	}

	// Address window covering the half's pages
	pages := d.rect.Dy() / 8 / 2
	start := half * pages
	commands := []byte{
		setPageAddr, byte(start), byte(start + pages - 1),
		setColumnAddr, 0, byte(d.rect.Dx() - 1),
	}

	if err := d.sendCommands(commands); err != nil {
		return err
	}

	buf := d.fb.Pix[half*d.halfLen : (half+1)*d.halfLen]
	if err := d.sendData(buf); err != nil {
		return err
	}

	clear(buf)
	return nil
}
