// Package image1bit provides a 1-bit monochrome image format for SSD1306-class
// display controllers.
//
// The SSD1306 stores pixels in pages of 8 rows. Each byte in GDDRAM holds a
// column of 8 vertically stacked pixels with the least significant bit at the
// top, and a full page is one byte-high strip spanning the panel width.
//
// Memory layout example for a 4-column page:
//
//	Columns: 0    1    2    3
//	Bytes:   0x01 0x80 0xFF 0x00
//	         (0x01 = only the top row lit)
//	         (0x80 = only the bottom row lit)
//	         (0xFF = all 8 rows lit)
//
// This package provides:
//
// - Bit: a 1-bit color (On or Off)
// - BitModel: a color model for converting standard Go colors to Bit
// - VerticalLSB: an image.Image implementation matching the GDDRAM layout
// - FillRect and DrawBitmap: the drawing primitives used by the render loop
//
// Example usage:
//
//	// Create a 128x64 image
//	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
//
//	// Set a pixel
//	img.SetBit(10, 20, image1bit.On)
//
//	// Get a pixel
//	b := img.BitAt(10, 20)
//	println(bool(b)) // Output: true
//
//	// Fill a rectangle
//	img.FillRect(0, 0, 128, 8, image1bit.On)
//
// Because the packing matches GDDRAM exactly, a contiguous slice of Pix can
// be streamed to the controller without any conversion.
package image1bit
