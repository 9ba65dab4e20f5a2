// Package ssd1306flip controls a SSD1306 OLED display via SPI in half-height
// double-buffered mode.
//
// The SSD1306 is a 1-bit monochrome OLED controller with 128×64 pixels of
// GDDRAM. This driver halves the multiplex ratio so the panel only scans 32
// rows at a time, renders into the half of GDDRAM that is not being scanned,
// and flips the display start line once per frame. The result is a
// tearing-free refresh at twice the effective rate, which the bundled scene
// renderer uses to fake four gray shades by temporal dithering.
//
// # Why half-height
//
// The controller has no vsync output and no readable status, so a full-frame
// update can never be synchronized with the scan beam: rewriting GDDRAM while
// it is being scanned tears. Halving the mux ratio makes the scanned window
// and the written window disjoint by construction. The trade-off is half the
// panel; full-screen true grayscale was considered and rejected because it
// reintroduces exactly the tearing this layout exists to avoid.
//
// # The start-line latch
//
// The display offset and mux registers latch at the next blanking interval,
// as documented. The start line (0x40|n) latches one blanking interval
// later than that — an undocumented behavior found empirically; the visible
// flip completes two frames after the command. The driver compensates only
// by discipline: exactly one start-line command per tick, issued for the
// half whose upload just finished. Re-verify this delay before trusting the
// driver on a different controller revision.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"context"
//
//		"github.com/flavioheleno/ssd1306flip"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Get Data/Command GPIO pin
//		dcPin := gpioreg.ByName("GPIO25")
//
//		// Create device
//		dev, _ := ssd1306flip.NewSPI(spiBus, dcPin, &ssd1306flip.Opts{
//			W: 128,
//			H: 64,
//		})
//		defer dev.Halt()
//
//		// Run the double-buffered render loop
//		loop, _ := ssd1306flip.NewLoop(dev, &ssd1306flip.Config{
//			Mode:         ssd1306flip.Centered,
//			DitherPhases: 3,
//		})
//		loop.Run(context.Background())
//	}
//
// # Geometry Modes
//
// The scanned 32-row window can be placed in several ways:
//
//	Centered      32 rows, vertically centered (default)
//	TopAligned    32 rows at the top of the panel
//	BottomAligned 32 rows at the bottom
//	Animated      Centered, with the offset bounced every tick
//	Zoom          all 64 rows with hardware line doubling, for comparison
//
// An optional active-low button cycles through the modes at runtime.
//
// # Dithering
//
// Flat regions are drawn in one of four logical shades (White, LightGray,
// DarkGray, Black). The grays are realized by alternating the pixel between
// on and off across consecutive frames at the physical refresh rate; at
// ~132Hz the eye integrates the flicker into an intermediate level. The
// cycle length is 2 or 3 frames (Config.DitherPhases); with 3 phases every
// third tick is a hold tick that skips rendering and lets the displayed
// half rest one extra frame.
//
// # Timing
//
// The frame scheduler paces itself against a wall-clock period (default
// 7572µs, roughly half the panel's refresh interval) with a deadline loop:
// sleep while the slack is large, spin when it is under ~1.5ms, absorb
// overruns by firing immediately on the next call. An overrun degrades to
// flicker, never to a crash or a tear.
//
// # Errors
//
// The part reports nothing back: no status register, no acknowledgement
// beyond the SPI transfer completing. Errors surfaced by this driver are
// therefore bus-level only (a failed Tx or GPIO write); there is no retry
// or recovery layer, matching hardware that cannot say what went wrong.
//
// # Datasheet
//
// For register descriptions and timing information, see:
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306flip
