package ssd1306flip

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/flavioheleno/ssd1306flip/image1bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// SSD1306 command opcodes used by this driver.
const (
	setMemoryMode         = 0x20
	setColumnAddr         = 0x21
	setPageAddr           = 0x22
	setStartLine          = 0x40
	setContrast           = 0x81
	setChargePump         = 0x8D
	setSegmentRemap       = 0xA1
	setDisplayAllOnResume = 0xA4
	setNormalDisplay      = 0xA6
	setInvertDisplay      = 0xA7
	setMultiplexRatio     = 0xA8
	setDisplayOff         = 0xAE
	setDisplayOn          = 0xAF
	setComScanDec         = 0xC8
	setDisplayOffset      = 0xD3
	setDisplayClockDiv    = 0xD5
	setZoomIn             = 0xD6
	setPrecharge          = 0xD9
	setComPins            = 0xDA
	setVCOMDeselect       = 0xDB
)

// Opts is the configuration for the SSD1306 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be ≤128)
	H int // Height (default: 64, must be a multiple of 16 and ≤64)

	// Mode is the initial half-height geometry mode.
	Mode GeometryMode

	// Optional hardware reset pin
	RST gpio.PinIO // Reset pin (optional, nil if not used)
}

// Dev is the device handle for the SSD1306 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinIO  // Reset pin (optional)

	// Display geometry
	rect image.Rectangle
	mode GeometryMode

	// Local framebuffer: two vertically stacked half-screens, each halfLen
	// bytes, in GDDRAM page packing. The half not selected for display is
	// the only one ever written.
	fb      *image1bit.VerticalLSB
	halfLen int

	// State
	halted bool
}

// New creates a new SSD1306 device on an already established connection.
//
// The dc (Data/Command) GPIO pin must be provided and configured as an
// output. opts can be nil to use defaults (128x64 display, centered mode).
func New(c conn.Conn, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	// Apply defaults and validate options
	if opts == nil {
		opts = &Opts{W: 128, H: 64}
	}

	if opts.W <= 0 || opts.W > 128 {
		return nil, errors.New("ssd1306flip: width must be between 1 and 128")
	}
	if opts.H <= 0 || opts.H%16 != 0 || opts.H > 64 {
		return nil, errors.New("ssd1306flip: height must be a multiple of 16 between 16 and 64")
	}
	if opts.Mode < Centered || opts.Mode > Zoom {
		return nil, errors.New("ssd1306flip: invalid geometry mode")
	}

	d := &Dev{
		c:       c,
		dc:      dc,
		rst:     opts.RST,
		rect:    image.Rect(0, 0, opts.W, opts.H),
		mode:    opts.Mode,
		fb:      image1bit.NewVerticalLSB(image.Rect(0, 0, opts.W, opts.H)),
		halfLen: opts.W * opts.H / 8 / 2,
	}

	// Initialize the display
	if err := d.init(opts); err != nil {
		return nil, err
	}

	return d, nil
}

// NewSPI creates a new SSD1306 device connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0 (CPOL=0, CPHA=0), 8-bit
// transfers.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	// SSD1306 supports Mode0 (CPOL=0, CPHA=0) or Mode3 (CPOL=1, CPHA=1)
	// Using Mode0 and 10MHz (maximum rated for the part)
	c, err := p.Connect(10*1000000, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return New(c, dc, opts)
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	// Hardware reset sequence (if RST pin is provided)
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1306flip: failed to pull RST low: %w", err)
		}
		time.Sleep(10 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1306flip: failed to pull RST high: %w", err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Build initialization command sequence
	cmds := []byte{
		setDisplayOff,
		setDisplayClockDiv, 0x80, // Default oscillator frequency
		setChargePump, 0x14, // Enable internal charge pump
		setMemoryMode, 0x00, // Horizontal addressing
		setSegmentRemap | 0x01,
		setComScanDec,
		setComPins, 0x12,
		setPrecharge, 0xF1,
		setVCOMDeselect, 0x40,
		setContrast, 0xCF,
		setDisplayAllOnResume,
		setNormalDisplay,
	}

	// Half-height geometry (mux ratio, vertical offset, zoom)
	cmds = append(cmds, d.geometryScript(opts.Mode)...)

	if err := d.sendCommands(cmds); err != nil {
		return err
	}

	// Clear display RAM (both halves)
	if err := d.clearRAM(); err != nil {
		return err
	}

	// Turn display ON
	return d.sendCommand(setDisplayOn)
}

// clearRAM clears all pixels in the display RAM, including the half that is
// not scanned in half-height mode.
func (d *Dev) clearRAM() error {
	commands := []byte{
		setPageAddr, 0, byte(d.rect.Dy()/8 - 1),
		setColumnAddr, 0, byte(d.rect.Dx() - 1),
	}

	if err := d.sendCommands(commands); err != nil {
		return err
	}

	zeros := make([]byte, d.rect.Dx()*d.rect.Dy()/8)
	return d.sendData(zeros)
}

// sendCommand sends a single command byte.
func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommands([]byte{cmd})
}

// sendCommands sends a slice of command bytes. The transfer is synchronous;
// the bus is left ready for data on return.
func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

// sendData sends a slice of data bytes.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Framebuffer returns the local framebuffer.
//
// The buffer covers both half-screens; the render loop owns the alternation
// discipline that keeps writes away from the half currently on screen.
func (d *Dev) Framebuffer() *image1bit.VerticalLSB {
	return d.fb
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errors.New("ssd1306flip: halted")
	}
	return d.sendCommands([]byte{setContrast, contrast})
}

// Invert inverts the display colors (black becomes white and vice versa).
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errors.New("ssd1306flip: halted")
	}
	mode := byte(setNormalDisplay)
	if invert {
		mode = setInvertDisplay
	}
	return d.sendCommand(mode)
}

// Halt powers off the display.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommand(setDisplayOff)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306flip.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
