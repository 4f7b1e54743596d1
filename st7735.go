// Package st7735 controls a ST7735 TFT LCD display via 4-wire SPI.
//
// The ST7735 is a 16-bit color (RGB565) TFT controller supporting up to
// 162x132 pixels. Common display resolutions are 128x160 and 128x128.
//
// See the examples for how to use this package.
package st7735

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/flavioheleno/st7735/rgb565"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// ST7735 command bytes used by this driver.
const (
	cmdSWRESET = 0x01 // Software reset
	cmdSLPIN   = 0x10 // Enter sleep mode
	cmdSLPOUT  = 0x11 // Sleep out
	cmdNORON   = 0x13 // Normal display mode on
	cmdINVOFF  = 0x20 // Display inversion off
	cmdINVON   = 0x21 // Display inversion on
	cmdDISPOFF = 0x28 // Display off
	cmdDISPON  = 0x29 // Display on
	cmdCASET   = 0x2A // Column address set
	cmdRASET   = 0x2B // Row address set
	cmdRAMWR   = 0x2C // Memory write
	cmdMADCTL  = 0x36 // Memory access control
	cmdCOLMOD  = 0x3A // Interface pixel format
	cmdFRMCTR1 = 0xB1 // Frame rate control (normal mode)
	cmdFRMCTR2 = 0xB2 // Frame rate control (idle mode)
	cmdFRMCTR3 = 0xB3 // Frame rate control (partial mode)
	cmdINVCTR  = 0xB4 // Display inversion control
	cmdPWCTR1  = 0xC0 // Power control 1
	cmdPWCTR2  = 0xC1 // Power control 2
	cmdPWCTR3  = 0xC2 // Power control 3
	cmdPWCTR4  = 0xC3 // Power control 4
	cmdPWCTR5  = 0xC4 // Power control 5
	cmdVMCTR1  = 0xC5 // VCOM control 1
	cmdGMCTRP1 = 0xE0 // Positive gamma correction
	cmdGMCTRN1 = 0xE1 // Negative gamma correction
)

// Transport delivers command and data bytes to the panel controller.
//
// Implementations perform the hardware reset handshake in Init and frame every
// transfer with the data/command select and chip select signals. All methods
// block until the transfer completes.
type Transport interface {
	Init() error
	SendCommand(cmd byte) error
	SendData(data []byte) error
}

// SPITransport drives the panel over 4-wire SPI using periph.io.
//
// The SPI port is configured for Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// Chip select is driven in software so that command and data transfers can be
// individually bracketed.
type SPITransport struct {
	port spi.Port
	c    conn.Conn
	dc   gpio.PinOut // Data/Command select
	rst  gpio.PinOut // Reset
	cs   gpio.PinOut // Chip select (software driven)
	freq physic.Frequency
}

// NewSPITransport creates a transport on the given SPI port and control pins.
//
// freq is the SPI clock frequency; 0 selects the 16MHz default (the ST7735
// supports up to ~15MHz writes, most modules tolerate 16MHz).
func NewSPITransport(p spi.Port, dc, rst, cs gpio.PinOut, freq physic.Frequency) *SPITransport {
	if freq == 0 {
		freq = 16 * physic.MegaHertz
	}
	return &SPITransport{port: p, dc: dc, rst: rst, cs: cs, freq: freq}
}

// Init configures the control pins, brings up the SPI bus and performs the
// hardware reset handshake.
//
// The reset pulse is mandatory: RST idles high for 10ms, is driven low for
// 10ms, then released, after which the controller needs 120ms to complete its
// internal boot before the first command.
func (t *SPITransport) Init() error {
	if t.dc == nil || t.rst == nil || t.cs == nil {
		return errors.New("st7735: dc, rst and cs pins are required")
	}

	// Idle levels: command/data high (data), chip select high (inactive).
	if err := t.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("st7735: failed to configure DC pin: %w", err)
	}
	if err := t.cs.Out(gpio.High); err != nil {
		return fmt.Errorf("st7735: failed to configure CS pin: %w", err)
	}
	if err := t.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("st7735: failed to configure RST pin: %w", err)
	}

	c, err := t.port.Connect(t.freq, spi.Mode0, 8)
	if err != nil {
		return fmt.Errorf("st7735: failed to connect SPI: %w", err)
	}
	t.c = c

	// Hardware reset pulse.
	time.Sleep(10 * time.Millisecond)
	if err := t.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("st7735: failed to pull RST low: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := t.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("st7735: failed to pull RST high: %w", err)
	}
	// The controller boots internal state after reset release. Sending any
	// command before this settles yields undefined panel state.
	time.Sleep(120 * time.Millisecond)

	return nil
}

// SendCommand transmits a single command byte.
func (t *SPITransport) SendCommand(cmd byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return err
	}
	return t.tx([]byte{cmd})
}

// SendData transmits a data payload.
func (t *SPITransport) SendData(data []byte) error {
	if err := t.dc.Out(gpio.High); err != nil {
		return err
	}
	return t.tx(data)
}

// tx performs one chip-select bracketed transfer.
func (t *SPITransport) tx(b []byte) error {
	if err := t.cs.Out(gpio.Low); err != nil {
		return err
	}
	if err := t.c.Tx(b, nil); err != nil {
		_ = t.cs.Out(gpio.High)
		return err
	}
	return t.cs.Out(gpio.High)
}

// Opts is the configuration for the ST7735 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be between 1 and 256)
	H int // Height (default: 160, must be between 1 and 256)
}

// Common panel variants.
var (
	Opts128x160 = Opts{W: 128, H: 160}
	Opts128x128 = Opts{W: 128, H: 128}
	Opts80x160  = Opts{W: 80, H: 160}
	Opts128x64  = Opts{W: 128, H: 64}
)

// Dev is the device handle for the ST7735 display.
//
// Drawing primitives mutate the in-memory frame buffer only; nothing is
// transmitted until Update is called. The device is not safe for concurrent
// use; callers must serialize access.
type Dev struct {
	// Communication
	t Transport

	// Display geometry
	rect image.Rectangle

	// Pixel buffer: 2 bytes per pixel, big-endian RGB565, row-major
	buffer []byte

	// Theme colors
	fg     rgb565.Color
	bg     rgb565.Color
	accent rgb565.Color

	// State
	halted bool
}

// New creates a new ST7735 device on the given transport.
//
// opts can be nil to use defaults (128x160 display). The transport is
// initialized, the panel register sequence is sent, and the display is cleared
// to the background color so the panel never shows uninitialized memory. The
// whole sequence takes roughly 500ms of mandated settle delays.
func New(t Transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts128x160
	}

	// The column/row address payloads carry the end coordinate in one byte.
	if opts.W <= 0 || opts.W > 256 {
		return nil, errors.New("st7735: width must be between 1 and 256")
	}
	if opts.H <= 0 || opts.H > 256 {
		return nil, errors.New("st7735: height must be between 1 and 256")
	}

	d := &Dev{
		t:      t,
		rect:   image.Rect(0, 0, opts.W, opts.H),
		buffer: make([]byte, opts.W*opts.H*2),
	}

	if err := d.init(); err != nil {
		return nil, err
	}

	return d, nil
}

// NewSPI creates a new ST7735 device connected via 4-wire SPI.
//
// The dc (Data/Command), rst (Reset) and cs (Chip Select) GPIO pins must all
// be provided. opts can be nil to use defaults (128x160 display).
func NewSPI(p spi.Port, dc, rst, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	return New(NewSPITransport(p, dc, rst, cs, 0), opts)
}

// initStep is one command of the panel bring-up sequence: a command byte, an
// optional payload and an optional settle delay.
type initStep struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// initSequence is the ST7735 register bring-up. Byte values and delay
// placement must be reproduced exactly; the delays are lower bounds.
var initSequence = []initStep{
	{cmd: cmdSWRESET, delay: 150 * time.Millisecond},
	{cmd: cmdSLPOUT, delay: 120 * time.Millisecond},
	{cmd: cmdFRMCTR1, data: []byte{0x01, 0x2C, 0x2D}},
	{cmd: cmdFRMCTR2, data: []byte{0x01, 0x2C, 0x2D}},
	{cmd: cmdFRMCTR3, data: []byte{0x01, 0x2C, 0x2D, 0x01, 0x2C, 0x2D}},
	{cmd: cmdINVCTR, data: []byte{0x07}},
	{cmd: cmdPWCTR1, data: []byte{0xA2, 0x02, 0x84}},
	{cmd: cmdPWCTR2, data: []byte{0xC5}},
	{cmd: cmdPWCTR3, data: []byte{0x0A, 0x00}},
	{cmd: cmdPWCTR4, data: []byte{0x8A, 0x2A}},
	{cmd: cmdPWCTR5, data: []byte{0x8A, 0xEE}},
	{cmd: cmdVMCTR1, data: []byte{0x0E}},
	{cmd: cmdINVOFF},
	// MADCTL 0xC8: row and column address order reversed, BGR panel, for
	// the common 128x160 red-tab module. Other orientations would need a
	// different value; this driver keeps the fixed default.
	{cmd: cmdMADCTL, data: []byte{0xC8}},
	{cmd: cmdCOLMOD, data: []byte{0x05}, delay: 10 * time.Millisecond}, // 16-bit RGB565
	{cmd: cmdGMCTRP1, data: []byte{
		0x02, 0x1C, 0x07, 0x12, 0x37, 0x32, 0x29, 0x2D,
		0x29, 0x25, 0x2B, 0x39, 0x00, 0x01, 0x03, 0x10,
	}},
	{cmd: cmdGMCTRN1, data: []byte{
		0x03, 0x1D, 0x07, 0x06, 0x2E, 0x2C, 0x29, 0x2D,
		0x2E, 0x2E, 0x37, 0x3F, 0x00, 0x00, 0x02, 0x10,
	}},
	{cmd: cmdNORON, delay: 10 * time.Millisecond},
	{cmd: cmdDISPON, delay: 100 * time.Millisecond},
}

// init brings up the transport and sends the panel initialization sequence.
func (d *Dev) init() error {
	if err := d.t.Init(); err != nil {
		return err
	}

	d.SetThemeDefault()

	for _, step := range initSequence {
		if err := d.t.SendCommand(step.cmd); err != nil {
			return fmt.Errorf("st7735: init command 0x%02X failed: %w", step.cmd, err)
		}
		if len(step.data) > 0 {
			if err := d.t.SendData(step.data); err != nil {
				return fmt.Errorf("st7735: init data for 0x%02X failed: %w", step.cmd, err)
			}
		}
		if step.delay > 0 {
			time.Sleep(step.delay)
		}
	}

	// Never show uninitialized panel RAM.
	d.Fill(false)
	return d.Update()
}

// Width returns the display width in pixels.
func (d *Dev) Width() int {
	return d.rect.Dx()
}

// Height returns the display height in pixels.
func (d *Dev) Height() int {
	return d.rect.Dy()
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7735.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// SetForeground sets the theme foreground color.
func (d *Dev) SetForeground(c rgb565.Color) { d.fg = c }

// SetBackground sets the theme background color.
func (d *Dev) SetBackground(c rgb565.Color) { d.bg = c }

// SetAccent sets the theme accent color, used for highlights.
func (d *Dev) SetAccent(c rgb565.Color) { d.accent = c }

// Foreground returns the current theme foreground color.
func (d *Dev) Foreground() rgb565.Color { return d.fg }

// Background returns the current theme background color.
func (d *Dev) Background() rgb565.Color { return d.bg }

// Accent returns the current theme accent color.
func (d *Dev) Accent() rgb565.Color { return d.accent }

// SetTheme sets a complete color theme.
func (d *Dev) SetTheme(fg, bg, accent rgb565.Color) {
	d.fg = fg
	d.bg = bg
	d.accent = accent
}

// Pre-defined themes.
func (d *Dev) SetThemeDefault() { d.SetTheme(rgb565.White, rgb565.Black, rgb565.Cyan) }

func (d *Dev) SetThemeCyberpunk() { d.SetTheme(rgb565.Cyan, rgb565.DarkBlue, rgb565.Magenta) }

func (d *Dev) SetThemeMatrix() { d.SetTheme(rgb565.Green, rgb565.Black, rgb565.Lime) }

func (d *Dev) SetThemeSunset() { d.SetTheme(rgb565.Orange, rgb565.Purple, rgb565.Yellow) }

func (d *Dev) SetThemeOcean() { d.SetTheme(rgb565.SkyBlue, rgb565.Navy, rgb565.Cyan) }

func (d *Dev) SetThemeRetro() { d.SetTheme(rgb565.Yellow, rgb565.Brown, rgb565.Orange) }

func (d *Dev) SetThemeNeon() { d.SetTheme(rgb565.Magenta, rgb565.Black, rgb565.Cyan) }

// onColor resolves a boolean drawing flag to the theme color it selects.
func (d *Dev) onColor(on bool) rgb565.Color {
	if on {
		return d.fg
	}
	return d.bg
}

// SetPixel sets the pixel at (x, y) in the frame buffer.
//
// Coordinates outside the display are silently ignored. This is the single
// bounds-checked entry point all drawing primitives route through.
func (d *Dev) SetPixel(x, y int, c rgb565.Color) {
	if x < 0 || y < 0 || x >= d.rect.Max.X || y >= d.rect.Max.Y {
		return
	}
	idx := (y*d.rect.Max.X + x) * 2
	d.buffer[idx] = byte(c >> 8)
	d.buffer[idx+1] = byte(c)
}

// PixelAt returns the frame buffer pixel at (x, y), or black when out of range.
func (d *Dev) PixelAt(x, y int) rgb565.Color {
	if x < 0 || y < 0 || x >= d.rect.Max.X || y >= d.rect.Max.Y {
		return rgb565.Black
	}
	idx := (y*d.rect.Max.X + x) * 2
	return rgb565.Color(uint16(d.buffer[idx])<<8 | uint16(d.buffer[idx+1]))
}

// DrawPixel draws a pixel using the theme colors: foreground when on,
// background otherwise.
func (d *Dev) DrawPixel(x, y int, on bool) {
	d.SetPixel(x, y, d.onColor(on))
}

// DrawPixelRGB draws a pixel from 8-bit-per-channel RGB values.
func (d *Dev) DrawPixelRGB(x, y int, r, g, b uint8) {
	d.SetPixel(x, y, rgb565.New(r, g, b))
}

// Fill fills the entire frame buffer using the theme colors.
func (d *Dev) Fill(on bool) {
	d.FillColor(d.onColor(on))
}

// FillColor fills the entire frame buffer with the given color.
func (d *Dev) FillColor(c rgb565.Color) {
	hi, lo := byte(c>>8), byte(c)
	for i := 0; i < len(d.buffer); i += 2 {
		d.buffer[i] = hi
		d.buffer[i+1] = lo
	}
}

// DrawRectFilled draws a filled w×h rectangle with its top-left corner at
// (x, y), clipped at the display edges.
func (d *Dev) DrawRectFilled(x, y, w, h int, c rgb565.Color) {
	for j := y; j < y+h && j < d.rect.Max.Y; j++ {
		for i := x; i < x+w && i < d.rect.Max.X; i++ {
			d.SetPixel(i, j, c)
		}
	}
}

// DrawRect draws a rectangle outline using the theme colors.
func (d *Dev) DrawRect(x1, y1, x2, y2 int, on bool) {
	d.DrawRectColor(x1, y1, x2, y2, d.onColor(on))
}

// DrawRectColor draws a rectangle outline spanning the inclusive corner
// coordinates (x1, y1) and (x2, y2).
func (d *Dev) DrawRectColor(x1, y1, x2, y2 int, c rgb565.Color) {
	d.DrawHLineColor(x1, y1, x2-x1+1, c)
	d.DrawHLineColor(x1, y2, x2-x1+1, c)
	d.DrawVLineColor(x1, y1, y2-y1+1, c)
	d.DrawVLineColor(x2, y1, y2-y1+1, c)
}

// DrawHLine draws a horizontal line using the theme colors.
func (d *Dev) DrawHLine(x, y, w int, on bool) {
	d.DrawHLineColor(x, y, w, d.onColor(on))
}

// DrawHLineColor draws a horizontal line of length w starting at (x, y),
// clipped at the display edge.
func (d *Dev) DrawHLineColor(x, y, w int, c rgb565.Color) {
	for i := x; i < x+w && i < d.rect.Max.X; i++ {
		d.SetPixel(i, y, c)
	}
}

// DrawVLine draws a vertical line using the theme colors.
func (d *Dev) DrawVLine(x, y, h int, on bool) {
	d.DrawVLineColor(x, y, h, d.onColor(on))
}

// DrawVLineColor draws a vertical line of length h starting at (x, y),
// clipped at the display edge.
func (d *Dev) DrawVLineColor(x, y, h int, c rgb565.Color) {
	for j := y; j < y+h && j < d.rect.Max.Y; j++ {
		d.SetPixel(x, j, c)
	}
}

// DrawLine draws a line using the theme colors.
func (d *Dev) DrawLine(x1, y1, x2, y2 int, on bool) {
	d.DrawLineColor(x1, y1, x2, y2, d.onColor(on))
}

// DrawLineColor draws a line between (x1, y1) and (x2, y2) using the integer
// Bresenham algorithm. The plotted pixel set is identical regardless of
// endpoint order.
func (d *Dev) DrawLineColor(x1, y1, x2, y2 int, c rgb565.Color) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 >= x2 {
		sx = -1
	}
	if y1 >= y2 {
		sy = -1
	}
	err := dx - dy

	for {
		d.SetPixel(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Update flushes the frame buffer to the panel.
//
// It defines the full-screen addressable window via column and row address
// set, then streams the entire buffer as one memory write. There is no
// partial update; every call retransmits the full frame.
func (d *Dev) Update() error {
	if d.halted {
		return errors.New("st7735: halted")
	}

	w, h := d.rect.Max.X, d.rect.Max.Y

	if err := d.t.SendCommand(cmdCASET); err != nil {
		return err
	}
	if err := d.t.SendData([]byte{0x00, 0x00, 0x00, byte(w - 1)}); err != nil {
		return err
	}

	if err := d.t.SendCommand(cmdRASET); err != nil {
		return err
	}
	if err := d.t.SendData([]byte{0x00, 0x00, 0x00, byte(h - 1)}); err != nil {
		return err
	}

	if err := d.t.SendCommand(cmdRAMWR); err != nil {
		return err
	}
	return d.t.SendData(d.buffer)
}

// Draw rasterizes src into the frame buffer and flushes it to the panel.
// The dst rectangle specifies the destination region on the display.
//
// It implements the periph.io display.Drawer interface on top of the RGB565
// frame buffer. Unlike controllers with windowed RAM writes this driver
// always retransmits the full frame.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("st7735: halted")
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// The frame buffer already has the wire layout; draw straight into it.
	view := &rgb565.Image{
		Pix:    d.buffer,
		Stride: d.rect.Max.X * 2,
		Rect:   d.rect,
	}
	draw.Draw(view, dst, src, sp, draw.Src)

	return d.Update()
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	cmd := byte(cmdINVOFF)
	if invert {
		cmd = cmdINVON
	}
	return d.t.SendCommand(cmd)
}

// Halt turns the display off and puts the controller to sleep.
// After calling Halt, the device will not respond to further operations
// until it is re-initialized.
func (d *Dev) Halt() error {
	if err := d.t.SendCommand(cmdDISPOFF); err != nil {
		return err
	}
	if err := d.t.SendCommand(cmdSLPIN); err != nil {
		return err
	}
	d.halted = true
	return nil
}
