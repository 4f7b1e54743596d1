// Package st7735 controls a ST7735 TFT LCD display via 4-wire SPI.
//
// The ST7735 is a single-chip TFT controller driving up to 162×132 pixels in
// 16-bit RGB565 color. This driver implements the display.Drawer interface
// from periph.io on top of an in-memory frame buffer.
//
// # Display Characteristics
//
// - 16-bit RGB565 color (65K colors)
// - Support for common resolutions (128×160, 128×128, 80×160, 128×64)
// - Display inversion
// - In-memory frame buffer: drawing is free, Update transmits the frame
//
// # Hardware Connection
//
// Connect the ST7735 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V (or 5V depending on display)
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → GPIO (software chip select)
//	RES         → GPIO (reset)
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"github.com/flavioheleno/st7735"
//		"github.com/flavioheleno/st7735/rgb565"
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
//		// Get control GPIO pins
//		dcPin := gpioreg.ByName("GPIO25")
//		rstPin := gpioreg.ByName("GPIO24")
//		csPin := gpioreg.ByName("GPIO8")
//
//		// Create device (sends the full panel init sequence)
//		dev, _ := st7735.NewSPI(spiBus, dcPin, rstPin, csPin, &st7735.Opts128x160)
//		defer dev.Halt()
//
//		// Draw into the frame buffer (no bus traffic)
//		dev.FillColor(rgb565.Navy)
//		dev.DrawRectColor(10, 10, 117, 149, rgb565.Gold)
//		dev.DrawLineColor(10, 10, 117, 149, rgb565.White)
//
//		// Transmit the frame to the panel
//		dev.Update()
//	}
//
// # Initialization
//
// NewSPI performs the hardware reset handshake (RST pulse plus a mandatory
// 120ms boot wait) followed by the ST7735 register bring-up: software reset,
// sleep-out, frame rate, power and VCOM control, memory access control, pixel
// format, the gamma tables, and display-on. The sequence takes roughly 500ms
// of mandated settle delays, after which the screen shows the background
// color. Call Update after drawing to make changes visible.
//
// # Drawing
//
// Drawing primitives are pure in-memory mutations and never touch the bus:
//
//	dev.SetPixel(5, 5, rgb565.Red)         // explicit color
//	dev.DrawPixel(5, 6, true)              // theme foreground
//	dev.DrawLineColor(0, 0, 127, 159, rgb565.Cyan)
//	dev.DrawRectFilled(20, 20, 40, 30, rgb565.Teal)
//
// Coordinates outside the display are silently clipped; out-of-range drawing
// is not an error.
//
// Two-tone drawing entry points (DrawPixel, Fill, DrawRect, DrawHLine,
// DrawVLine, DrawLine) take an on/off flag resolved against the current
// theme, which keeps monochrome-oriented UI code working unchanged on the
// color panel:
//
//	dev.SetThemeMatrix()   // green on black
//	dev.Fill(false)        // background
//	dev.DrawRect(2, 2, 60, 30, true)
//
// # Using with the image package
//
// The device implements image drawing via its Draw method:
//
//	img := rgb565.NewImage(dev.Bounds())
//	// ... render into img ...
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// Every flush retransmits the entire frame; there is no partial update.
//
// # Concurrency
//
// The device owns its frame buffer exclusively and performs no internal
// locking. Transfers block until complete. Serialize access from multiple
// goroutines externally.
//
// # Datasheet
//
// For detailed register descriptions and timing information, see:
// https://www.displayfuture.com/Display/datasheet/controller/ST7735.pdf
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a display.Drawer.
package st7735
