// Package rgb565 provides a 16-bit RGB565 image format for TFT color displays.
//
// Pixels are stored big-endian, two bytes per pixel: the high byte carries the
// 5 red bits and the top 3 green bits, the low byte carries the remaining
// 3 green bits and the 5 blue bits. This matches the memory-write order of
// ST77xx/ILI93xx display controllers.
package rgb565

import (
	"image"
	"image/color"
)

// Color is a 16-bit color in 5-6-5 layout: RRRRRGGG GGGBBBBB.
type Color uint16

// Named colors, packed as RGB565.
const (
	Black     Color = 0x0000
	White     Color = 0xFFFF
	Red       Color = 0xF800
	Green     Color = 0x07E0
	Blue      Color = 0x001F
	Cyan      Color = 0x07FF
	Magenta   Color = 0xF81F
	Yellow    Color = 0xFFE0
	Orange    Color = 0xFC00
	Gray      Color = 0x8410
	Pink      Color = 0xF81F
	Purple    Color = 0x780F
	Lime      Color = 0x87E0
	Navy      Color = 0x0010
	Teal      Color = 0x0410
	Brown     Color = 0x8200
	DarkGreen Color = 0x0320
	DarkBlue  Color = 0x0011
	SkyBlue   Color = 0x5D1F
	Gold      Color = 0xFEA0
)

// New packs an 8-bit-per-channel RGB triple into a Color by bit truncation.
func New(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3)
}

// RGBA converts the Color to standard 16-bit-per-channel RGBA.
// Each truncated channel is expanded by replicating its high bits.
func (c Color) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1F
	g6 := uint32(c>>5) & 0x3F
	b5 := uint32(c) & 0x1F
	// 5-bit and 6-bit values scaled to the full 16-bit range.
	r = r5<<11 | r5<<6 | r5<<1 | r5>>4
	g = g6<<10 | g6<<4 | g6>>2
	b = b5<<11 | b5<<6 | b5<<1 | b5>>4
	return r, g, b, 0xFFFF
}

// toColor converts any color.Color to an RGB565 Color.
func toColor(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns 16-bit channels; take the top 8 bits of each.
	return New(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts colors to Color.
var Model = color.ModelFunc(toColor)

// Image is an in-memory RGB565 image with two bytes per pixel, big-endian,
// in row-major order.
type Image struct {
	Pix    []byte          // Pixel data (2 bytes per pixel, high byte first)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a new Image with the specified bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	stride := w * 2
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the Color of the pixel at (x, y).
func (p *Image) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	offset := p.PixOffset(x, y)
	return Color(uint16(p.Pix[offset])<<8 | uint16(p.Pix[offset+1]))
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.setOffset(p.PixOffset(x, y), Model.Convert(c).(Color))
}

// SetRGB565 sets the Color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.setOffset(p.PixOffset(x, y), c)
}

// setOffset writes both bytes of a pixel, high byte first.
func (p *Image) setOffset(offset int, c Color) {
	p.Pix[offset] = byte(c >> 8)
	p.Pix[offset+1] = byte(c)
}

// PixOffset returns the byte offset of the first byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}
