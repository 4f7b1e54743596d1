// Package rgb565 provides a 16-bit RGB565 image format for TFT display controllers.
//
// ST77xx/ILI93xx TFT controllers use 16 bits per pixel in 5-6-5 layout
// (5 bits red, 6 bits green, 5 bits blue), transmitted high byte first.
//
// Memory layout example for a 2-pixel row of pure red then pure blue:
//
//	Pixels: 0      1
//	Values: 0xF800 0x001F
//	Bytes:  0xF8 0x00 0x00 0x1F
//
// This package provides:
//
// - Color: a color type representing a packed RGB565 value
// - Model: a color model for converting standard Go colors to Color
// - Image: an image.Image implementation in controller byte order
// - Named color constants (Black, White, Red, ... Gold)
//
// Example usage:
//
//	// Create a 128x160 image
//	img := rgb565.NewImage(image.Rect(0, 0, 128, 160))
//
//	// Set a pixel to orange
//	img.SetRGB565(10, 20, rgb565.Orange)
//
//	// Get a pixel
//	c := img.RGB565At(10, 20)
//	println(uint16(c))  // Output: 64512
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(rgb565.White), image.Point{}, draw.Src)
package rgb565
