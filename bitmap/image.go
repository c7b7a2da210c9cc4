package bitmap

import (
	"image"
	"image/color"

	"deedles.dev/pixconv/format"
	"deedles.dev/pixconv/pack"
	"deedles.dev/pixconv/premult"
)

// Model implements color.Model using a Format.
type Model struct {
	Format format.Format
}

func (m Model) Convert(c color.Color) color.Color {
	fc := Color{Format: m.Format}
	r, g, b, a := c.RGBA()
	px := []uint16{uint16(r), uint16(g), uint16(b), uint16(a)}
	if !m.Format.IsPremultiplied() {
		premult.UnpremultiplySpan(px, 1)
	}
	pack.Pack16(m.Format, px, fc.Slice(), 1)
	return &fc
}

// Color implements color.Color using a Format.
type Color struct {
	Format format.Format

	// Data contains the pixel data for the color. Only some bytes of
	// the array are used, dependant on the size of a pixel of Format.
	Data [16]byte
}

// Slice returns a slice of Data correctly sized for the color's format.
func (c *Color) Slice() []byte {
	return c.slice(c.Format.BytesPerPixel())
}

func (c *Color) slice(size int) []byte {
	return c.Data[:size:size]
}

// RGBA returns the alpha-premultiplied color. Colors of formats that
// are not premultiplied are multiplied the way color.NRGBA64 does it.
func (c *Color) RGBA() (r, g, b, a uint32) {
	var px [4]uint16
	pack.Unpack16(c.Format, c.Slice(), px[:], 1)
	if !c.Format.IsPremultiplied() {
		premult.PremultiplySpan(px[:], 1)
	}
	return uint32(px[0]), uint32(px[1]), uint32(px[2]), uint32(px[3])
}

func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

func (b *Buffer) ColorModel() color.Model { return Model{Format: b.format} }

func (b *Buffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return &Color{Format: b.format}
	}

	size := b.format.BytesPerPixel()
	c := Color{Format: b.format}

	i := b.pixOffset(x, y, size)
	copy(c.slice(size), b.pix[i:i+size:i+size])

	return &c
}

func (b *Buffer) pixOffset(x, y, size int) int {
	return (b.stride * y) + (x * size)
}

func (b *Buffer) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return
	}

	size := b.format.BytesPerPixel()
	i := b.pixOffset(x, y, size)
	c1 := b.ColorModel().Convert(c).(*Color)
	copy(b.pix[i:i+size:i+size], c1.slice(size))
}
