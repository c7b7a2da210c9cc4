// Package format describes the in-memory pixel encodings understood by
// pixconv. A Format is an enumerated layout ID combined with a few tag
// bits, the most important of which is [Premultiplied]: two formats
// that differ only in that bit share a memory layout and differ only
// in how their color channels relate to alpha.
package format

import (
	"fmt"
	"iter"
)

// Format is an in-memory pixel encoding. The low byte selects a
// layout from the descriptor table; the remaining bits are tags.
type Format uint32

// Tag bits carried by a Format.
const (
	AlphaBit      Format = 1 << 8
	AlphaFirstBit Format = 1 << 9
	BGRBit        Format = 1 << 10
	Premultiplied Format = 1 << 11

	idMask Format = 0xff
)

// Layout IDs. These index the descriptor table.
const (
	idAny Format = iota
	idA8
	idR8
	idRG88
	idRGB888
	idBGR888
	idRGBX8888
	idRGBA8888
	idBGRX8888
	idBGRA8888
	idXRGB8888
	idARGB8888
	idXBGR8888
	idABGR8888
	idRGB565
	idRGBA4444
	idRGBA5551
	idRGBX1010102
	idRGBA1010102
	idBGRX1010102
	idBGRA1010102
	idXRGB2101010
	idARGB2101010
	idXBGR2101010
	idABGR2101010
	idR16
	idRG1616
	idRGBA16161616
	idRGBXFP16161616
	idRGBAFP16161616
	idBGRXFP16161616
	idBGRAFP16161616
	idXRGBFP16161616
	idARGBFP16161616
	idXBGRFP16161616
	idABGRFP16161616
	idRGBXFP32323232
	idRGBAFP32323232
	idYUV
	idDepth16
	idDepth32
	idDepth24Stencil8

	idCount
)

// Formats that this package can describe but that cannot be
// converted. Passing one of them to a conversion is a programming
// error.
const (
	Any             = idAny
	YUV             = idYUV
	Depth16         = idDepth16
	Depth32         = idDepth32
	Depth24Stencil8 = idDepth24Stencil8
)

// Single and dual channel formats.
const (
	A8   = idA8 | AlphaBit
	R8   = idR8
	RG88 = idRG88
	R16  = idR16

	RG1616 = idRG1616
)

// 24 and 32 bit formats with 8 bits per channel.
const (
	RGB888   = idRGB888
	BGR888   = idBGR888 | BGRBit
	RGBX8888 = idRGBX8888
	RGBA8888 = idRGBA8888 | AlphaBit
	BGRX8888 = idBGRX8888 | BGRBit
	BGRA8888 = idBGRA8888 | AlphaBit | BGRBit
	XRGB8888 = idXRGB8888
	ARGB8888 = idARGB8888 | AlphaBit | AlphaFirstBit
	XBGR8888 = idXBGR8888 | BGRBit
	ABGR8888 = idABGR8888 | AlphaBit | AlphaFirstBit | BGRBit

	RGBA8888Pre = RGBA8888 | Premultiplied
	BGRA8888Pre = BGRA8888 | Premultiplied
	ARGB8888Pre = ARGB8888 | Premultiplied
	ABGR8888Pre = ABGR8888 | Premultiplied
)

// 16 bit packed formats.
const (
	RGB565   = idRGB565
	RGBA4444 = idRGBA4444 | AlphaBit
	RGBA5551 = idRGBA5551 | AlphaBit

	RGBA4444Pre = RGBA4444 | Premultiplied
	RGBA5551Pre = RGBA5551 | Premultiplied
)

// 32 bit packed formats with 10 bits per color channel.
const (
	RGBX1010102 = idRGBX1010102
	RGBA1010102 = idRGBA1010102 | AlphaBit
	BGRX1010102 = idBGRX1010102 | BGRBit
	BGRA1010102 = idBGRA1010102 | AlphaBit | BGRBit
	XRGB2101010 = idXRGB2101010
	ARGB2101010 = idARGB2101010 | AlphaBit | AlphaFirstBit
	XBGR2101010 = idXBGR2101010 | BGRBit
	ABGR2101010 = idABGR2101010 | AlphaBit | AlphaFirstBit | BGRBit

	RGBA1010102Pre = RGBA1010102 | Premultiplied
	BGRA1010102Pre = BGRA1010102 | Premultiplied
	ARGB2101010Pre = ARGB2101010 | Premultiplied
	ABGR2101010Pre = ABGR2101010 | Premultiplied
)

// 64 bit formats with 16 bit unsigned normalized channels.
const (
	RGBA16161616    = idRGBA16161616 | AlphaBit
	RGBA16161616Pre = RGBA16161616 | Premultiplied
)

// Half-float formats.
const (
	RGBXFP16161616 = idRGBXFP16161616
	RGBAFP16161616 = idRGBAFP16161616 | AlphaBit
	BGRXFP16161616 = idBGRXFP16161616 | BGRBit
	BGRAFP16161616 = idBGRAFP16161616 | AlphaBit | BGRBit
	XRGBFP16161616 = idXRGBFP16161616
	ARGBFP16161616 = idARGBFP16161616 | AlphaBit | AlphaFirstBit
	XBGRFP16161616 = idXBGRFP16161616 | BGRBit
	ABGRFP16161616 = idABGRFP16161616 | AlphaBit | AlphaFirstBit | BGRBit

	RGBAFP16161616Pre = RGBAFP16161616 | Premultiplied
	BGRAFP16161616Pre = BGRAFP16161616 | Premultiplied
	ARGBFP16161616Pre = ARGBFP16161616 | Premultiplied
	ABGRFP16161616Pre = ABGRFP16161616 | Premultiplied
)

// 128 bit formats with 32 bit float channels.
const (
	RGBXFP32323232    = idRGBXFP32323232
	RGBAFP32323232    = idRGBAFP32323232 | AlphaBit
	RGBAFP32323232Pre = RGBAFP32323232 | Premultiplied
)

// UnsupportedFormatError is the value that conversion routines panic
// with when handed a format they cannot process. Such formats must be
// filtered out before they reach this package.
type UnsupportedFormatError struct {
	Format Format
}

func (err UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported pixel format: %v", err.Format)
}

func (f Format) id() Format { return f & idMask }

// Base returns f with the premultiplied tag cleared.
func (f Format) Base() Format { return f &^ Premultiplied }

// HasAlpha reports whether f has an alpha channel.
func (f Format) HasAlpha() bool { return f&AlphaBit != 0 }

// AlphaFirst reports whether the alpha channel of f precedes the
// color channels.
func (f Format) AlphaFirst() bool { return f&AlphaFirstBit != 0 }

// IsPremultiplied reports whether the color channels of f are
// premultiplied by alpha.
func (f Format) IsPremultiplied() bool { return f&Premultiplied != 0 }

// CanPremultiply reports whether f can carry the premultiplied tag.
// That is true of every format with alpha except A8, which has no
// color channels to multiply.
func (f Format) CanPremultiply() bool {
	return f.HasAlpha() && f.Base() != A8
}

// WithPremultiplied returns f with the premultiplied tag set or
// cleared. Formats that cannot be premultiplied are returned
// unchanged.
func (f Format) WithPremultiplied(premult bool) Format {
	if !f.CanPremultiply() {
		return f
	}
	if premult {
		return f | Premultiplied
	}
	return f.Base()
}

// Valid reports whether f is one of the formats that can be unpacked
// and packed.
func (f Format) Valid() bool {
	if f.id() >= idCount {
		return false
	}
	info := &infoTable[f.id()]
	if info.Storage == StorageNone || info.base != f.Base() {
		return false
	}
	return !f.IsPremultiplied() || f.CanPremultiply()
}

// Info returns the layout descriptor of f. It panics with an
// UnsupportedFormatError if f is not valid.
func (f Format) Info() *Info {
	if !f.Valid() {
		panic(UnsupportedFormatError{Format: f})
	}
	return &infoTable[f.id()]
}

// BytesPerPixel returns the size of one pixel of f. It panics if f is
// not valid.
func (f Format) BytesPerPixel() int {
	return f.Info().Size
}

// RowBytes returns the number of bytes used by width pixels of f,
// excluding any row padding.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

func (f Format) String() string {
	if f.id() >= idCount || infoTable[f.id()].base != f.Base() {
		return fmt.Sprintf("Format(%#x)", uint32(f))
	}
	name := infoTable[f.id()].Name
	if f.IsPremultiplied() {
		return name + "_PRE"
	}
	return name
}

// All yields every valid format, including premultiplied variants.
func All() iter.Seq[Format] {
	return func(yield func(Format) bool) {
		for i := range infoTable {
			info := &infoTable[i]
			if info.Storage == StorageNone {
				continue
			}
			if !yield(info.base) {
				return
			}
			if info.base.CanPremultiply() && !yield(info.base|Premultiplied) {
				return
			}
		}
	}
}

// NeedsPremultConversion reports whether converting from src to dst
// changes the premultiplication state of the color channels. That is
// only the case when both formats carry real color and alpha.
func NeedsPremultConversion(src, dst Format) bool {
	return src&dst&AlphaBit != 0 &&
		src.Base() != A8 &&
		dst.Base() != A8 &&
		src.IsPremultiplied() != dst.IsPremultiplied()
}
