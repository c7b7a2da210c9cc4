package upload

import (
	"encoding/binary"

	"deedles.dev/pixconv/format"
)

// Features is a set of optional capabilities of a GLES driver.
type Features uint32

const (
	// FormatConversion means that the driver accepts data in a format
	// different from the internal format of a texture.
	FormatConversion Features = 1 << iota

	AlphaTextures
	TextureRG
	TextureBGRA8888
	TextureNorm16
	TextureRGBA1010102
	TextureHalfFloat
)

// Has reports whether all of the features in want are present.
func (f Features) Has(want Features) bool {
	return f&want == want
}

// GLES is a Driver for OpenGL ES. Its internal texture formats must
// match the format of the uploaded data, so bitmaps are converted to
// the closest format that the enabled Features allow.
type GLES struct {
	Features Features
}

var littleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

func (d GLES) CanConvert(src, internal format.Format) bool {
	if !d.Features.Has(FormatConversion) {
		return false
	}
	if src == internal {
		return true
	}

	if !d.Features.Has(AlphaTextures) && (src == format.A8 || internal == format.A8) {
		return false
	}
	if !d.Features.Has(TextureRG) && src == format.RG88 {
		return false
	}

	return true
}

func (d GLES) ClosestFormat(internal format.Format) format.Format {
	internal.Info() // Panics on invalid formats.
	pre := internal.IsPremultiplied()

	switch internal.Base() {
	case format.A8, format.R8, format.RGB888, format.RGBA8888,
		format.RGB565, format.RGBA4444, format.RGBA5551:
		return internal

	case format.RG88:
		if d.Features.Has(TextureRG) {
			return internal
		}
		return d.ClosestFormat(format.RGB888)

	case format.BGR888:
		return d.ClosestFormat(format.RGB888)

	case format.R16:
		if d.Features.Has(TextureNorm16) {
			return internal
		}
		return d.ClosestFormat(format.R8)

	case format.RG1616:
		if d.Features.Has(TextureNorm16 | TextureRG) {
			return internal
		}
		return d.ClosestFormat(format.RG88)

	case format.RGBA16161616:
		if d.Features.Has(TextureNorm16) {
			return internal
		}
		return d.ClosestFormat(format.RGBA8888.WithPremultiplied(pre))

	case format.BGRA8888:
		if d.Features.Has(TextureBGRA8888) {
			return internal
		}
		return d.ClosestFormat(format.RGBA8888.WithPremultiplied(pre))

	case format.RGBX8888, format.BGRX8888, format.XRGB8888, format.XBGR8888:
		return d.ClosestFormat(format.RGBA8888Pre)

	case format.ARGB8888, format.ABGR8888:
		return d.ClosestFormat(format.RGBA8888.WithPremultiplied(pre))

	case format.ABGR2101010:
		if littleEndian && d.Features.Has(TextureRGBA1010102) {
			return internal
		}
		return d.ClosestFormat(format.RGBA8888.WithPremultiplied(pre))

	case format.RGBX1010102, format.RGBA1010102, format.BGRX1010102, format.BGRA1010102,
		format.XRGB2101010, format.ARGB2101010, format.XBGR2101010:
		return d.ClosestFormat(format.ABGR2101010.WithPremultiplied(pre))

	case format.RGBXFP16161616, format.RGBAFP16161616:
		if d.Features.Has(TextureHalfFloat) {
			return internal
		}
		return d.ClosestFormat(format.RGBA8888.WithPremultiplied(pre))

	case format.BGRXFP16161616, format.BGRAFP16161616, format.XRGBFP16161616,
		format.ARGBFP16161616, format.XBGRFP16161616, format.ABGRFP16161616:
		return d.ClosestFormat(format.RGBAFP16161616.WithPremultiplied(pre))

	case format.RGBXFP32323232, format.RGBAFP32323232:
		if d.Features.Has(TextureHalfFloat) {
			return internal
		}
		return d.ClosestFormat(format.RGBAFP16161616.WithPremultiplied(pre))
	}

	panic(format.UnsupportedFormatError{Format: internal})
}
