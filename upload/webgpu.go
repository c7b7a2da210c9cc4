package upload

import (
	"deedles.dev/pixconv/format"
	"github.com/gogpu/gputypes"
)

// WebGPU is a Driver for WebGPU. WebGPU copies texture data verbatim,
// so bitmaps must always be supplied in the exact format of the
// texture, and only a few texture formats correspond to a pixel
// format at all.
type WebGPU struct{}

func (WebGPU) CanConvert(src, internal format.Format) bool {
	return false
}

func (WebGPU) ClosestFormat(internal format.Format) format.Format {
	pre := internal.IsPremultiplied()

	switch base := internal.Base(); {
	case base == format.R8:
		return format.R8
	case base == format.BGRA8888:
		return internal
	case base == format.A8:
		return format.RGBA8888
	case format.MediumFor(base) == format.Medium8:
		return format.RGBA8888.WithPremultiplied(pre)
	default:
		return format.RGBAFP32323232.WithPremultiplied(pre)
	}
}

// TextureFormat returns the WebGPU texture format that stores pixels
// of f without conversion. The boolean result is false if there is no
// such texture format.
func TextureFormat(f format.Format) (gputypes.TextureFormat, bool) {
	switch f.Base() {
	case format.R8:
		return gputypes.TextureFormatR8Unorm, true
	case format.RGBA8888:
		return gputypes.TextureFormatRGBA8Unorm, true
	case format.BGRA8888:
		return gputypes.TextureFormatBGRA8Unorm, true
	case format.RGBAFP32323232:
		return gputypes.TextureFormatRGBA32Float, true
	default:
		return gputypes.TextureFormatUndefined, false
	}
}

// FormatFor returns the pixel format of data for a texture of format
// tf. The sRGB variants share the memory layout of their linear
// counterparts.
func FormatFor(tf gputypes.TextureFormat) (format.Format, bool) {
	switch tf {
	case gputypes.TextureFormatR8Unorm:
		return format.R8, true
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		return format.RGBA8888, true
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return format.BGRA8888, true
	case gputypes.TextureFormatRGBA32Float:
		return format.RGBAFP32323232, true
	default:
		return 0, false
	}
}
