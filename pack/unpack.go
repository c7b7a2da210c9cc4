// Package pack converts rows of pixels between their packed in-memory
// formats and an unpacked representation with four components per
// pixel, always in R, G, B, A order. The component type, called the
// medium, is uint8, uint16 or float32.
//
// Formats are described by [format.Info]; the kernels here are driven
// entirely by those descriptors, so every valid format is handled by
// both directions.
package pack

import (
	"encoding/binary"
	"math"

	"deedles.dev/pixconv/format"
)

// Unpack decodes width pixels of format f from src into dst. dst must
// hold at least 4*width components. Channels missing from f are
// synthesized: alpha is opaque, luma formats replicate into all color
// channels and alpha-only formats unpack with zero color.
//
// Unpack panics with a format.UnsupportedFormatError if f is not
// valid.
func Unpack[T Component](f format.Format, src []byte, dst []T, width int) {
	switch dst := any(dst).(type) {
	case []uint8:
		Unpack8(f, src, dst, width)
	case []uint16:
		Unpack16(f, src, dst, width)
	case []float32:
		UnpackFloat(f, src, dst, width)
	}
}

// Unpack8 is Unpack with an 8 bit medium.
func Unpack8(f format.Format, src []byte, dst []uint8, width int) {
	info := f.Info()
	if info.Storage == format.StorageBytes {
		unpackBytes8(info, src, dst, width)
		return
	}
	unpack[uint8, unormOps[uint8]](info, src, dst, width)
}

// Unpack16 is Unpack with a 16 bit medium.
func Unpack16(f format.Format, src []byte, dst []uint16, width int) {
	info := f.Info()
	if info.Storage == format.StorageUnorm16 {
		unpackUnorm16(info, src, dst, width)
		return
	}
	unpack[uint16, unormOps[uint16]](info, src, dst, width)
}

// UnpackFloat is Unpack with a float32 medium.
func UnpackFloat(f format.Format, src []byte, dst []float32, width int) {
	unpack[float32, floatOps](f.Info(), src, dst, width)
}

func unpack[T Component, M ops[T]](info *format.Info, src []byte, dst []T, width int) {
	var m M
	one := m.one()

	for x := range width {
		px := src[x*info.Size : (x+1)*info.Size]
		out := dst[x*4 : x*4+4 : x*4+4]
		out[0], out[1], out[2], out[3] = 0, 0, 0, one

		for _, c := range info.Channels {
			if c.Slot == format.SlotPad {
				continue
			}
			out[c.Slot] = readChannel[T, M](info.Storage, px, c)
		}

		if info.Luma {
			out[1], out[2] = out[0], out[0]
		}
	}
}

func readChannel[T Component, M ops[T]](storage format.Storage, px []byte, c format.Channel) T {
	var m M
	switch storage {
	case format.StorageBytes:
		return m.fromUnorm(uint32(px[c.Index]), 8)
	case format.StorageWord16:
		w := uint32(binary.NativeEndian.Uint16(px))
		return m.fromUnorm(w>>c.Shift&unormMax(c.Bits), c.Bits)
	case format.StorageWord32:
		w := binary.NativeEndian.Uint32(px)
		return m.fromUnorm(w>>c.Shift&unormMax(c.Bits), c.Bits)
	case format.StorageUnorm16:
		return m.fromUnorm(uint32(binary.NativeEndian.Uint16(px[c.Index*2:])), 16)
	case format.StorageHalf:
		return m.fromHalf(binary.NativeEndian.Uint16(px[c.Index*2:]))
	case format.StorageFloat:
		return m.fromFloat(math.Float32frombits(binary.NativeEndian.Uint32(px[c.Index*4:])))
	default:
		panic("unreachable")
	}
}

// unpackBytes8 unpacks byte formats into an 8 bit medium. Channels are
// copied directly, so a conversion between two byte formats reduces
// to a swizzle.
func unpackBytes8(info *format.Info, src []byte, dst []uint8, width int) {
	for x := range width {
		px := src[x*info.Size : (x+1)*info.Size]
		out := dst[x*4 : x*4+4 : x*4+4]
		out[0], out[1], out[2], out[3] = 0, 0, 0, 0xff

		for _, c := range info.Channels {
			if c.Slot != format.SlotPad {
				out[c.Slot] = px[c.Index]
			}
		}

		if info.Luma {
			out[1], out[2] = out[0], out[0]
		}
	}
}

// unpackUnorm16 is the 16 bit counterpart of unpackBytes8.
func unpackUnorm16(info *format.Info, src []byte, dst []uint16, width int) {
	for x := range width {
		px := src[x*info.Size : (x+1)*info.Size]
		out := dst[x*4 : x*4+4 : x*4+4]
		out[0], out[1], out[2], out[3] = 0, 0, 0, 0xffff

		for _, c := range info.Channels {
			if c.Slot != format.SlotPad {
				out[c.Slot] = binary.NativeEndian.Uint16(px[c.Index*2:])
			}
		}

		if info.Luma {
			out[1], out[2] = out[0], out[0]
		}
	}
}
