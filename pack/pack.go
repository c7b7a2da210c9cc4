package pack

import (
	"encoding/binary"
	"math"

	"deedles.dev/pixconv/format"
)

// Pack encodes width unpacked pixels from src into dst using format f.
// src must hold at least 4*width components. Channels that f does not
// store are dropped and padding channels are written as all ones.
//
// Pack panics with a format.UnsupportedFormatError if f is not valid.
func Pack[T Component](f format.Format, src []T, dst []byte, width int) {
	switch src := any(src).(type) {
	case []uint8:
		Pack8(f, src, dst, width)
	case []uint16:
		Pack16(f, src, dst, width)
	case []float32:
		PackFloat(f, src, dst, width)
	}
}

// Pack8 is Pack with an 8 bit medium.
func Pack8(f format.Format, src []uint8, dst []byte, width int) {
	info := f.Info()
	if info.Storage == format.StorageBytes {
		packBytes8(info, src, dst, width)
		return
	}
	pack[uint8, unormOps[uint8]](info, src, dst, width)
}

// Pack16 is Pack with a 16 bit medium.
func Pack16(f format.Format, src []uint16, dst []byte, width int) {
	info := f.Info()
	if info.Storage == format.StorageUnorm16 {
		packUnorm16(info, src, dst, width)
		return
	}
	pack[uint16, unormOps[uint16]](info, src, dst, width)
}

// PackFloat is Pack with a float32 medium.
func PackFloat(f format.Format, src []float32, dst []byte, width int) {
	pack[float32, floatOps](f.Info(), src, dst, width)
}

func pack[T Component, M ops[T]](info *format.Info, src []T, dst []byte, width int) {
	for x := range width {
		in := src[x*4 : x*4+4 : x*4+4]
		px := dst[x*info.Size : (x+1)*info.Size]

		switch info.Storage {
		case format.StorageWord16:
			var w uint32
			for _, c := range info.Channels {
				w |= packedValue[T, M](in, c) << c.Shift
			}
			binary.NativeEndian.PutUint16(px, uint16(w))

		case format.StorageWord32:
			var w uint32
			for _, c := range info.Channels {
				w |= packedValue[T, M](in, c) << c.Shift
			}
			binary.NativeEndian.PutUint32(px, w)

		default:
			for _, c := range info.Channels {
				writeChannel[T, M](info.Storage, in, px, c)
			}
		}
	}
}

// packedValue returns the bits of channel c for a packed word.
func packedValue[T Component, M ops[T]](in []T, c format.Channel) uint32 {
	if c.Slot == format.SlotPad {
		return unormMax(c.Bits)
	}
	var m M
	return m.toUnorm(in[c.Slot], c.Bits)
}

func writeChannel[T Component, M ops[T]](storage format.Storage, in []T, px []byte, c format.Channel) {
	var m M
	pad := c.Slot == format.SlotPad

	switch storage {
	case format.StorageBytes:
		if pad {
			px[c.Index] = 0xff
			return
		}
		px[c.Index] = uint8(m.toUnorm(in[c.Slot], 8))

	case format.StorageUnorm16:
		v := uint16(0xffff)
		if !pad {
			v = uint16(m.toUnorm(in[c.Slot], 16))
		}
		binary.NativeEndian.PutUint16(px[c.Index*2:], v)

	case format.StorageHalf:
		v := uint16(halfOne)
		if !pad {
			v = m.toHalf(in[c.Slot])
		}
		binary.NativeEndian.PutUint16(px[c.Index*2:], v)

	case format.StorageFloat:
		v := float32(1)
		if !pad {
			v = m.toFloat(in[c.Slot])
		}
		binary.NativeEndian.PutUint32(px[c.Index*4:], math.Float32bits(v))

	default:
		panic("unreachable")
	}
}

func packBytes8(info *format.Info, src []uint8, dst []byte, width int) {
	for x := range width {
		in := src[x*4 : x*4+4 : x*4+4]
		px := dst[x*info.Size : (x+1)*info.Size]
		for _, c := range info.Channels {
			if c.Slot == format.SlotPad {
				px[c.Index] = 0xff
				continue
			}
			px[c.Index] = in[c.Slot]
		}
	}
}

func packUnorm16(info *format.Info, src []uint16, dst []byte, width int) {
	for x := range width {
		in := src[x*4 : x*4+4 : x*4+4]
		px := dst[x*info.Size : (x+1)*info.Size]
		for _, c := range info.Channels {
			v := uint16(0xffff)
			if c.Slot != format.SlotPad {
				v = in[c.Slot]
			}
			binary.NativeEndian.PutUint16(px[c.Index*2:], v)
		}
	}
}
