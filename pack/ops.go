package pack

import (
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// Component is the type of a single unpacked channel.
type Component interface {
	uint8 | uint16 | float32
}

// bias is the rounding bias added before dividing by 2^N-1 when an N
// bit channel is rescaled into an integer medium. The values are
// fixed; consumers depend on the exact rounding they produce.
var bias = [17]uint32{
	1:  0,
	2:  1,
	4:  7,
	5:  0xf,
	6:  0x1f,
	8:  0x7f,
	10: 0x1ff,
	16: 0x7fff,
}

func unormMax(bits uint) uint32 {
	return 1<<bits - 1
}

// ops converts between raw channel encodings and a medium type.
type ops[T Component] interface {
	fromUnorm(v uint32, bits uint) T
	toUnorm(c T, bits uint) uint32
	fromHalf(h uint16) T
	toHalf(c T) uint16
	fromFloat(f float32) T
	toFloat(c T) float32
	one() T
}

// unormOps implements ops for the integer media.
type unormOps[T constraints.Unsigned] struct{}

func (unormOps[T]) fromUnorm(v uint32, bits uint) T {
	top := uint32(^T(0))
	m := unormMax(bits)
	if m == top {
		return T(v)
	}
	return T((v*top + bias[bits]) / m)
}

func (unormOps[T]) toUnorm(c T, bits uint) uint32 {
	top := uint32(^T(0))
	m := unormMax(bits)
	if m == top {
		return uint32(c)
	}
	return (uint32(c)*m + (top+1)/2 - 1) / top
}

func (o unormOps[T]) fromHalf(h uint16) T {
	return o.fromFloat(float16.Frombits(h).Float32())
}

func (o unormOps[T]) toHalf(c T) uint16 {
	return float16.Fromfloat32(o.toFloat(c)).Bits()
}

func (unormOps[T]) fromFloat(f float32) T {
	top := float32(^T(0))
	return T(float32(clamp01(f)*top) + 0.5)
}

func (unormOps[T]) toFloat(c T) float32 {
	return float32(c) / float32(^T(0))
}

func (unormOps[T]) one() T { return ^T(0) }

// floatOps implements ops for MediumFloat. Float channels pass
// through unclamped so that half and float pixels survive a round trip
// through the medium bit for bit.
type floatOps struct{}

func (floatOps) fromUnorm(v uint32, bits uint) float32 {
	return float32(v) / float32(unormMax(bits))
}

func (floatOps) toUnorm(c float32, bits uint) uint32 {
	m := float32(unormMax(bits))
	return uint32(float32(clamp01(c)*m) + 0.5)
}

func (floatOps) fromHalf(h uint16) float32 {
	return float16.Frombits(h).Float32()
}

func (floatOps) toHalf(c float32) uint16 {
	return float16.Fromfloat32(c).Bits()
}

func (floatOps) fromFloat(f float32) float32 { return f }

func (floatOps) toFloat(c float32) float32 { return c }

func (floatOps) one() float32 { return 1 }

// clamp01 clamps f to [0, 1]. NaN becomes 0.
func clamp01(f float32) float32 {
	if !(f > 0) {
		return 0
	}
	return min(f, 1)
}

const halfOne = 0x3c00
