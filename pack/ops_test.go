package pack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var widths = []uint{1, 2, 4, 5, 6, 8, 10, 16}

func roundTrip[T Component, M ops[T]](t *testing.T, top uint) {
	var m M
	for _, bits := range widths {
		if bits > top {
			continue
		}
		for v := range unormMax(bits) + 1 {
			c := m.fromUnorm(v, bits)
			require.Equal(t, v, m.toUnorm(c, bits), "%v bits, value %#x", bits, v)
		}
	}
}

func TestRoundTrip8(t *testing.T) {
	roundTrip[uint8, unormOps[uint8]](t, 8)
}

func TestRoundTrip16(t *testing.T) {
	roundTrip[uint16, unormOps[uint16]](t, 16)
}

func TestRoundTripFloat(t *testing.T) {
	roundTrip[float32, floatOps](t, 16)
}

func TestFromUnormEndpoints(t *testing.T) {
	var o8 unormOps[uint8]
	var o16 unormOps[uint16]
	for _, bits := range widths {
		require.Equal(t, uint8(0), o8.fromUnorm(0, bits))
		require.Equal(t, uint8(0xff), o8.fromUnorm(unormMax(bits), bits))
		require.Equal(t, uint16(0), o16.fromUnorm(0, bits))
		require.Equal(t, uint16(0xffff), o16.fromUnorm(unormMax(bits), bits))
	}

	require.Equal(t, uint8(0x84), o8.fromUnorm(0x10, 5))
	require.Equal(t, uint8(0x88), o8.fromUnorm(0x8, 4))
	require.Equal(t, uint16(0x8080), o16.fromUnorm(0x80, 8))
}

func TestFloatClamp(t *testing.T) {
	var o8 unormOps[uint8]
	require.Equal(t, uint8(0xff), o8.fromFloat(2))
	require.Equal(t, uint8(0), o8.fromFloat(-1))
	require.Equal(t, uint8(0), o8.fromFloat(float32(math.NaN())))
	require.Equal(t, uint8(128), o8.fromFloat(0.5))

	var of floatOps
	require.Equal(t, uint32(1023), of.toUnorm(1.5, 10))
	require.Equal(t, uint32(0), of.toUnorm(float32(math.NaN()), 10))
	require.Equal(t, float32(1.5), of.fromFloat(1.5))
}

func TestHalf(t *testing.T) {
	var of floatOps
	require.Equal(t, uint16(halfOne), of.toHalf(1))
	require.Equal(t, float32(1), of.fromHalf(halfOne))
	require.Equal(t, float32(0.5), of.fromHalf(0x3800))
	require.Equal(t, float32(2), of.fromHalf(0x4000))
	require.Equal(t, float32(-1), of.fromHalf(0xbc00))
	require.Equal(t, uint16(0x4000), of.toHalf(2))

	var o8 unormOps[uint8]
	require.Equal(t, uint8(128), o8.fromHalf(0x3800))
	require.Equal(t, uint16(halfOne), o8.toHalf(0xff))
}
