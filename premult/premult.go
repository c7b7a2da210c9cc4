// Package premult multiplies and divides the color channels of pixels
// by their alpha.
//
// The 8 bit functions operate directly on packed rows of the four 32
// bit byte formats that have alpha. The span functions operate on rows
// that have already been unpacked into R, G, B, A order by package
// pack and work for every medium.
package premult

import (
	"os"
	"sync/atomic"

	"deedles.dev/pixconv/format"
)

var vectorized atomic.Bool

func init() {
	vectorized.Store(vectorPixels() > 0 && os.Getenv("PIXCONV_SCALAR") != "1")
}

// Vectorized reports whether Premultiply8 uses the vectorized kernel
// for alpha-last rows.
func Vectorized() bool {
	return vectorized.Load()
}

// SetVectorized enables or disables the vectorized kernel and returns
// the previous setting. Both kernels produce identical results. The
// kernel stays disabled if the CPU's vectors cannot hold a pixel.
func SetVectorized(v bool) bool {
	return vectorized.Swap(v && vectorPixels() > 0)
}

// CanFast reports whether the premultiplication state of f can be
// changed in place by Premultiply8 and Unpremultiply8.
func CanFast(f format.Format) bool {
	switch f.Base() {
	case format.RGBA8888, format.BGRA8888, format.ARGB8888, format.ABGR8888:
		return true
	default:
		return false
	}
}

// mul8 returns c*a/255, rounded. The result is exact when a is 255.
func mul8(c, a uint8) uint8 {
	t := uint32(c)*uint32(a) + 128
	return uint8(((t >> 8) + t) >> 8)
}

// div8 returns c*255/a clamped to 255. a must not be 0.
func div8(c, a uint8) uint8 {
	return uint8(min(uint32(c)*255/uint32(a), 255))
}

// Premultiply8 premultiplies width pixels of a 4 byte per pixel row in
// place. If alphaFirst is true, alpha is the first byte of each pixel,
// otherwise it is the last.
func Premultiply8(p []byte, width int, alphaFirst bool) {
	if alphaFirst {
		premultiplyAlphaFirst(p, width)
		return
	}

	if vectorized.Load() {
		n := width - width%vectorPixels()
		premultiplyVector(p, n)
		p, width = p[n*4:], width-n
	}
	premultiplyAlphaLast(p, width)
}

func premultiplyAlphaFirst(p []byte, width int) {
	for x := range width {
		px := p[x*4 : x*4+4 : x*4+4]
		a := px[0]
		px[1] = mul8(px[1], a)
		px[2] = mul8(px[2], a)
		px[3] = mul8(px[3], a)
	}
}

func premultiplyAlphaLast(p []byte, width int) {
	for x := range width {
		px := p[x*4 : x*4+4 : x*4+4]
		a := px[3]
		px[0] = mul8(px[0], a)
		px[1] = mul8(px[1], a)
		px[2] = mul8(px[2], a)
	}
}

// Unpremultiply8 is the inverse of Premultiply8. Pixels with zero alpha
// become fully zero.
func Unpremultiply8(p []byte, width int, alphaFirst bool) {
	ai, ci := 3, 0
	if alphaFirst {
		ai, ci = 0, 1
	}

	for x := range width {
		px := p[x*4 : x*4+4 : x*4+4]
		a := px[ai]
		if a == 0 {
			clear(px)
			continue
		}
		px[ci] = div8(px[ci], a)
		px[ci+1] = div8(px[ci+1], a)
		px[ci+2] = div8(px[ci+2], a)
	}
}
