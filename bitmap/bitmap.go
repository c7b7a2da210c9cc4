// Package bitmap defines the pixel containers that pixconv converts
// between and provides a heap-backed implementation of them.
package bitmap

import (
	"iter"

	"deedles.dev/pixconv/format"
)

// Access describes how mapped bitmap memory will be used.
type Access uint8

const (
	AccessRead Access = 1 << iota
	AccessWrite

	AccessReadWrite = AccessRead | AccessWrite
)

// MapHint carries advice to the implementation of Bitmap.Map.
type MapHint uint8

const (
	HintNone MapHint = iota

	// HintDiscard indicates that the previous contents of the bitmap
	// will not be read and may be thrown away.
	HintDiscard
)

// Bitmap is a rectangular pixel buffer. Rows are Stride bytes apart
// and each row holds Width pixels of Format.
//
// The memory of a bitmap is only accessible between a successful call
// to Map and the matching call to Unmap.
type Bitmap interface {
	Width() int
	Height() int
	Stride() int
	Format() format.Format

	// SetFormat changes the format tag of the bitmap without touching
	// its pixels.
	SetFormat(format.Format)

	Map(Access, MapHint) ([]byte, error)
	Unmap()
}

// Allocator creates bitmaps.
type Allocator interface {
	NewBitmap(width, height int, f format.Format) (Bitmap, error)
}

// Releaser is implemented by bitmaps that hold resources which should
// be freed when the bitmap is no longer needed.
type Releaser interface {
	Release()
}

// Release releases b if it implements Releaser.
func Release(b Bitmap) {
	if r, ok := b.(Releaser); ok {
		r.Release()
	}
}

// Rows yields height rows of rowBytes bytes each from data, where the
// start of each row is stride bytes after the start of the previous
// one.
func Rows(data []byte, stride, rowBytes, height int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for y := range height {
			i := y * stride
			if !yield(data[i : i+rowBytes : i+rowBytes]) {
				return
			}
		}
	}
}
