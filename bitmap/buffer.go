package bitmap

import (
	"errors"
	"fmt"
	"math"

	"deedles.dev/pixconv/format"
)

var (
	// ErrInvalidDimensions is returned when width or height is not
	// positive.
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

	// ErrInvalidFormat is returned when a bitmap is requested in a
	// format that cannot hold pixels.
	ErrInvalidFormat = errors.New("bitmap: invalid format")

	// ErrInvalidStride is returned when the stride is less than the
	// size of a row.
	ErrInvalidStride = errors.New("bitmap: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than
	// required.
	ErrDataTooSmall = errors.New("bitmap: data buffer too small")

	// ErrMapped is returned when mapping a bitmap that is already
	// mapped.
	ErrMapped = errors.New("bitmap: already mapped")

	// ErrAllocation is returned when a bitmap cannot be allocated.
	ErrAllocation = errors.New("bitmap: allocation failed")
)

// Buffer is a Bitmap backed by a byte slice.
//
// A Buffer may be mapped by only one user at a time. It is otherwise
// not safe for concurrent use.
type Buffer struct {
	pix    []byte
	width  int
	height int
	stride int
	format format.Format
	mapped bool
}

func check(width, height int, f format.Format) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if !f.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, f)
	}
	return nil
}

// New returns a zeroed Buffer with tightly packed rows.
func New(width, height int, f format.Format) (*Buffer, error) {
	if err := check(width, height, f); err != nil {
		return nil, err
	}
	return NewWithStride(width, height, f, f.RowBytes(width))
}

// NewWithStride returns a zeroed Buffer whose rows are stride bytes
// apart. stride must be at least f.RowBytes(width).
func NewWithStride(width, height int, f format.Format, stride int) (*Buffer, error) {
	if err := check(width, height, f); err != nil {
		return nil, err
	}
	if stride < f.RowBytes(width) {
		return nil, ErrInvalidStride
	}

	return &Buffer{
		pix:    make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: f,
	}, nil
}

// FromBytes returns a Buffer that uses pix as its memory without
// copying it.
func FromBytes(pix []byte, width, height int, f format.Format, stride int) (*Buffer, error) {
	if err := check(width, height, f); err != nil {
		return nil, err
	}
	rowBytes := f.RowBytes(width)
	if stride < rowBytes {
		return nil, ErrInvalidStride
	}
	if len(pix) < stride*(height-1)+rowBytes {
		return nil, ErrDataTooSmall
	}

	return &Buffer{
		pix:    pix,
		width:  width,
		height: height,
		stride: stride,
		format: f,
	}, nil
}

func (b *Buffer) Width() int                { return b.width }
func (b *Buffer) Height() int               { return b.height }
func (b *Buffer) Stride() int               { return b.stride }
func (b *Buffer) Format() format.Format     { return b.format }
func (b *Buffer) SetFormat(f format.Format) { b.format = f }

// Pix returns the memory of the buffer. Unlike Map, it does not check
// whether the buffer is mapped.
func (b *Buffer) Pix() []byte { return b.pix }

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return b.pixOffset(x, y, b.format.BytesPerPixel())
}

func (b *Buffer) Map(Access, MapHint) ([]byte, error) {
	if b.mapped {
		return nil, ErrMapped
	}
	b.mapped = true
	return b.pix, nil
}

func (b *Buffer) Unmap() {
	b.mapped = false
}

// Release drops the memory of the buffer. The buffer must not be used
// afterwards.
func (b *Buffer) Release() {
	b.pix = nil
}

// HeapAllocator allocates Buffers.
type HeapAllocator struct {
	// MaxBytes limits the size of a single allocation. Zero means no
	// limit.
	MaxBytes int
}

func (h HeapAllocator) NewBitmap(width, height int, f format.Format) (Bitmap, error) {
	if err := check(width, height, f); err != nil {
		return nil, err
	}

	if width > math.MaxInt/f.BytesPerPixel() || f.RowBytes(width) > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %vx%v %v overflows", ErrAllocation, width, height, f)
	}
	stride := f.RowBytes(width)
	if size := stride * height; h.MaxBytes > 0 && size > h.MaxBytes {
		return nil, fmt.Errorf("%w: %v bytes exceeds limit of %v", ErrAllocation, size, h.MaxBytes)
	}

	return NewWithStride(width, height, f, stride)
}
