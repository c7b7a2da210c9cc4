package bitmap_test

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"slices"
	"testing"

	"deedles.dev/pixconv/bitmap"
	"deedles.dev/pixconv/format"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b, err := bitmap.New(3, 2, format.RGB888)
	require.Nil(t, err)
	require.Equal(t, 9, b.Stride())
	require.Len(t, b.Pix(), 18)

	_, err = bitmap.New(0, 2, format.RGB888)
	require.ErrorIs(t, err, bitmap.ErrInvalidDimensions)

	_, err = bitmap.New(1, 1, format.YUV)
	require.ErrorIs(t, err, bitmap.ErrInvalidFormat)

	_, err = bitmap.NewWithStride(3, 2, format.RGBA8888, 8)
	require.ErrorIs(t, err, bitmap.ErrInvalidStride)
}

func TestFromBytes(t *testing.T) {
	pix := make([]byte, 16+8)
	b, err := bitmap.FromBytes(pix, 2, 2, format.RGBA8888, 16)
	require.Nil(t, err)
	require.Equal(t, 16, b.PixOffset(0, 1))
	require.Equal(t, 20, b.PixOffset(1, 1))

	_, err = bitmap.FromBytes(pix[:23], 2, 2, format.RGBA8888, 16)
	require.ErrorIs(t, err, bitmap.ErrDataTooSmall)
}

func TestMap(t *testing.T) {
	b, err := bitmap.New(1, 1, format.A8)
	require.Nil(t, err)

	data, err := b.Map(bitmap.AccessRead, bitmap.HintNone)
	require.Nil(t, err)
	require.Len(t, data, 1)

	_, err = b.Map(bitmap.AccessWrite, bitmap.HintDiscard)
	require.ErrorIs(t, err, bitmap.ErrMapped)

	b.Unmap()
	_, err = b.Map(bitmap.AccessReadWrite, bitmap.HintNone)
	require.Nil(t, err)
}

func TestHeapAllocator(t *testing.T) {
	alloc := bitmap.HeapAllocator{MaxBytes: 64}

	b, err := alloc.NewBitmap(4, 4, format.RGBA8888)
	require.Nil(t, err)
	require.Equal(t, format.RGBA8888, b.Format())

	_, err = alloc.NewBitmap(5, 4, format.RGBA8888)
	require.ErrorIs(t, err, bitmap.ErrAllocation)

	_, err = bitmap.HeapAllocator{}.NewBitmap(1<<62, 1<<62, format.RGBAFP32323232)
	require.ErrorIs(t, err, bitmap.ErrAllocation)
}

func TestRows(t *testing.T) {
	data := []byte{1, 2, 0, 3, 4, 0, 5, 6}
	rows := slices.Collect(bitmap.Rows(data, 3, 2, 3))
	require.Equal(t, [][]byte{{1, 2}, {3, 4}, {5, 6}}, rows)
}

func TestImage(t *testing.T) {
	b, err := bitmap.New(2, 2, format.RGBA8888)
	require.Nil(t, err)

	b.Set(0, 0, color.NRGBA{R: 255, A: 128})
	require.Equal(t, []byte{255, 0, 0, 128}, b.Pix()[:4])
	require.Equal(t, color.RGBA64Model.Convert(color.NRGBA{R: 255, A: 128}), color.RGBA64Model.Convert(b.At(0, 0)))

	r, g, bl, a := b.At(5, 5).RGBA()
	require.Equal(t, [4]uint32{}, [4]uint32{r, g, bl, a})
}

func TestImagePremultiplied(t *testing.T) {
	b, err := bitmap.New(1, 1, format.BGRA8888Pre)
	require.Nil(t, err)

	b.Set(0, 0, color.RGBA{R: 128, A: 128})
	require.Equal(t, []byte{0, 0, 128, 128}, b.Pix())

	r, g, bl, a := b.At(0, 0).RGBA()
	require.Equal(t, [4]uint32{0x8080, 0, 0, 0x8080}, [4]uint32{r, g, bl, a})
}

func TestDraw(t *testing.T) {
	src := image.NewUniform(color.RGBA{R: 255, A: 255})

	b, err := bitmap.New(3, 2, format.RGB565)
	require.Nil(t, err)
	draw.Draw(b, b.Bounds(), src, image.Point{}, draw.Src)

	for y := range 2 {
		for x := range 3 {
			i := b.PixOffset(x, y)
			require.Equal(t, uint16(0xf800), binary.NativeEndian.Uint16(b.Pix()[i:]))
		}
	}
}
