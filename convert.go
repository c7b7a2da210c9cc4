// Package pixconv converts bitmaps between pixel formats for texture
// upload.
//
// A conversion between two formats that share a memory layout is a
// plain copy, followed by premultiplying or unpremultiplying the copy
// in place when the formats disagree about premultiplication. Any
// other conversion unpacks each row of the source into a temporary row
// of R, G, B, A components, adjusts premultiplication there and packs
// the row into the destination. The component type of the temporary
// row is chosen by format.MediumFor so that the destination loses no
// precision.
//
// Formats that cannot be converted, such as format.YUV, are a
// programming error and cause a panic with a
// format.UnsupportedFormatError. Failures of the bitmaps themselves
// are returned as errors.
package pixconv

import (
	"fmt"
	"iter"

	"deedles.dev/pixconv/bitmap"
	"deedles.dev/pixconv/format"
	"deedles.dev/pixconv/internal/scratch"
	"deedles.dev/pixconv/pack"
	"deedles.dev/pixconv/premult"
	"deedles.dev/xiter"
)

var (
	rows8     scratch.Pool[uint8]
	rows16    scratch.Pool[uint16]
	rowsFloat scratch.Pool[float32]
)

// ConvertIntoBitmap calls ConvertIntoBitmap on the default Converter.
func ConvertIntoBitmap(src, dst bitmap.Bitmap) error {
	return Default().ConvertIntoBitmap(src, dst)
}

// Convert calls Convert on the default Converter.
func Convert(src bitmap.Bitmap, f format.Format) (bitmap.Bitmap, error) {
	return Default().Convert(src, f)
}

// ConvertForUpload calls ConvertForUpload on the default Converter.
func ConvertForUpload(src bitmap.Bitmap, internal format.Format) (bitmap.Bitmap, error) {
	return Default().ConvertForUpload(src, internal)
}

// ConvertIntoBitmap converts the pixels of src into the format of dst
// and stores them in dst. The bitmaps must have the same dimensions.
// Both bitmaps are unmapped before ConvertIntoBitmap returns.
func (c *Converter) ConvertIntoBitmap(src, dst bitmap.Bitmap) error {
	width, height := src.Width(), src.Height()
	if dst.Width() != width || dst.Height() != height {
		return fmt.Errorf("%w: %vx%v into %vx%v", ErrDimensionMismatch, width, height, dst.Width(), dst.Height())
	}

	srcFormat, dstFormat := src.Format(), dst.Format()
	srcFormat.Info()
	dstFormat.Info()

	if width == 0 || height == 0 {
		return nil
	}

	needPremult := format.NeedsPremultConversion(srcFormat, dstFormat)
	if srcFormat.Base() == dstFormat.Base() && (!needPremult || premult.CanFast(dstFormat)) {
		Logger().Debug("copy", "src", srcFormat, "dst", dstFormat, "premult", needPremult)

		err := copyBitmap(src, dst)
		if err != nil {
			return err
		}
		if needPremult {
			return setPremultiplied(dst, dstFormat.IsPremultiplied())
		}
		return nil
	}

	srcData, err := mapBitmap(src, bitmap.AccessRead, bitmap.HintNone)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	defer src.Unmap()

	dstData, err := mapBitmap(dst, bitmap.AccessWrite, bitmap.HintDiscard)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	defer dst.Unmap()

	medium := format.MediumFor(dstFormat)
	Logger().Debug("convert", "src", srcFormat, "dst", dstFormat, "medium", medium, "premult", needPremult)

	from := plane{data: srcData, stride: src.Stride(), format: srcFormat}
	to := plane{data: dstData, stride: dst.Stride(), format: dstFormat}
	switch medium {
	case format.Medium8:
		convertRows(&rows8, from, to, width, height, needPremult)
	case format.Medium16:
		convertRows(&rows16, from, to, width, height, needPremult)
	case format.MediumFloat:
		convertRows(&rowsFloat, from, to, width, height, needPremult)
	}

	return nil
}

// Convert allocates a bitmap of format f with the dimensions of src
// and converts src into it. The new bitmap is released if the
// conversion fails.
func (c *Converter) Convert(src bitmap.Bitmap, f format.Format) (bitmap.Bitmap, error) {
	f.Info()

	dst, err := c.alloc.NewBitmap(src.Width(), src.Height(), f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	err = c.ConvertIntoBitmap(src, dst)
	if err != nil {
		bitmap.Release(dst)
		return nil, err
	}

	return dst, nil
}

// ConvertForUpload returns a bitmap with the contents of src that the
// configured driver can upload into a texture with the given internal
// format. If src is already suitable, it is returned as is.
func (c *Converter) ConvertForUpload(src bitmap.Bitmap, internal format.Format) (bitmap.Bitmap, error) {
	internal.Info()
	srcFormat := src.Format()

	if c.driver.CanConvert(srcFormat, internal) {
		if format.NeedsPremultConversion(srcFormat, internal) {
			return c.Convert(src, srcFormat.WithPremultiplied(!srcFormat.IsPremultiplied()))
		}
		return src, nil
	}

	closest := c.driver.ClosestFormat(internal)
	if closest != srcFormat {
		Logger().Debug("upload conversion", "src", srcFormat, "internal", internal, "closest", closest)
		return c.Convert(src, closest)
	}
	return src, nil
}

// Premultiply multiplies the color channels of b by alpha in place
// and marks b as premultiplied. Bitmaps that are already premultiplied
// or whose format cannot be are left alone.
func Premultiply(b bitmap.Bitmap) error {
	f := b.Format()
	f.Info()
	if !f.CanPremultiply() || f.IsPremultiplied() {
		return nil
	}

	err := setPremultiplied(b, true)
	if err != nil {
		return err
	}
	b.SetFormat(f.WithPremultiplied(true))
	return nil
}

// Unpremultiply is the inverse of Premultiply.
func Unpremultiply(b bitmap.Bitmap) error {
	f := b.Format()
	f.Info()
	if !f.IsPremultiplied() {
		return nil
	}

	err := setPremultiplied(b, false)
	if err != nil {
		return err
	}
	b.SetFormat(f.WithPremultiplied(false))
	return nil
}

type plane struct {
	data   []byte
	stride int
	format format.Format
}

func mapBitmap(b bitmap.Bitmap, access bitmap.Access, hint bitmap.MapHint) ([]byte, error) {
	data, err := b.Map(access, hint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMap, err)
	}

	need := b.Stride()*(b.Height()-1) + b.Format().RowBytes(b.Width())
	if len(data) < need {
		b.Unmap()
		return nil, fmt.Errorf("%w: mapped %v bytes but need %v", ErrMap, len(data), need)
	}

	return data, nil
}

func copyBitmap(src, dst bitmap.Bitmap) error {
	srcData, err := mapBitmap(src, bitmap.AccessRead, bitmap.HintNone)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	defer src.Unmap()

	dstData, err := mapBitmap(dst, bitmap.AccessWrite, bitmap.HintDiscard)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	defer dst.Unmap()

	rowBytes := src.Format().RowBytes(src.Width())
	stride := dst.Stride()
	for y, row := range xiter.Enumerate(bitmap.Rows(srcData, src.Stride(), rowBytes, src.Height())) {
		copy(dstData[y*stride:], row)
	}

	return nil
}

func convertRows[T pack.Component](pool *scratch.Pool[T], src, dst plane, width, height int, needPremult bool) {
	tmp := pool.Get(4 * width)
	defer pool.Put(tmp)

	premultiply := dst.format.IsPremultiplied()
	for y, row := range xiter.Enumerate(bitmap.Rows(src.data, src.stride, src.format.RowBytes(width), height)) {
		pack.Unpack(src.format, row, tmp, width)
		if needPremult {
			adjustSpan(tmp, width, premultiply)
		}
		pack.Pack(dst.format, tmp, dst.data[y*dst.stride:], width)
	}
}

// setPremultiplied premultiplies or unpremultiplies the pixels of b in
// place regardless of what the format of b claims about them. The
// format is not changed.
func setPremultiplied(b bitmap.Bitmap, premultiply bool) error {
	data, err := mapBitmap(b, bitmap.AccessReadWrite, bitmap.HintNone)
	if err != nil {
		return err
	}
	defer b.Unmap()

	f, width := b.Format(), b.Width()
	rows := bitmap.Rows(data, b.Stride(), f.RowBytes(width), b.Height())

	if premult.CanFast(f) {
		for row := range rows {
			if premultiply {
				premult.Premultiply8(row, width, f.AlphaFirst())
				continue
			}
			premult.Unpremultiply8(row, width, f.AlphaFirst())
		}
		return nil
	}

	switch format.MediumFor(f) {
	case format.Medium8:
		adjustRows(&rows8, f, rows, width, premultiply)
	case format.Medium16:
		adjustRows(&rows16, f, rows, width, premultiply)
	case format.MediumFloat:
		adjustRows(&rowsFloat, f, rows, width, premultiply)
	}
	return nil
}

func adjustRows[T pack.Component](pool *scratch.Pool[T], f format.Format, rows iter.Seq[[]byte], width int, premultiply bool) {
	tmp := pool.Get(4 * width)
	defer pool.Put(tmp)

	for row := range rows {
		pack.Unpack(f, row, tmp, width)
		adjustSpan(tmp, width, premultiply)
		pack.Pack(f, tmp, row, width)
	}
}

func adjustSpan[T pack.Component](span []T, width int, premultiply bool) {
	if premultiply {
		premult.PremultiplySpan(span, width)
		return
	}
	premult.UnpremultiplySpan(span, width)
}
