//go:build go1.24

package xcursor_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"
	"testing"
	"time"

	"deedles.dev/pixconv/bitmap"
	"deedles.dev/pixconv/format"
	"deedles.dev/pixconv/xcursor"
	"github.com/stretchr/testify/require"
)

type chunk struct {
	typ, subtype uint32
	body         []byte
}

func imageChunk(size, w, h, xhot, yhot, delay uint32, pixels ...uint32) chunk {
	body := binary.LittleEndian.AppendUint32(nil, w)
	body = binary.LittleEndian.AppendUint32(body, h)
	body = binary.LittleEndian.AppendUint32(body, xhot)
	body = binary.LittleEndian.AppendUint32(body, yhot)
	body = binary.LittleEndian.AppendUint32(body, delay)
	for _, p := range pixels {
		body = binary.LittleEndian.AppendUint32(body, p)
	}
	return chunk{typ: 0xfffd0002, subtype: size, body: body}
}

func commentChunk(subtype xcursor.CommentSubtype, text string) chunk {
	body := binary.LittleEndian.AppendUint32(nil, uint32(len(text)))
	return chunk{typ: 0xfffe0001, subtype: uint32(subtype), body: append(body, text...)}
}

// encode builds an Xcursor file containing chunks.
func encode(chunks ...chunk) []byte {
	le := binary.LittleEndian

	buf := le.AppendUint32(nil, 0x72756358)
	buf = le.AppendUint32(buf, 16)
	buf = le.AppendUint32(buf, 0x10000)
	buf = le.AppendUint32(buf, uint32(len(chunks)))

	pos := len(buf) + 12*len(chunks)
	for _, c := range chunks {
		buf = le.AppendUint32(buf, c.typ)
		buf = le.AppendUint32(buf, c.subtype)
		buf = le.AppendUint32(buf, uint32(pos))
		pos += 16 + len(c.body)
	}

	for _, c := range chunks {
		buf = le.AppendUint32(buf, 16)
		buf = le.AppendUint32(buf, c.typ)
		buf = le.AppendUint32(buf, c.subtype)
		buf = le.AppendUint32(buf, 1)
		buf = append(buf, c.body...)
	}

	return buf
}

var testCursor = encode(
	commentChunk(xcursor.CommentSubtypeLicense, "public domain"),
	imageChunk(24, 2, 1, 1, 0, 50, 0x80800000, 0xff00ff00),
	imageChunk(32, 1, 1, 0, 0, 50, 0x00000000),
	imageChunk(32, 1, 1, 0, 1, 70, 0xffffffff),
)

func TestDecode(t *testing.T) {
	cur, err := xcursor.Decode(bytes.NewReader(testCursor))
	require.Nil(t, err)

	require.Len(t, cur.Comments, 1)
	require.Equal(t, xcursor.CommentSubtypeLicense, cur.Comments[0].Subtype)
	require.Equal(t, "public domain", cur.Comments[0].Comment)

	require.Len(t, cur.Images, 3)
	require.Equal(t, 24, cur.BestSize(16))
	require.Equal(t, 32, cur.BestSize(30))
	require.Len(t, cur.Sized(32), 2)

	img := cur.Images[0]
	require.Equal(t, 50*time.Millisecond, img.Delay)
	require.Equal(t, image.Pt(1, 0), img.Hot)
	require.Equal(t, xcursor.Format, img.Bitmap.Format())
	require.Equal(t, []byte{0, 0, 0x80, 0x80, 0, 0xff, 0, 0xff}, img.Bitmap.(*bitmap.Buffer).Pix())

	r, g, b, a := img.Bitmap.(*bitmap.Buffer).At(0, 0).RGBA()
	require.Equal(t, [4]uint32{0x8080, 0, 0, 0x8080}, [4]uint32{r, g, b, a})
}

func TestDecodeImage(t *testing.T) {
	img, name, err := image.Decode(bytes.NewReader(testCursor))
	require.Nil(t, err)
	require.Equal(t, "xcursor", name)
	require.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())

	config, _, err := image.DecodeConfig(bytes.NewReader(testCursor))
	require.Nil(t, err)
	require.Equal(t, 2, config.Width)
	require.Equal(t, 1, config.Height)
}

func TestDecodeFormat(t *testing.T) {
	cur, err := xcursor.DecodeFormat(bytes.NewReader(testCursor), format.RGBA8888, nil)
	require.Nil(t, err)

	for _, img := range cur.Images {
		require.Equal(t, format.RGBA8888, img.Bitmap.Format())
	}
	require.Equal(t, []byte{0xff, 0, 0, 0x80, 0, 0xff, 0, 0xff}, cur.Images[0].Bitmap.(*bitmap.Buffer).Pix())
	require.Equal(t, []byte{0, 0, 0, 0}, cur.Images[1].Bitmap.(*bitmap.Buffer).Pix())
}

func TestDecodeErrors(t *testing.T) {
	_, err := xcursor.Decode(bytes.NewReader([]byte("not a cursor file")))
	require.ErrorIs(t, err, xcursor.ErrBadMagic)

	_, err = xcursor.Decode(bytes.NewReader(testCursor[:len(testCursor)-2]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = xcursor.Decode(bytes.NewReader(encode(imageChunk(24, 1, 1, 5, 0, 0, 0))))
	require.ErrorContains(t, err, "hotspot")

	_, _, err = image.Decode(bytes.NewReader(encode(commentChunk(xcursor.CommentSubtypeOther, "empty"))))
	require.ErrorIs(t, err, xcursor.ErrNoImages)
}

func BenchmarkDecode(b *testing.B) {
	for b.Loop() {
		xcursor.Decode(bytes.NewReader(testCursor))
	}
}
