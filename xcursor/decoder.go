// Package xcursor decodes X11 cursor files into bitmaps.
//
// Xcursor images are stored as premultiplied 32 bit ARGB words in
// little-endian byte order, which is the byte layout of
// format.BGRA8888Pre. Decoded images can be handed to pixconv directly
// or converted on the way in with DecodeFormat.
package xcursor

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"time"

	"deedles.dev/pixconv"
	"deedles.dev/pixconv/bitmap"
	"deedles.dev/pixconv/format"
)

func init() {
	image.RegisterFormat(
		"xcursor",
		"Xcur",
		func(r io.Reader) (image.Image, error) {
			return decodeFirst(r)
		},
		func(r io.Reader) (image.Config, error) {
			b, err := decodeFirst(r)
			if err != nil {
				return image.Config{}, err
			}

			return image.Config{
				ColorModel: b.ColorModel(),
				Width:      b.Width(),
				Height:     b.Height(),
			}, nil
		},
	)
}

func decodeFirst(r io.Reader) (*bitmap.Buffer, error) {
	cur, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if len(cur.Images) == 0 {
		return nil, ErrNoImages
	}

	return cur.Images[0].Bitmap.(*bitmap.Buffer), nil
}

var (
	// ErrBadMagic indicates an unrecognized magic number when
	// attempting to load a cursor.
	ErrBadMagic = errors.New("bad magic")

	// ErrNoImages is returned when a cursor without images is decoded
	// as an image.Image.
	ErrNoImages = errors.New("no images in cursor")
)

// Format is the pixel format of decoded cursor images.
const Format = format.BGRA8888Pre

const (
	fileMagic = 0x72756358 // ASCII "Xcur"

	tocTypeComment = 0xfffe0001
	tocTypeImage   = 0xfffd0002

	// maxImageSize is the largest width or height that the format
	// allows.
	maxImageSize = 0x7fff
)

type Cursor struct {
	Comments []*Comment
	Images   []*Image
}

// BestSize returns the nominal size of the images in c that is closest
// to size, or 0 if c has no images.
func (c *Cursor) BestSize(size int) int {
	var best int
	for _, img := range c.Images {
		if best == 0 || abs(img.NominalSize-size) < abs(best-size) {
			best = img.NominalSize
		}
	}
	return best
}

// Sized returns the frames of c with the given nominal size in file
// order.
func (c *Cursor) Sized(size int) []*Image {
	var frames []*Image
	for _, img := range c.Images {
		if img.NominalSize == size {
			frames = append(frames, img)
		}
	}
	return frames
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

type Comment struct {
	Subtype CommentSubtype
	Comment string
}

type CommentSubtype uint32

const (
	CommentSubtypeCopyright CommentSubtype = 1 + iota
	CommentSubtypeLicense
	CommentSubtypeOther
)

// Image is a single frame of a cursor.
type Image struct {
	NominalSize int
	Delay       time.Duration
	Hot         image.Point

	// Bitmap holds the pixels of the frame. Its format is Format
	// unless the cursor was decoded with DecodeFormat.
	Bitmap bitmap.Bitmap
}

func DecodeFile(path string) (*Cursor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads a cursor from r.
func Decode(r io.Reader) (*Cursor, error) {
	d := decoder{
		r:  r,
		br: bufio.NewReader(r),
	}
	return d.decode()
}

// DecodeFormat reads a cursor from r and converts every image into
// format f with c. If c is nil, the default converter is used.
func DecodeFormat(r io.Reader, f format.Format, c *pixconv.Converter) (*Cursor, error) {
	cur, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = pixconv.Default()
	}

	for i, img := range cur.Images {
		if img.Bitmap.Format() == f {
			continue
		}

		b, err := c.Convert(img.Bitmap, f)
		if err != nil {
			return nil, fmt.Errorf("convert image %v: %w", i, err)
		}
		img.Bitmap = b
	}

	return cur, nil
}

type decoder struct {
	r   io.Reader
	br  *bufio.Reader
	n   int
	err error
}

type fileToc struct {
	Type     uint32
	Subtype  uint32
	Position uint32
}

func (d *decoder) decode() (c *Cursor, err error) {
	defer d.catch(&err)

	var cursor Cursor

	for _, toc := range d.header() {
		d.seekTo(int(toc.Position))
		d.chunkHeader(toc)
		switch toc.Type {
		case tocTypeComment:
			cursor.Comments = append(cursor.Comments, d.comment(toc))
		case tocTypeImage:
			cursor.Images = append(cursor.Images, d.image(toc))
		default:
			d.throw(fmt.Errorf("unknown TOC type: %x", toc.Type))
		}
	}

	return &cursor, nil
}

func (d *decoder) header() []fileToc {
	if d.uint32() != fileMagic {
		d.throw(ErrBadMagic)
	}
	d.uint32() // Header size.
	d.uint32() // Version.
	ntoc := d.uint32()

	var tocs []fileToc
	for range ntoc {
		tocs = append(tocs, fileToc{
			Type:     d.uint32(),
			Subtype:  d.uint32(),
			Position: d.uint32(),
		})
	}

	return tocs
}

func (d *decoder) chunkHeader(toc fileToc) {
	d.uint32() // Header size.

	if t := d.uint32(); t != toc.Type {
		d.throw(fmt.Errorf("TOC type mismatch: expected: %x, got: %x", toc.Type, t))
	}
	if s := d.uint32(); s != toc.Subtype {
		d.throw(fmt.Errorf("TOC subtype mismatch: expected: %v, got: %v", toc.Subtype, s))
	}

	d.uint32() // Version.
}

func (d *decoder) comment(toc fileToc) *Comment {
	length := d.uint32()

	var buf strings.Builder
	_, err := io.CopyN(&buf, d, int64(length))
	d.throw(err)

	return &Comment{
		Subtype: CommentSubtype(toc.Subtype),
		Comment: buf.String(),
	}
}

func (d *decoder) image(toc fileToc) *Image {
	w := d.uint32()
	h := d.uint32()
	xhot := d.uint32()
	yhot := d.uint32()
	delay := d.uint32()

	if w == 0 || h == 0 || w > maxImageSize || h > maxImageSize {
		d.throw(fmt.Errorf("bad image size: %vx%v", w, h))
	}
	if xhot > w || yhot > h {
		d.throw(fmt.Errorf("hotspot (%v, %v) outside of %vx%v image", xhot, yhot, w, h))
	}

	b, err := bitmap.New(int(w), int(h), Format)
	d.throw(err)

	// The file stores little-endian words, so the bytes of each pixel
	// are already in B, G, R, A order.
	_, err = io.ReadFull(d, b.Pix())
	d.throw(err)

	return &Image{
		NominalSize: int(toc.Subtype),
		Delay:       time.Duration(delay) * time.Millisecond,
		Hot:         image.Pt(int(xhot), int(yhot)),
		Bitmap:      b,
	}
}

func (d *decoder) uint32() uint32 {
	var buf [4]byte
	_, err := io.ReadFull(d, buf[:])
	d.throw(err)
	return binary.LittleEndian.Uint32(buf[:])
}

func (d *decoder) Read(buf []byte) (int, error) {
	n, err := d.br.Read(buf)
	d.n += n
	return n, err
}

func (d *decoder) seekTo(n int) {
	diff := n - d.n
	if diff < 0 {
		d.throw(fmt.Errorf("chunk at %v precedes read position %v", n, d.n))
	}
	if diff == 0 {
		return
	}

	s, ok := d.r.(io.Seeker)
	if !ok || diff <= d.br.Buffered() {
		disc, err := d.br.Discard(diff)
		d.n += disc
		d.throw(err)
		return
	}

	_, err := s.Seek(int64(n), io.SeekStart)
	d.throw(err)
	d.br.Reset(d.r)
	d.n = n
}

type decoderError struct {
	err error
}

func (d *decoder) throw(err error) {
	if err != nil {
		panic(decoderError{err: err})
	}
}

func (d *decoder) catch(err *error) {
	switch r := recover().(type) {
	case decoderError:
		*err = r.err
		d.err = r.err
	case nil:
	default:
		panic(r)
	}
}
