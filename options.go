package pixconv

import (
	"deedles.dev/pixconv/bitmap"
	"deedles.dev/pixconv/upload"
)

// Option configures a Converter.
type Option func(*Converter)

// WithAllocator sets the allocator that Convert and ConvertForUpload
// create destination bitmaps with. The default is a
// bitmap.HeapAllocator without a size limit.
func WithAllocator(a bitmap.Allocator) Option {
	return func(c *Converter) {
		c.alloc = a
	}
}

// WithDriver sets the driver that ConvertForUpload prepares bitmaps
// for. The default is a upload.GLES driver without optional
// features, which accepts only a few formats and never converts.
func WithDriver(d upload.Driver) Option {
	return func(c *Converter) {
		c.driver = d
	}
}

// Converter converts bitmaps between pixel formats. A Converter holds
// no state besides its configuration and is safe for concurrent use
// on distinct bitmaps.
type Converter struct {
	alloc  bitmap.Allocator
	driver upload.Driver
}

// New returns a Converter configured by opts.
func New(opts ...Option) *Converter {
	c := Converter{
		alloc:  bitmap.HeapAllocator{},
		driver: upload.GLES{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

var defaultConverter = New()

// Default returns the Converter used by the package-level functions.
func Default() *Converter {
	return defaultConverter
}
