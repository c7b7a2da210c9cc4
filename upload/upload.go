// Package upload decides which pixel format a bitmap must be in before
// a graphics driver can accept it as texture data.
package upload

import "deedles.dev/pixconv/format"

// Driver describes the texture upload capabilities of a graphics
// driver.
type Driver interface {
	// CanConvert reports whether the driver can itself convert pixels
	// of src into textures with the internal format.
	CanConvert(src, internal format.Format) bool

	// ClosestFormat returns the format that pixels must be supplied in
	// for a texture with the given internal format. It panics with a
	// format.UnsupportedFormatError if internal is not valid.
	ClosestFormat(internal format.Format) format.Format
}
