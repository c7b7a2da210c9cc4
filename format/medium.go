package format

// Medium is the numeric type that pixels are unpacked into while
// being converted. It is chosen so that no precision of the
// destination format is lost.
type Medium uint8

const (
	// Medium8 unpacks each channel into a uint8.
	Medium8 Medium = iota

	// Medium16 unpacks each channel into a uint16.
	Medium16

	// MediumFloat unpacks each channel into a float32.
	MediumFloat
)

func (m Medium) String() string {
	switch m {
	case Medium8:
		return "8"
	case Medium16:
		return "16"
	case MediumFloat:
		return "float"
	default:
		return "invalid"
	}
}

// ComponentSize returns the size in bytes of a single unpacked
// channel.
func (m Medium) ComponentSize() int {
	switch m {
	case Medium8:
		return 1
	case Medium16:
		return 2
	default:
		return 4
	}
}

// PixelSize returns the size in bytes of a single unpacked R, G, B, A
// pixel.
func (m Medium) PixelSize() int {
	return 4 * m.ComponentSize()
}

// MediumFor returns the smallest medium that can hold every channel
// of f without loss. Float formats, including half-float ones, use
// MediumFloat. It panics with an UnsupportedFormatError if f is not
// valid.
func MediumFor(f Format) Medium {
	info := f.Info()
	switch {
	case info.Float():
		return MediumFloat
	case info.MaxBits() <= 8:
		return Medium8
	default:
		return Medium16
	}
}
