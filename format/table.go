package format

// Storage describes how the channels of a pixel are laid out in
// memory.
type Storage uint8

const (
	// StorageNone marks formats that cannot be unpacked.
	StorageNone Storage = iota

	// StorageBytes stores one 8 bit channel per byte.
	StorageBytes

	// StorageWord16 packs all channels into one host-endian 16 bit
	// word.
	StorageWord16

	// StorageWord32 packs all channels into one host-endian 32 bit
	// word.
	StorageWord32

	// StorageUnorm16 stores one host-endian 16 bit unsigned
	// normalized integer per channel.
	StorageUnorm16

	// StorageHalf stores one host-endian IEEE 754 binary16 value per
	// channel.
	StorageHalf

	// StorageFloat stores one host-endian IEEE 754 binary32 value per
	// channel.
	StorageFloat
)

// Slot is the position of a channel in an unpacked R, G, B, A pixel.
type Slot int8

const (
	SlotPad Slot = iota - 1
	SlotR
	SlotG
	SlotB
	SlotA
)

// Channel describes one channel of a pixel in memory order.
type Channel struct {
	Slot Slot

	// Index is the element index of the channel for array storages.
	Index int

	// Shift is the bit offset of the channel inside the pixel word
	// for packed storages.
	Shift uint

	// Bits is the width of the channel.
	Bits uint
}

// Info is the descriptor of a pixel layout.
type Info struct {
	Name     string
	Size     int
	Storage  Storage
	Channels []Channel

	// AlphaOnly formats have no color channels. They unpack with
	// zero color.
	AlphaOnly bool

	// Luma formats have a single color channel that unpacks into
	// all three color slots.
	Luma bool

	base Format
}

// MaxBits returns the width of the widest channel.
func (info *Info) MaxBits() uint {
	var m uint
	for _, c := range info.Channels {
		m = max(m, c.Bits)
	}
	return m
}

// Float reports whether the channels are floating point.
func (info *Info) Float() bool {
	return info.Storage == StorageHalf || info.Storage == StorageFloat
}

func slotOf(c byte) Slot {
	switch c {
	case 'R':
		return SlotR
	case 'G':
		return SlotG
	case 'B':
		return SlotB
	case 'A':
		return SlotA
	case 'X':
		return SlotPad
	default:
		panic("bad channel name: " + string(c))
	}
}

// arrayLayout builds an array-of-channels descriptor from a channel
// order such as "BGRA".
func arrayLayout(base Format, name string, storage Storage, order string) Info {
	var bits uint
	switch storage {
	case StorageBytes:
		bits = 8
	case StorageUnorm16, StorageHalf:
		bits = 16
	case StorageFloat:
		bits = 32
	}

	channels := make([]Channel, 0, len(order))
	for i := range len(order) {
		channels = append(channels, Channel{
			Slot:  slotOf(order[i]),
			Index: i,
			Bits:  bits,
		})
	}

	return Info{
		Name:     name,
		Size:     len(order) * int(bits/8),
		Storage:  storage,
		Channels: channels,
		base:     base,
	}
}

// wordLayout builds a packed descriptor. The channel order runs from
// the most significant bits of the word to the least significant, so
// "RGB" with widths 5, 6, 5 is RGB565.
func wordLayout(base Format, name string, storage Storage, order string, widths ...uint) Info {
	size := 2
	if storage == StorageWord32 {
		size = 4
	}

	channels := make([]Channel, len(order))
	shift := uint(size * 8)
	for i := range len(order) {
		shift -= widths[i]
		channels[i] = Channel{
			Slot:  slotOf(order[i]),
			Shift: shift,
			Bits:  widths[i],
		}
	}

	return Info{
		Name:     name,
		Size:     size,
		Storage:  storage,
		Channels: channels,
		base:     base,
	}
}

func invalid(base Format, name string) Info {
	return Info{Name: name, base: base}
}

var infoTable = [idCount]Info{
	idAny: invalid(Any, "ANY"),
	idA8: func() Info {
		info := arrayLayout(A8, "A_8", StorageBytes, "A")
		info.AlphaOnly = true
		return info
	}(),
	idR8: func() Info {
		info := arrayLayout(R8, "R_8", StorageBytes, "R")
		info.Luma = true
		return info
	}(),
	idRG88:     arrayLayout(RG88, "RG_88", StorageBytes, "RG"),
	idRGB888:   arrayLayout(RGB888, "RGB_888", StorageBytes, "RGB"),
	idBGR888:   arrayLayout(BGR888, "BGR_888", StorageBytes, "BGR"),
	idRGBX8888: arrayLayout(RGBX8888, "RGBX_8888", StorageBytes, "RGBX"),
	idRGBA8888: arrayLayout(RGBA8888, "RGBA_8888", StorageBytes, "RGBA"),
	idBGRX8888: arrayLayout(BGRX8888, "BGRX_8888", StorageBytes, "BGRX"),
	idBGRA8888: arrayLayout(BGRA8888, "BGRA_8888", StorageBytes, "BGRA"),
	idXRGB8888: arrayLayout(XRGB8888, "XRGB_8888", StorageBytes, "XRGB"),
	idARGB8888: arrayLayout(ARGB8888, "ARGB_8888", StorageBytes, "ARGB"),
	idXBGR8888: arrayLayout(XBGR8888, "XBGR_8888", StorageBytes, "XBGR"),
	idABGR8888: arrayLayout(ABGR8888, "ABGR_8888", StorageBytes, "ABGR"),

	idRGB565:   wordLayout(RGB565, "RGB_565", StorageWord16, "RGB", 5, 6, 5),
	idRGBA4444: wordLayout(RGBA4444, "RGBA_4444", StorageWord16, "RGBA", 4, 4, 4, 4),
	idRGBA5551: wordLayout(RGBA5551, "RGBA_5551", StorageWord16, "RGBA", 5, 5, 5, 1),

	idRGBX1010102: wordLayout(RGBX1010102, "RGBX_1010102", StorageWord32, "RGBX", 10, 10, 10, 2),
	idRGBA1010102: wordLayout(RGBA1010102, "RGBA_1010102", StorageWord32, "RGBA", 10, 10, 10, 2),
	idBGRX1010102: wordLayout(BGRX1010102, "BGRX_1010102", StorageWord32, "BGRX", 10, 10, 10, 2),
	idBGRA1010102: wordLayout(BGRA1010102, "BGRA_1010102", StorageWord32, "BGRA", 10, 10, 10, 2),
	idXRGB2101010: wordLayout(XRGB2101010, "XRGB_2101010", StorageWord32, "XRGB", 2, 10, 10, 10),
	idARGB2101010: wordLayout(ARGB2101010, "ARGB_2101010", StorageWord32, "ARGB", 2, 10, 10, 10),
	idXBGR2101010: wordLayout(XBGR2101010, "XBGR_2101010", StorageWord32, "XBGR", 2, 10, 10, 10),
	idABGR2101010: wordLayout(ABGR2101010, "ABGR_2101010", StorageWord32, "ABGR", 2, 10, 10, 10),

	idR16: func() Info {
		info := arrayLayout(R16, "R_16", StorageUnorm16, "R")
		info.Luma = true
		return info
	}(),
	idRG1616:       arrayLayout(RG1616, "RG_1616", StorageUnorm16, "RG"),
	idRGBA16161616: arrayLayout(RGBA16161616, "RGBA_16161616", StorageUnorm16, "RGBA"),

	idRGBXFP16161616: arrayLayout(RGBXFP16161616, "RGBX_FP_16161616", StorageHalf, "RGBX"),
	idRGBAFP16161616: arrayLayout(RGBAFP16161616, "RGBA_FP_16161616", StorageHalf, "RGBA"),
	idBGRXFP16161616: arrayLayout(BGRXFP16161616, "BGRX_FP_16161616", StorageHalf, "BGRX"),
	idBGRAFP16161616: arrayLayout(BGRAFP16161616, "BGRA_FP_16161616", StorageHalf, "BGRA"),
	idXRGBFP16161616: arrayLayout(XRGBFP16161616, "XRGB_FP_16161616", StorageHalf, "XRGB"),
	idARGBFP16161616: arrayLayout(ARGBFP16161616, "ARGB_FP_16161616", StorageHalf, "ARGB"),
	idXBGRFP16161616: arrayLayout(XBGRFP16161616, "XBGR_FP_16161616", StorageHalf, "XBGR"),
	idABGRFP16161616: arrayLayout(ABGRFP16161616, "ABGR_FP_16161616", StorageHalf, "ABGR"),

	idRGBXFP32323232: arrayLayout(RGBXFP32323232, "RGBX_FP_32323232", StorageFloat, "RGBX"),
	idRGBAFP32323232: arrayLayout(RGBAFP32323232, "RGBA_FP_32323232", StorageFloat, "RGBA"),

	idYUV:             invalid(YUV, "YUV"),
	idDepth16:         invalid(Depth16, "DEPTH_16"),
	idDepth32:         invalid(Depth32, "DEPTH_32"),
	idDepth24Stencil8: invalid(Depth24Stencil8, "DEPTH_24_STENCIL_8"),
}
