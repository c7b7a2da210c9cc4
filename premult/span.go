package premult

import "deedles.dev/pixconv/pack"

// PremultiplySpan premultiplies width unpacked R, G, B, A pixels in
// place.
func PremultiplySpan[T pack.Component](span []T, width int) {
	switch span := any(span).(type) {
	case []uint8:
		for x := range width {
			px := span[x*4 : x*4+4 : x*4+4]
			a := px[3]
			px[0], px[1], px[2] = mul8(px[0], a), mul8(px[1], a), mul8(px[2], a)
		}

	case []uint16:
		for x := range width {
			px := span[x*4 : x*4+4 : x*4+4]
			a := uint32(px[3])
			px[0] = uint16(uint32(px[0]) * a / 0xffff)
			px[1] = uint16(uint32(px[1]) * a / 0xffff)
			px[2] = uint16(uint32(px[2]) * a / 0xffff)
		}

	case []float32:
		for x := range width {
			px := span[x*4 : x*4+4 : x*4+4]
			a := px[3]
			px[0], px[1], px[2] = px[0]*a, px[1]*a, px[2]*a
		}
	}
}

// UnpremultiplySpan is the inverse of PremultiplySpan. Pixels with zero
// alpha become fully zero.
func UnpremultiplySpan[T pack.Component](span []T, width int) {
	switch span := any(span).(type) {
	case []uint8:
		for x := range width {
			px := span[x*4 : x*4+4 : x*4+4]
			a := px[3]
			if a == 0 {
				clear(px)
				continue
			}
			px[0], px[1], px[2] = div8(px[0], a), div8(px[1], a), div8(px[2], a)
		}

	case []uint16:
		for x := range width {
			px := span[x*4 : x*4+4 : x*4+4]
			a := uint32(px[3])
			if a == 0 {
				clear(px)
				continue
			}
			px[0] = div16(px[0], a)
			px[1] = div16(px[1], a)
			px[2] = div16(px[2], a)
		}

	case []float32:
		for x := range width {
			px := span[x*4 : x*4+4 : x*4+4]
			a := px[3]
			if a == 0 {
				clear(px)
				continue
			}
			px[0], px[1], px[2] = px[0]/a, px[1]/a, px[2]/a
		}
	}
}

func div16(c uint16, a uint32) uint16 {
	return uint16(min(uint32(c)*0xffff/a, 0xffff))
}
