package premult

import "github.com/ajroetker/go-highway/hwy"

// vectorPixels returns the number of pixels premultiplyVector handles
// per step on the running CPU, or 0 if its vectors are too narrow to
// hold a whole pixel.
func vectorPixels() int {
	lanes := hwy.MaxLanes[uint16]()
	if lanes < 4 || lanes%4 != 0 {
		return 0
	}
	return lanes / 4
}

// premultiplyVector premultiplies n alpha-last pixels. n must be a
// multiple of vectorPixels.
//
// Each byte is widened to a 16 bit lane and multiplied by the alpha of
// its pixel. The alpha lane is multiplied by 255 instead, which mul8
// leaves unchanged. No lane exceeds 255*255 + 128 + 254.
func premultiplyVector(p []byte, n int) {
	lanes := hwy.MaxLanes[uint16]()
	step := lanes / 4

	c := make([]uint16, lanes)
	a := make([]uint16, lanes)
	round := hwy.Set(uint16(128))

	for x := 0; x < n; x += step {
		row := p[x*4 : (x+step)*4]
		for i := 0; i < lanes; i += 4 {
			alpha := uint16(row[i+3])
			c[i], c[i+1], c[i+2], c[i+3] = uint16(row[i]), uint16(row[i+1]), uint16(row[i+2]), alpha
			a[i], a[i+1], a[i+2], a[i+3] = alpha, alpha, alpha, 255
		}

		t := hwy.Add(hwy.Mul(hwy.Load(c), hwy.Load(a)), round)
		t = hwy.ShiftRight(hwy.Add(hwy.ShiftRight(t, 8), t), 8)
		hwy.Store(t, c)

		for i, v := range c {
			row[i] = uint8(v)
		}
	}
}
