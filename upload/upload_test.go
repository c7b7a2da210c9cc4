package upload_test

import (
	"testing"

	"deedles.dev/pixconv/format"
	"deedles.dev/pixconv/upload"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
)

const allFeatures = upload.FormatConversion | upload.AlphaTextures | upload.TextureRG |
	upload.TextureBGRA8888 | upload.TextureNorm16 | upload.TextureRGBA1010102 | upload.TextureHalfFloat

func TestGLESCanConvert(t *testing.T) {
	d := upload.GLES{}
	require.False(t, d.CanConvert(format.RGBA8888, format.RGBA8888))

	d.Features = upload.FormatConversion
	require.True(t, d.CanConvert(format.A8, format.A8))
	require.True(t, d.CanConvert(format.RGB565, format.RGBA8888Pre))
	require.False(t, d.CanConvert(format.A8, format.RGBA8888))
	require.False(t, d.CanConvert(format.RGBA8888, format.A8))
	require.False(t, d.CanConvert(format.RG88, format.RGBA8888))

	d.Features = allFeatures
	require.True(t, d.CanConvert(format.A8, format.RGBA8888))
	require.True(t, d.CanConvert(format.RG88, format.RGBA8888))
}

func TestGLESClosestFormat(t *testing.T) {
	tests := []struct {
		name     string
		features upload.Features
		internal format.Format
		want     format.Format
	}{
		{"Native", 0, format.RGB565, format.RGB565},
		{"BGRAFallback", 0, format.BGRA8888Pre, format.RGBA8888Pre},
		{"BGRA", upload.TextureBGRA8888, format.BGRA8888Pre, format.BGRA8888Pre},
		{"AlphaFirst", 0, format.ARGB8888, format.RGBA8888},
		{"Padding", 0, format.XBGR8888, format.RGBA8888Pre},
		{"BGR", 0, format.BGR888, format.RGB888},
		{"RGFallback", 0, format.RG88, format.RGB888},
		{"RG", upload.TextureRG, format.RG88, format.RG88},
		{"Norm16", upload.TextureNorm16, format.RGBA16161616Pre, format.RGBA16161616Pre},
		{"Norm16Fallback", 0, format.RGBA16161616Pre, format.RGBA8888Pre},
		{"RG1616Fallback", upload.TextureNorm16, format.RG1616, format.RGB888},
		{"R16Fallback", 0, format.R16, format.R8},
		{"HalfFloat", upload.TextureHalfFloat, format.ABGRFP16161616Pre, format.RGBAFP16161616Pre},
		{"HalfFloatFallback", 0, format.BGRAFP16161616, format.RGBA8888},
		{"FloatFallback", 0, format.RGBAFP32323232Pre, format.RGBA8888Pre},
		{"Float", upload.TextureHalfFloat, format.RGBAFP32323232, format.RGBAFP32323232},
		{"1010102Fallback", 0, format.BGRA1010102Pre, format.RGBA8888Pre},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := upload.GLES{Features: test.features}
			require.Equal(t, test.want, d.ClosestFormat(test.internal))
		})
	}
}

func TestClosestFormatTotal(t *testing.T) {
	drivers := []upload.Driver{
		upload.GLES{},
		upload.GLES{Features: allFeatures},
		upload.WebGPU{},
	}

	for _, d := range drivers {
		for f := range format.All() {
			closest := d.ClosestFormat(f)
			require.True(t, closest.Valid(), "%v -> %v", f, closest)
			require.Equal(t, closest, d.ClosestFormat(closest), "%v is not a fixed point", closest)
		}

		require.PanicsWithValue(t, format.UnsupportedFormatError{Format: format.YUV}, func() {
			d.ClosestFormat(format.YUV)
		})
	}
}

func TestWebGPU(t *testing.T) {
	d := upload.WebGPU{}
	require.False(t, d.CanConvert(format.RGBA8888, format.RGBA8888))
	require.Equal(t, format.BGRA8888Pre, d.ClosestFormat(format.BGRA8888Pre))
	require.Equal(t, format.RGBA8888Pre, d.ClosestFormat(format.ARGB8888Pre))
	require.Equal(t, format.RGBA8888, d.ClosestFormat(format.RGB565))
	require.Equal(t, format.RGBAFP32323232Pre, d.ClosestFormat(format.RGBA1010102Pre))

	for f := range format.All() {
		tf, ok := upload.TextureFormat(d.ClosestFormat(f))
		require.True(t, ok, "%v", f)
		require.NotEqual(t, gputypes.TextureFormatUndefined, tf)

		back, ok := upload.FormatFor(tf)
		require.True(t, ok)
		require.Equal(t, d.ClosestFormat(f).Base(), back)
	}

	_, ok := upload.TextureFormat(format.RGB565)
	require.False(t, ok)
	_, ok = upload.FormatFor(gputypes.TextureFormatDepth24PlusStencil8)
	require.False(t, ok)
}
