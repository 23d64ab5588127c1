package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/importer"
)

func tgaHeader(imageType, bpp byte, w, h int, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 2x2, 24 bit BGR, stored bottom row first
	data := tgaHeader(tgaTrueColor, 24, 2, 2, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom row: red, green
		255, 0, 0, 255, 255, 255, // top row: blue, white
	)

	p, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Channels)
	assert.Equal(t, []byte{
		0, 0, 255, 255, 255, 255,
		255, 0, 0, 0, 255, 0,
	}, p.Data)
}

func TestDecodeTGARLE32TopDown(t *testing.T) {
	data := tgaHeader(tgaTrueColorRLE, 32, 3, 1, 0x20)
	data = append(data,
		0x81, 10, 20, 30, 40, // run of 2
		0x00, 1, 2, 3, 4, // raw packet of 1
	)

	p, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Channels)
	assert.Equal(t, []byte{30, 20, 10, 40, 30, 20, 10, 40, 3, 2, 1, 4}, p.Data)
}

func TestDecodeTGAGray(t *testing.T) {
	data := tgaHeader(tgaGray, 8, 2, 1, 0x20)
	data = append(data, 7, 9)

	p, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Channels)
	assert.Equal(t, []byte{7, 9}, p.Data)
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(tgaTrueColor, 24, 1, 1, 0); h[1] = 1; return h }()},
		{"16 bit", tgaHeader(tgaTrueColor, 16, 1, 1, 0)},
		{"truncated raw", append(tgaHeader(tgaTrueColor, 24, 2, 2, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(tgaTrueColorRLE, 24, 4, 1, 0), 0x83, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeChannelCounts(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 0, color.Gray{Y: 200})

	opaque := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	opaque.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	opaque.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	translucent := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	translucent.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})

	tests := []struct {
		name     string
		img      image.Image
		channels int
		data     []byte
	}{
		{"gray", gray, 1, []byte{0, 200, 0, 0}},
		{"opaque", opaque, 3, []byte{10, 20, 30, 40, 50, 60}},
		{"alpha", translucent, 4, []byte{255, 0, 0, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(encodePNG(t, tt.img), tt.name+".png")
			require.NoError(t, err)
			assert.Equal(t, tt.channels, p.Channels)
			assert.Equal(t, tt.data, p.Data)
		})
	}
}

func TestFromImageGray16(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 1))
	img.SetGray16(0, 0, color.Gray16{Y: 0xABCD})
	img.SetGray16(1, 0, color.Gray16{Y: 0x00FF})

	p := FromImage(img)
	assert.Equal(t, 1, p.Channels)
	assert.Equal(t, []byte{0xAB, 0x00}, p.Data)

	// 16-bit PNGs decode to Gray16 and keep one channel
	decoded, err := Decode(encodePNG(t, img), "depth.png")
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.Channels)
	assert.Equal(t, []byte{0xAB, 0x00}, decoded.Data)
}

func TestDecodeBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))

	p, err := Decode(buf.Bytes(), "white.bmp")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Width)
	assert.Equal(t, 2, p.Height)
}

func TestDecodeRejectsNonImages(t *testing.T) {
	_, err := Decode([]byte("%PDF-1.4\n%âãÏÓ\n"), "doc.png")
	assert.Error(t, err)

	_, err = Decode([]byte("plain text"), "notes.png")
	assert.Error(t, err)
}

func TestGLFormat(t *testing.T) {
	assert.Equal(t, uint32(gl.RED), glFormat(1))
	assert.Equal(t, uint32(gl.RGB), glFormat(3))
	assert.Equal(t, uint32(gl.RGBA), glFormat(4))
}

func TestSkyboxFaces(t *testing.T) {
	f := SkyboxFaces("resources/textures/skybox")
	assert.Equal(t, "resources/textures/skybox/right.png", f[0])
	assert.Equal(t, "resources/textures/skybox/back.png", f[5])
}

type memSource map[string][]byte

func (m memSource) Load(path string) ([]byte, error) {
	if d, ok := m[path]; ok {
		return d, nil
	}
	return nil, errors.New("not found")
}

func newTestCache(src Source) (*Cache, *int) {
	uploads := 0
	c := NewCache(src, assets.NewResolver("resources"))
	c.upload = func(*Pixels) uint32 {
		uploads++
		return uint32(uploads)
	}
	c.release = func(...uint32) {}
	return c, &uploads
}

func TestCacheDeduplicatesByResolvedPath(t *testing.T) {
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 1, 1)))
	src := memSource{"resources/models/chair/wood.png": data}
	c, uploads := newTestCache(src)

	a, ok := c.Get(importer.TextureRef{Path: "wood.png", Type: importer.DiffuseTexture}, "resources/models/chair")
	require.True(t, ok)
	b, ok := c.Get(importer.TextureRef{Path: "models/chair/wood.png", Type: importer.DiffuseTexture}, "resources/models/chair")
	require.True(t, ok)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, 1, *uploads)
	assert.Equal(t, "resources/models/chair/wood.png", a.Path)
	assert.Len(t, c.Loaded(), 1)

	c.Release()
	assert.Empty(t, c.Loaded())
}

func TestCacheDoesNotRememberFailures(t *testing.T) {
	src := memSource{}
	c, uploads := newTestCache(src)
	ref := importer.TextureRef{Path: "missing.png", Type: importer.DiffuseTexture}

	_, ok := c.Get(ref, "resources/models")
	assert.False(t, ok)

	src["resources/models/missing.png"] = encodePNG(t, image.NewGray(image.Rect(0, 0, 1, 1)))
	_, ok = c.Get(ref, "resources/models")
	assert.True(t, ok)
	assert.Equal(t, 1, *uploads)
}

func TestCacheEmbeddedData(t *testing.T) {
	c, uploads := newTestCache(memSource{})
	ref := importer.TextureRef{Path: "#image0", Type: importer.DiffuseTexture,
		Data: encodePNG(t, image.NewGray(image.Rect(0, 0, 1, 1)))}

	tex, ok := c.Get(ref, "resources/models/car")
	require.True(t, ok)
	assert.Equal(t, "resources/models/car##image0", tex.Path)

	_, ok = c.Get(ref, "resources/models/car")
	require.True(t, ok)
	assert.Equal(t, 1, *uploads)
}
