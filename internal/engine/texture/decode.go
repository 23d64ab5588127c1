// Package texture decodes images and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Pixels is a decoded image, tightly packed, top row first.
type Pixels struct {
	Width    int
	Height   int
	Channels int // 1 (gray), 3 (rgb) or 4 (rgba)
	Data     []byte
}

// Decode sniffs the image format of data and decodes it. name is only used
// to recognise TGA, which has no magic number.
func Decode(data []byte, name string) (*Pixels, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}

	kind, _ := filetype.Match(data)
	if kind == filetype.Unknown {
		return nil, fmt.Errorf("decoding %s: unrecognised image data", name)
	}
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("decoding %s: %s is not an image", name, kind.MIME.Value)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %s: %w", name, kind.Extension, err)
	}
	return FromImage(img), nil
}

// FromImage converts img, keeping one channel for grayscale and dropping
// alpha for opaque images.
func FromImage(img image.Image) *Pixels {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		p := &Pixels{Width: w, Height: h, Channels: 1, Data: make([]byte, w*h)}
		for y := 0; y < h; y++ {
			copy(p.Data[y*w:(y+1)*w], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return p
	case *image.Gray16:
		p := &Pixels{Width: w, Height: h, Channels: 1, Data: make([]byte, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				p.Data[y*w+x] = uint8(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return p
	}

	// NRGBA keeps straight alpha, matching the file contents
	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	if isOpaque(img) {
		p := &Pixels{Width: w, Height: h, Channels: 3, Data: make([]byte, w*h*3)}
		for i, j := 0, 0; i < len(nrgba.Pix); i, j = i+4, j+3 {
			p.Data[j], p.Data[j+1], p.Data[j+2] = nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2]
		}
		return p
	}
	return &Pixels{Width: w, Height: h, Channels: 4, Data: nrgba.Pix}
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
