package texture

import (
	"errors"
	"fmt"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes uncompressed and RLE true-color (24/32 bit) and
// grayscale (8 bit) TGA data. Rows come out top first.
func DecodeTGA(data []byte) (*Pixels, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	var channels int
	switch {
	case (imageType == tgaTrueColor || imageType == tgaTrueColorRLE) && (bpp == 24 || bpp == 32):
		channels = bpp / 8
	case (imageType == tgaGray || imageType == tgaGrayRLE) && bpp == 8:
		channels = 1
	default:
		return nil, fmt.Errorf("tga: unsupported type %d with %d bpp", imageType, bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("tga: empty image")
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	src := data[offset:]

	// raw holds pixels in file order and file channel layout (BGR[A])
	raw := make([]byte, width*height*channels)
	if imageType == tgaTrueColorRLE || imageType == tgaGrayRLE {
		if err := unpackTGARLE(raw, src, channels); err != nil {
			return nil, err
		}
	} else {
		if len(src) < len(raw) {
			return nil, errTGATruncated
		}
		copy(raw, src)
	}

	p := &Pixels{Width: width, Height: height, Channels: channels, Data: make([]byte, len(raw))}
	stride := width * channels
	for y := 0; y < height; y++ {
		dstY := y
		if !topToBottom {
			dstY = height - 1 - y
		}
		row := raw[y*stride : (y+1)*stride]
		dst := p.Data[dstY*stride : (dstY+1)*stride]
		if channels == 1 {
			copy(dst, row)
			continue
		}
		for x := 0; x < width; x++ {
			i := x * channels
			dst[i], dst[i+1], dst[i+2] = row[i+2], row[i+1], row[i]
			if channels == 4 {
				dst[i+3] = row[i+3]
			}
		}
	}
	return p, nil
}

// unpackTGARLE expands run-length packets into dst.
func unpackTGARLE(dst, src []byte, channels int) error {
	di, si := 0, 0
	for di < len(dst) {
		if si >= len(src) {
			return errTGATruncated
		}
		packet := src[si]
		si++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if si+channels > len(src) {
				return errTGATruncated
			}
			px := src[si : si+channels]
			si += channels
			for i := 0; i < count && di < len(dst); i++ {
				di += copy(dst[di:], px)
			}
			continue
		}

		n := count * channels
		if si+n > len(src) {
			return errTGATruncated
		}
		di += copy(dst[di:], src[si:si+n])
		si += n
	}
	return nil
}
