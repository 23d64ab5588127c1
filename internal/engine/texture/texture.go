package texture

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// glFormat picks the client and internal format for a channel count.
func glFormat(channels int) uint32 {
	switch channels {
	case 1:
		return gl.RED
	case 3:
		return gl.RGB
	default:
		return gl.RGBA
	}
}

// Upload creates a 2D texture with mipmaps, repeat wrapping and trilinear
// minification.
func Upload(p *Pixels) uint32 {
	format := glFormat(p.Channels)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(p.Width), int32(p.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(p.Data))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	return id
}

// Delete releases texture handles. Zero handles are ignored.
func Delete(ids ...uint32) {
	for _, id := range ids {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

// CubemapFaces lists face images in GL order: +X, -X, +Y, -Y, +Z, -Z.
type CubemapFaces [6]string

// SkyboxFaces returns the conventional face file names under dir.
func SkyboxFaces(dir string) CubemapFaces {
	var f CubemapFaces
	for i, name := range []string{"right", "left", "top", "bottom", "front", "back"} {
		f[i] = dir + "/" + name + ".png"
	}
	return f
}
