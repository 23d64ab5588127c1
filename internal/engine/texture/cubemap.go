package texture

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/logger"
)

// LoadCubemap builds a cube map from six face images read through src. A
// face that cannot be read or decoded is logged and left empty; the handle
// is returned regardless.
func LoadCubemap(src Source, faces CubemapFaces) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	for i, path := range faces {
		p, err := load(src, path)
		if err != nil {
			logger.Warn("cubemap face failed to load", zap.String("path", path), zap.Error(err))
			continue
		}
		format := glFormat(p.Channels)
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, int32(format),
			int32(p.Width), int32(p.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(p.Data))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	return id
}
