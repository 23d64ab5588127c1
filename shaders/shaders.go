// Package shaders embeds the default GLSL programs. The renderer reads the
// files from disk first, so edits here take effect without a rebuild.
package shaders

import "embed"

// Files holds every *.glsl file in this directory.
//
//go:embed *.glsl
var Files embed.FS

// Scene and skybox program file names.
const (
	SceneVertex    = "vertex_shader.glsl"
	SceneFragment  = "fragment_shader.glsl"
	SkyboxVertex   = "skybox_vertex.glsl"
	SkyboxFragment = "skybox_fragment.glsl"
)

// Wireframe overlay program.
const (
	OutlineVertex   = "outline_vertex.glsl"
	OutlineFragment = "outline_fragment.glsl"
)
