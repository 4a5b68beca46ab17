// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for the ground mesh.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for the ground mesh.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// GrassVertexShader bends, tilts and sways one instanced blade.
//
//go:embed grass.vert
var GrassVertexShader string

// GrassFragmentShader shades a blade from root to tip.
//
//go:embed grass.frag
var GrassFragmentShader string

// BoundsVertexShader draws debug line geometry.
//
//go:embed bounds.vert
var BoundsVertexShader string

// BoundsFragmentShader fills debug lines with a flat color.
//
//go:embed bounds.frag
var BoundsFragmentShader string
