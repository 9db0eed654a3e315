// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// QuadVertexShader is the vertex shader for full-screen quad presentation.
//
//go:embed quad.vert
var QuadVertexShader string

// QuadFragmentShader is the fragment shader for full-screen quad presentation.
//
//go:embed quad.frag
var QuadFragmentShader string
