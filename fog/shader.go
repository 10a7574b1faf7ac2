package fog

import _ "embed"

// ShaderSource is the Kage program for the fog pass. Source image 0 is the
// rendered world, 1 the current grid mask and 2 the previous grid mask, both
// masks scaled to screen space.
//
//go:embed fog.kage
var ShaderSource []byte
