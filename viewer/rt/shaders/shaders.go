package shaders

import (
	_ "embed"
)

//go:embed cube.wgsl
var CubeWGSL string

//go:embed text.wgsl
var TextWGSL string
