package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded WGSL shader sources.

//go:embed shaders/triangle.wgsl
var triangleShaderSource string

//go:embed shaders/triangle_plain.wgsl
var trianglePlainShaderSource string

// Shader entry points shared by both modules.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// ShaderFormat selects the form in which shader code is handed to the device.
type ShaderFormat int

const (
	// ShaderWGSL passes WGSL source text. Default.
	ShaderWGSL ShaderFormat = iota

	// ShaderSPIRV compiles WGSL to SPIR-V with naga and passes the words.
	ShaderSPIRV
)

// String returns the format name.
func (f ShaderFormat) String() string {
	switch f {
	case ShaderWGSL:
		return "wgsl"
	case ShaderSPIRV:
		return "spirv"
	default:
		return fmt.Sprintf("ShaderFormat(%d)", int(f))
	}
}

// ShaderSource returns the WGSL source of the color or the plain module.
func ShaderSource(withColor bool) string {
	if withColor {
		return triangleShaderSource
	}
	return trianglePlainShaderSource
}

// shaderSource builds the HAL shader source in the requested format.
func shaderSource(wgsl string, format ShaderFormat) (hal.ShaderSource, error) {
	switch format {
	case ShaderWGSL:
		return hal.ShaderSource{WGSL: wgsl}, nil
	case ShaderSPIRV:
		words, err := compileSPIRV(wgsl)
		if err != nil {
			return hal.ShaderSource{}, err
		}
		return hal.ShaderSource{SPIRV: words}, nil
	default:
		return hal.ShaderSource{}, fmt.Errorf("gpu: unknown shader format %v", format)
	}
}

// compileSPIRV compiles WGSL to little-endian SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V size %d is not a multiple of 4", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
