package gpu

import (
	"strings"
	"testing"

	"github.com/gogpu/naga"
)

func TestShaderSourcesCompile(t *testing.T) {
	for _, withColor := range []bool{true, false} {
		src := ShaderSource(withColor)
		if src == "" {
			t.Fatalf("ShaderSource(%v) is empty", withColor)
		}
		for _, entry := range []string{"fn " + vertexEntryPoint, "fn " + fragmentEntryPoint} {
			if !strings.Contains(src, entry) {
				t.Errorf("ShaderSource(%v) missing %q", withColor, entry)
			}
		}
		if _, err := naga.Compile(src); err != nil {
			t.Errorf("naga.Compile(ShaderSource(%v)) failed: %v", withColor, err)
		}
	}
}

func TestShaderSourceBindings(t *testing.T) {
	if !strings.Contains(ShaderSource(true), "@group(0) @binding(0)") {
		t.Error("color shader should bind the uniform at group 0, binding 0")
	}
	if strings.Contains(ShaderSource(false), "@group") {
		t.Error("plain shader should have no bindings")
	}
}

func TestCompileSPIRV(t *testing.T) {
	words, err := compileSPIRV(ShaderSource(true))
	if err != nil {
		t.Fatalf("compileSPIRV failed: %v", err)
	}
	if len(words) < 5 {
		t.Fatalf("SPIR-V too short: %d words", len(words))
	}
	const spirvMagic = 0x07230203
	if words[0] != spirvMagic {
		t.Errorf("magic = %#08x, want %#08x", words[0], spirvMagic)
	}
}

func TestShaderSourceFormats(t *testing.T) {
	src, err := shaderSource(ShaderSource(false), ShaderWGSL)
	if err != nil {
		t.Fatalf("WGSL: %v", err)
	}
	if src.WGSL == "" || len(src.SPIRV) != 0 {
		t.Error("WGSL format should carry only WGSL text")
	}

	src, err = shaderSource(ShaderSource(false), ShaderSPIRV)
	if err != nil {
		t.Fatalf("SPIR-V: %v", err)
	}
	if len(src.SPIRV) == 0 || src.WGSL != "" {
		t.Error("SPIR-V format should carry only SPIR-V words")
	}

	if _, err := shaderSource("", ShaderFormat(99)); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestShaderFormatString(t *testing.T) {
	tests := []struct {
		f    ShaderFormat
		want string
	}{
		{ShaderWGSL, "wgsl"},
		{ShaderSPIRV, "spirv"},
		{ShaderFormat(7), "ShaderFormat(7)"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
