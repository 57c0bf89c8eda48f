//go:build !nogpu

package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded UI quad shader source.
//
//go:embed shaders/ui.wgsl
var uiShaderSource string

// Entry points in shaders/ui.wgsl.
const (
	uiVertexEntry        = "vs_main"
	uiFragmentEntry      = "fs_main"
	uiSolidFragmentEntry = "fs_solid"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// ErrEmptyShader is returned when an embedded shader source is missing.
var ErrEmptyShader = errors.New("wgpu: shader source is empty")

// UIShaderSource returns the WGSL source of the UI quad shader.
func UIShaderSource() string {
	return uiShaderSource
}

// CompileUIShader compiles the UI quad shader to SPIR-V words.
// Backends that consume SPIR-V instead of WGSL use this path.
func CompileUIShader() ([]uint32, error) {
	return compileShaderToSPIRV(uiShaderSource)
}

// compileShaderToSPIRV compiles WGSL source to a little-endian SPIR-V word
// slice and checks the module header.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	if wgslSource == "" {
		return nil, ErrEmptyShader
	}

	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: invalid SPIR-V length %d", len(spirvBytes))
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	if spirvCode[0] != spirvMagic {
		return nil, fmt.Errorf("compile shader: invalid SPIR-V magic 0x%08X", spirvCode[0])
	}

	slogger().Debug("ui shader compiled", "words", len(spirvCode))
	return spirvCode, nil
}
