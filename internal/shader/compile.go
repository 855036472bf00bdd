package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic uint32 = 0x07230203

// ErrInvalidSPIRV is returned when the compiler output is not a SPIR-V module.
var ErrInvalidSPIRV = errors.New("shader: invalid SPIR-V")

// Format selects the representation handed to the HAL backend.
type Format int

const (
	// FormatSPIRV compiles WGSL to SPIR-V ahead of module creation.
	FormatSPIRV Format = iota
	// FormatWGSL passes the WGSL source and lets the backend translate it.
	FormatWGSL
)

func (f Format) String() string {
	switch f {
	case FormatSPIRV:
		return "spirv"
	case FormatWGSL:
		return "wgsl"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Compile compiles the named shader to SPIR-V words.
func Compile(name string) ([]uint32, error) {
	src, err := Source(name)
	if err != nil {
		return nil, err
	}
	code, err := CompileSource(src)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return code, nil
}

// CompileSource compiles WGSL source to SPIR-V words.
func CompileSource(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	if code[0] != SPIRVMagic {
		return nil, fmt.Errorf("%w: magic %#08x", ErrInvalidSPIRV, code[0])
	}
	return code, nil
}

// CreateModule creates a shader module for the named shader in the given
// format.
func CreateModule(device *wgpu.Device, name string, format Format) (*wgpu.ShaderModule, error) {
	desc := &wgpu.ShaderModuleDescriptor{Label: name + "_shader"}
	switch format {
	case FormatSPIRV:
		code, err := Compile(name)
		if err != nil {
			return nil, err
		}
		desc.SPIRV = code
	case FormatWGSL:
		src, err := Source(name)
		if err != nil {
			return nil, err
		}
		desc.WGSL = src
	default:
		return nil, fmt.Errorf("shader: unsupported format %v", format)
	}

	module, err := device.CreateShaderModule(desc)
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", name, err)
	}
	return module, nil
}
