// Package shader holds the embedded WGSL sources of the tutorial chapters
// and compiles them to SPIR-V with gogpu/naga.
package shader

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Shader names. Each name maps to shaders/<name>.wgsl.
const (
	Triangle      = "triangle"
	TriangleColor = "triangle_color"
	Buffer        = "buffer"
	Texture       = "texture"
)

// Entry points shared by every shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

const shaderSuffix = ".wgsl"

//go:embed shaders/*.wgsl
var sources embed.FS

// ErrUnknownShader is returned for names without an embedded source.
var ErrUnknownShader = errors.New("shader: unknown shader")

// Names returns the names of all embedded shaders, sorted.
func Names() []string {
	entries, err := fs.ReadDir(sources, "shaders")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), shaderSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), shaderSuffix))
	}
	sort.Strings(names)
	return names
}

// Source returns the WGSL source of the named shader.
func Source(name string) (string, error) {
	data, err := sources.ReadFile(path.Join("shaders", name+shaderSuffix))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownShader, name)
	}
	return string(data), nil
}
