// Package learn is a step-by-step WebGPU tutorial built on the GoGPU stack.
//
// # Overview
//
// Each tutorial chapter adds one concept on top of the previous one:
//
//	1_1  open a window
//	1_2  acquire a surface and device, clear the screen
//	1_3  render pipeline: a triangle from the built-in vertex index
//	1_4  vertex and index buffers: a pentagon
//	1_5  textures and bind groups: a textured pentagon
//
// Chapters with a "_1" suffix are the challenge variants; Space switches
// between the variants they set up.
//
// # The triangle
//
// Chapter 1_3 issues a single draw of [TriangleVertexCount] vertices with no
// vertex buffer. The vertex shader looks the position up in a constant table
// indexed by the built-in vertex index and emits it as a clip-space
// position with z=0 and w=1. [VertexPosition] mirrors that lookup on the CPU:
//
//	p, _ := learn.VertexPosition(1) // [-0.5 -0.5 0 1]
//
// # Packages
//
//   - learn: geometry shared by all chapters, colors, logging
//   - tutorial: chapter registry, windowed runs, headless capture, software preview
//   - internal/shader: embedded WGSL, compiled to SPIR-V with gogpu/naga
//   - internal/gpu: device, pipelines, meshes, textures and frame rendering on gogpu/wgpu/hal
//   - cmd/learn: command line entry point
//
// # Logging
//
// Nothing is logged by default. See [SetLogger].
package learn
