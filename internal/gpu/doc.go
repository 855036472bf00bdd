// Package gpu wraps gogpu/wgpu for the tutorial chapters: device
// acquisition, render pipelines, vertex/index buffers, textures, and
// recording one frame either to a window surface or to an offscreen target
// that is read back to the CPU.
//
// Architecture:
//
//	Device (owns or borrows wgpu.Device + wgpu.Queue)
//	  +-- Pipeline (shader module, bind group layouts, pipeline layout, render pipeline)
//	  +-- Mesh     (vertex buffer, optional uint16 index buffer)
//	  +-- Texture  (RGBA8 texture, view, sampler)
//	  +-- Renderer (command encoder, single render pass, submit + staging map)
//	        +-- Target (offscreen BGRA8 color texture for capture)
package gpu
