// Package triangle holds the host-side model of a single colored triangle
// drawn through a WebGPU pipeline.
//
// # Overview
//
// The program is a short, fixed sequence: acquire a GPU device, build one
// two-stage shader pipeline, upload a 9-float vertex buffer and a 3-float
// color buffer, and submit one draw call whenever the user moves a control.
// This package owns the data that flows into those buffers:
//
//   - [VertexSet]: three points in clip space (z = 0), translated horizontally
//     by the slider
//   - [Color]: the RGB fill color chosen by the color picker
//   - [Slider], [ColorPicker]: controls that turn user actions into [Input]
//   - [Scene]: applies inputs and tracks which buffers need re-upload
//
// GPU work lives in the render package, which composes the surface binder,
// pipeline builder, geometry and uniform buffers, and frame submitter.
//
// # Quick Start
//
//	scene := triangle.NewScene(triangle.VariantInteractive)
//	slider := triangle.NewSlider()
//
//	scene.Apply(slider.Set(0.25))             // x += 0.25 on every vertex
//	scene.Apply(triangle.ColorInput{Color: triangle.Green})
//
//	geometry := scene.Vertices().Bytes()      // 36 bytes, little-endian f32
//	color := scene.Color().Bytes()            // 12 bytes, little-endian f32
//
// # Coordinate System
//
// Vertices are in WebGPU clip space:
//   - X in [-1, 1], increases right
//   - Y in [-1, 1], increases up
//   - Z is always 0
package triangle

// Version information
const (
	// Version is the current version of the module
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
