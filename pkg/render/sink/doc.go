// Package sink provides [render.Surface] implementations.
//
//   - [NewPDF]: the print document, drawn with fpdf in millimeters. Text
//     uses the core Helvetica faces, so no font files are embedded.
//   - [NewPNG]: a screen preview with all pages stacked vertically.
//   - [NewJSON]: a log of every draw call, in millimeters and points.
//
// [RenderJSON] exports a [render.Plan] without drawing anything.
//
// All sinks are deterministic: the same draws produce the same bytes. The
// PDF sink takes its creation date from an option instead of the wall
// clock for that reason.
package sink
