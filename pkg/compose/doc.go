// Package compose turns slot artwork into drawable raster assets.
//
// A [Compositor] takes the bytes of one slot and the [dimensions.ComponentSpec]
// it fills, and produces an [Asset] sized for the component at the
// compositing resolution:
//
//   - Rectangles are cover-fitted: scaled to the larger of the width and
//     height ratios, then center-cropped. Artwork is never letterboxed.
//   - Discs are cover-fitted to the diameter, clipped to a circle
//     (transparent outside) and punched with an opaque center hole.
//   - Missing or undecodable artwork becomes a placeholder: a light-gray
//     fill in the component's shape with a dashed border, a diagonal stroke
//     and an "Image Error" label.
//
// Composite only fails for resource problems (a source image above the
// pixel budget). Every other failure is reported on [Asset.Err] and
// rendered as a placeholder, so callers can keep going.
//
// Source bytes are read, never modified.
package compose
