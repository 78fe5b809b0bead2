// Package template defines the request shapes consumed by the layout and
// compositing engine.
//
// A [Request] names up to seven artwork slots, four optional text fields and
// a page density. Slot images arrive either as raw bytes (already cropped to
// the slot's aspect ratio by an external cropping step) or as a reference
// (local path or http(s) URL) that [github.com/matzehuels/minicase/pkg/source]
// dereferences before compositing. A slot with neither is "not provided" and
// renders as a placeholder.
package template
