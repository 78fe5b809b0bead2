// Package layout computes where template copies go on a sheet.
//
// All values are millimeters in page space: origin at the top-left corner
// of the sheet, y growing downward. Component boxes come from a
// [dimensions.Table]; nothing in this package hard-codes a component size
// or a page-size specific offset.
//
// # Copy placement
//
// One copy is centered in the printable area. Two or three copies are
// stacked from the top margin with equal vertical gaps above, between and
// below them, each horizontally centered:
//
//	gap = (printableHeight - n*copyHeight) / (n + 1)
//
// [ComputeCopyOrigins] fails with LAYOUT_OVERFLOW when the copies do not fit,
// INVALID_COPIES for densities outside 1..3 and INVALID_GEOMETRY for a
// malformed page.
package layout
