// Package sink renders a computed [layout.Layout] into output formats.
//
// Every sink draws the same plan: axes and column labels, bar segments,
// threshold lines, visible value labels, growth indicators and the legend.
// Segment, label and indicator coordinates are plot-relative and are
// translated by [layout.Layout.Plot]; legend anchors are already in frame
// coordinates. A failed layout renders its error message centered in an
// otherwise blank frame.
//
// Colors and font sizes are not part of the layout; they come from a [Style],
// usually derived from the configuration with [StyleFromConfig].
//
// # Formats
//
//   - SVG: [RenderSVG], with svgo
//   - PNG: [RenderPNG], native raster with gg and the embedded font
//   - PDF: [RenderPDF], SVG converted by rsvg-convert
//   - JSON: [RenderJSON], the layout itself
package sink
