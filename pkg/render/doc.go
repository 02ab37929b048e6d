// Package render turns resolved chart layouts into output artifacts.
//
// # Overview
//
// The layout engine ([layout.Compute]) produces a drawing plan without
// touching any rendering surface. This package and its [sink] subpackage
// are the surfaces:
//
//   - [sink.RenderSVG] writes vector output with svgo
//   - [sink.RenderPNG] rasterizes natively with gg and the embedded font
//   - [sink.RenderPDF] converts the SVG through rsvg-convert
//   - [sink.RenderJSON] writes the layout itself
//
// # Format Conversion
//
// [ToPDF] converts any SVG with the external rsvg-convert tool (from
// librsvg). [Available] reports whether the tool is installed.
//
//	svg := sink.RenderSVG(l, sink.WithTitle("Regions"))
//	pdf, err := render.ToPDF(ctx, svg)
//
// [layout.Compute]: github.com/matzehuels/growthchart/pkg/chart/layout.Compute
// [sink]: github.com/matzehuels/growthchart/pkg/render/sink
// [sink.RenderSVG]: github.com/matzehuels/growthchart/pkg/render/sink.RenderSVG
// [sink.RenderPNG]: github.com/matzehuels/growthchart/pkg/render/sink.RenderPNG
// [sink.RenderPDF]: github.com/matzehuels/growthchart/pkg/render/sink.RenderPDF
// [sink.RenderJSON]: github.com/matzehuels/growthchart/pkg/render/sink.RenderJSON
package render
