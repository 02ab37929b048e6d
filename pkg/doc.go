// Package pkg provides the libraries behind growthchart.
//
// # Overview
//
// growthchart lays out stacked and clustered bar charts from tabular period
// data and annotates them with growth indicators, threshold lines, labels and
// a legend. The pkg directory is organized into these areas:
//
//  1. [chart] - The layout engine (table, scale, stack, label, legend, growth, layout)
//  2. [source] - Data loading from JSON, CSV and XLSX
//  3. [render] - Output surfaces (SVG, PNG, PDF, JSON)
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache] - File, Redis and MongoDB cache backends
//  6. [config] - The versioned TOML configuration
//
// # Architecture
//
//	JSON / CSV / XLSX
//	       ↓
//	  [source] package (raw groups and measures)
//	       ↓
//	  [chart/layout] package (scales, segments, labels, indicators)
//	       ↓
//	  [render/sink] package
//	       ↓
//	  SVG/PNG/PDF/JSON output
//
// The layout is a pure function of the data, a [config.LayoutConfig] and a
// text measurer, so it is cached by content hash and can be rendered again
// without recomputation.
//
// # Quick Start
//
//	raw, err := source.Load("sales.csv")
//	if err != nil {
//	    return err
//	}
//	l := layout.Compute(raw, config.DefaultLayout(), measure.Heuristic{})
//	if err := l.Err(); err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(l)
//
// Supporting packages:
//
//   - [errors] - Coded errors shared by the engine and the HTTP server
//   - [measure] - Text width measurement (OpenType and heuristic)
//   - [fonts] - The embedded font
//   - [observability] - Hooks for pipeline, cache and HTTP events
//   - [httputil] - HTTP server plumbing
//   - [buildinfo] - Version information
package pkg
