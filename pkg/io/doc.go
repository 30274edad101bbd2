// Package io provides JSON and TOML import and export for kolam parameter
// files.
//
// # Overview
//
// A parameter file captures everything needed to reproduce a render or a
// remote generation: the pattern parameters, the surface, the layer
// strategy and optionally a design family for the remote generator.
//
// # JSON Format
//
//	{
//	  "params": {
//	    "gridType": "square",
//	    "rows": 8,
//	    "columns": 8,
//	    "dotSpacing": 20,
//	    "strokeType": "continuous",
//	    "symmetryType": "4-fold",
//	    "iterations": 1
//	  },
//	  "width": 400,
//	  "height": 400,
//	  "design": {"design_type": "kambi", "rhombus_size": 5}
//	}
//
// # TOML Format
//
//	width = 400
//	height = 400
//
//	[params]
//	grid_type = "square"
//	rows = 8
//	columns = 8
//	dot_spacing = 20.0
//	stroke_type = "continuous"
//	symmetry_type = "4-fold"
//	iterations = 1
//
//	[design]
//	type = "kambi"
//	rhombus_size = 5
//
// Unknown keys are rejected in both formats so typos surface immediately.
// Missing parameter fields take their defaults.
//
// # Import
//
// Use [Import] to read a file (the format follows the extension) or
// [Read] to decode from any io.Reader:
//
//	doc, err := io.Import("festival.toml")
//	opts := doc.PipelineOptions()
//
// # Export
//
// Use [Export] or [Write]. Exported files re-import to an equal [Document].
package io
