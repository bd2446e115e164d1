// Package netlist provides the serialization boundary for built component
// hierarchies.
//
// # Overview
//
// A frozen layout.Component is a DAG of cells connected by positioned
// references. This package flattens that object graph into a [Design]: a
// flat list of [Cell] entries, children before parents, with shared cells
// written once. The format is used for JSON files, API responses and the
// design library (the types carry bson tags for the mongo store).
//
// # JSON Format
//
//	{
//	  "name": "compass_a1b2c3d4",
//	  "top": "compass_a1b2c3d4",
//	  "cells": [
//	    {
//	      "name": "rectangle_0f9e8d7c",
//	      "layers": [{"number": 1, "datatype": 0}],
//	      "polygons": 1
//	    },
//	    {
//	      "name": "compass_a1b2c3d4",
//	      "ports": [{"name": "e1", "x": -2, "y": 0, "orientation": 180, "width": 2, "layer": {"number": 1, "datatype": 0}}],
//	      "instances": [{"name": "rectangle_0f9e8d7c_0", "cell": "rectangle_0f9e8d7c", "transform": {"dx": 0, "dy": 0}}]
//	    }
//	  ]
//	}
//
// Geometry itself is not serialized, only per-cell layer lists and polygon
// counts; the SVG renderer is the geometry export path.
//
// # Validation
//
// [Read] validates what it decodes. [Validate] rejects duplicate cell
// names, instances pointing at cells the design does not define, duplicate
// instance names within a cell, a missing top cell, and reference cycles.
// Designs produced by [FromComponent] always pass; validation guards the
// other direction, hand-written or foreign files.
//
// # Concurrency
//
// Designs are plain values. All functions are safe for concurrent use as
// long as the caller does not mutate a Design while it is being written.
package netlist
