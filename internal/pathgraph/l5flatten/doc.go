// Package l5flatten owns Layer 5 (PathFlattener) of the pathgraph
// pipeline.
//
// Responsibilities: per floor, split the deduplicated point sequence at
// gaps, apply Ramer-Douglas-Peucker to find corner vertices, and
// resample each retained segment at uniform spacing, producing the
// straight-line-snapped Polylines that l6graph builds a graph from.
// StraightenPath offers an opt-in PCA-projection alternative for
// callers who prefer it over RDP + resample.
//
// Dependency rule: L5 depends only on pathgraph's shared types; it
// knows nothing about vertical passages, floors, or graphs.
package l5flatten
