// Package l6graph owns Layer 6 (GraphBuilder) of the pathgraph
// pipeline.
//
// Responsibilities, per floor: detect junction vertices on a flattened
// polyline by turning angle, classify every emitted vertex as an
// ENDPOINT, WAYPOINT, or JUNCTION node, and connect consecutive emitted
// nodes with HORIZONTAL edges weighted by path length.
//
// Dependency rule: L6 depends only on pathgraph's shared types; it
// knows nothing about vertical passages or cross-floor merging.
package l6graph
