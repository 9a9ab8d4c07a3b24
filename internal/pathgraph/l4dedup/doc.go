// Package l4dedup owns Layer 4 (Deduplication) of the pathgraph
// pipeline.
//
// Responsibilities: collapse back-and-forth re-traversals of the same
// corridor stretch (stage 1) and merge spatially near-duplicate points
// (stage 2), per floor. Stage 2 is backed by a genuine 2-D k-d tree so
// the pass stays O(N log N); a pairwise O(N^2) scan is forbidden by
// spec.md §4.5.
//
// The k-d tree here is also reused by l7merge for deterministic
// nearest-node passage stitching.
//
// Dependency rule: L4 depends only on pathgraph's shared types; it
// knows nothing about floors, polylines, or graphs.
package l4dedup
