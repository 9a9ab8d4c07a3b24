// Package l7merge owns Layer 7 (FloorGraphMerger) of the pathgraph
// pipeline.
//
// Responsibilities: union the per-floor node and edge sets produced by
// l6graph, then stitch each surviving vertical passage into the graph
// as a bidirectional VERTICAL_STAIRCASE/VERTICAL_ELEVATOR edge between
// the nodes nearest its entry and exit positions. A passage with no
// candidate node on either endpoint floor is skipped and recorded in
// run statistics rather than failing the run.
//
// Dependency rule: L7 is the last pure stage; it depends on
// pathgraph's shared types and l4dedup's k-d tree (reused here for
// deterministic nearest-node lookup), but nothing downstream depends
// on it.
package l7merge
