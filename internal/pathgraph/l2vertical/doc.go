// Package l2vertical owns Layer 2 (Vertical passage detection) of the
// pathgraph pipeline.
//
// Responsibilities: slide a fixed-size window over Z to find runs of
// sustained vertical motion, group them into candidate passages,
// classify each as STAIRCASE or ELEVATOR by its XY/Z travel ratio, and
// merge adjacent passages split by SLAM jitter.
//
// Detection runs before floor separation so stair points never
// contaminate a floor's Z-histogram.
//
// Dependency rule: L2 depends only on pathgraph's shared types and
// internal/config; it never looks at floor assignment.
package l2vertical
