// Package l3floors owns Layer 3 (Floor separation) of the pathgraph
// pipeline.
//
// Responsibilities: partition non-vertical trajectory points into floor
// clusters by Z-histogram peak analysis, and attach from/to floor
// labels to each vertical passage by nearest-centroid matching.
//
// Dependency rule: L3 depends on l2vertical's passage shape but never
// on l4dedup or later layers.
package l3floors
