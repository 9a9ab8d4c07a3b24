// Package l1pose owns Layer 1 (Pose decoding) of the pathgraph pipeline.
//
// Responsibilities: read raw pose-store records in ascending id order,
// decode each 48-byte blob into a translation, and drop degenerate
// records (wrong length, non-finite components, or the store's
// uninitialized-row sentinel).
//
// Dependency rule: L1 depends only on posestore and pathgraph's shared
// types; nothing downstream depends back on it except through the
// Pipeline orchestrator.
package l1pose
