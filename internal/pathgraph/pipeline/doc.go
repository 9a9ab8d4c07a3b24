// Package pipeline wires l1pose through l7merge into one forward run
// over an immutable pose store.
//
// It is kept separate from the top-level pathgraph package (which
// holds the shared data model every layer depends on) because a stage
// orchestrator that imported pathgraph's own dependents would form an
// import cycle: l1pose..l7merge import pathgraph for its types, so
// pathgraph itself cannot import them back.
package pipeline
