// Package domain defines the records of the pipeline network and the pure
// graph functions computed over them.
//
// # Core Types
//
// Station is a compressor station, a node of the network.
//
// Pipeline is a transport segment with a diameter, a repair flag and two
// optional station endpoints (Endpoint). An unset endpoint shows up in the
// derived graph under UnsetStationID.
//
// Snapshot is the ordered content of the record store, exchanged with codecs
// and repositories.
//
// # Connectivity
//
// BuildAdjacency derives the directed station graph from pipelines, one edge
// per pipeline. TopologicalOrder walks that graph depth-first from every
// station and returns ids in finish order, downstream stations first.
// The graph is rebuilt on every call; nothing is cached.
//
// Cycles are not detected. The traversal terminates on cyclic graphs but the
// resulting order is only meaningful for the acyclic part.
package domain
