// Package service implements the operations of the pipeline network on top
// of the record store and a persistence repository.
//
// NetworkService is the single entry point used by the console: it adds and
// edits records, connects stations, computes the topological order and
// saves or reloads the whole network. Every mutation is published on the
// EventBus; the binary subscribes a logger to it.
//
// Like the record store, NetworkService is meant for one caller at a time.
package service
