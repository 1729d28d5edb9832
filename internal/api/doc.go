// Package api defines the showsaver server wire contract and the pure
// transforms from server payloads to render models.
//
// The server owns all job state; these types are read-only projections.
// BuildQueueView is deliberately a pure function of a single snapshot so
// each poll tick replaces the rendered queue wholesale instead of patching
// deltas.
package api
