// Package topograph is your in-memory toolkit for building, indexing,
// and wiring spatially embedded populations — from geometric primitives
// to probabilistic connection generation at scale.
//
// 🚀 What is topograph?
//
//	A modern, deterministic, concurrency-aware library that brings together:
//		• Core primitives: 2-D/3-D vectors, boxes, periodic wrapping
//		• Masks: box, ball and an algebra of combinators with sound bounds
//		• Spatial index: arena-backed quadtrees & octrees with periodic queries
//		• Samplers: alias tables (Vose, Walker) for weighted draws in O(1)
//		• Parameter fields: constant, linear, exponential, gaussian & friends
//		• Layers: free and grid populations with extents and periodic edges
//		• Connect: target/source-driven, convergent & divergent generation
//		• Dump: CSV export of node tables and connection tables
//		• Topofile: YAML experiment descriptions, validated fail-closed
//
// ✨ Why choose topograph?
//
//   - Deterministic – seeded draws reproduce the same wiring at any worker count
//   - Rock-solid guarantees – conservative pruning, explicit error contracts
//   - Pure Go core – heavy lifting in-process, no cgo
//   - Extensible – progress hooks and pluggable sinks for custom logic
//
// Under the hood, everything is organized under focused subpackages:
//
//	core/     — vectors, boxes, wrapping, RNG and collaborator contracts
//	mask/     — geometric masks and their combinator algebra
//	ntree/    — quadtree/octree spatial index with periodic image queries
//	sampler/  — weighted index samplers behind one draw contract
//	field/    — distance- and position-dependent parameter fields
//	layer/    — free and grid population layers
//	connect/  — the connection generator and its worker pool
//	dump/     — CSV writers for nodes and connections
//	topofile/ — YAML experiment loader
//
// Quick ASCII example:
//
//	    ┌───────────────┐
//	    │ · · ○ ● ○ · · │   a ball mask anchored on ● selects the ○
//	    └───────────────┘
//
//	one driver, one mask, one kernel — one deterministic wiring.
//
// Dive into the per-package docs for full examples and the exact
// semantics of masks, wrapping and fan-count constraints.
//
//	go get github.com/katalvlaran/topograph
package topograph
