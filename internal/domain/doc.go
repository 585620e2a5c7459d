// Package domain defines the core domain types for the mepgraphs system graph exporter.
//
// This package contains the entities that describe an engineering model's
// distribution networks and the traversal trees derived from them.
//
// # Host Model
//
// Vertex is one connected component of a network (equipment, fitting,
// terminal device). It exposes a stable key, a label, and its adjacent
// vertices in the order the host model enumerates them.
//
// Network is one mechanical, electrical or piping system with a designated
// root vertex (the base equipment). Model is the collection of networks in one
// building document.
//
// # Traversal Tree
//
// TreeNode is the cycle-free structure produced by walking a network from its
// root. Every vertex is descended into at most once per traversal; any later
// encounter becomes a childless reference node.
//
// # Disciplines
//
// Discipline classifies networks as Mechanical, Electrical or Piping and
// indexes the per-discipline buckets used during aggregation.
//
// # Design Principles
//
// - No database or external dependencies
// - Trees are append-only while being built and read-only afterwards
// - Deterministic ordering everywhere; nothing relies on map iteration
package domain
