// Package repository defines the data access interfaces for mepgraphs.
//
// Exported JSON graphs are persisted as element parameter values: a
// parameter definition bound to a storage scope (project information or
// individual networks) must exist before any value can be written. The
// export service checks this prerequisite once, before traversing any
// network, and aborts the run when the definition cannot be established.
//
// # SQLite Implementation
//
// The sqlite subpackage implements ParameterStore and RunRecorder on top of
// modernc.org/sqlite. The schema is migrated on open. Tests use in-memory
// databases.
package repository
