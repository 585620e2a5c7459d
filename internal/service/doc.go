// Package service orchestrates export runs.
//
// ExportService drives one run over a building model: it checks that the
// storage parameter exists before any traversal, walks every qualifying
// network, writes one tree document per network, buckets the JSON graphs by
// discipline and writes the aggregate summary and identifier registries.
//
// Per-network traversal or rendering failures skip that network only. A
// missing storage definition or a persistence failure aborts the run.
//
// # Event System
//
// Progress is published on an EventBus (network exported or skipped, run
// completed or failed) so the CLI and watch mode can report without the
// service knowing about terminals.
package service
