// Package core defines the shared language of the relsql system.
//
// This package contains:
//   - Logical plan nodes (SelectExpr, table sources, expressions, orderings)
//   - Row-write requests (ModificationCommand, ColumnModification)
//   - Render output types (Command, ParameterValue, ResultGrouping)
//   - Pure data configuration (IdentifierConfig, AdapterConfig, TargetConfig)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
//
// Plan nodes are owned by the caller. Renderers treat them as read-only.
package core
