// Package types defines the Session interface, the snapshot data model, and
// the error taxonomy for tabula.
// Implements: table-browsing core (Session, ColumnDescriptor, Snapshot,
//
//	CurrentTable, Config, ErrorCode).
package types
