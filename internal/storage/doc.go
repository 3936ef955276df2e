// Package storage defines the persistence contracts for catalog data.
//
// The card catalog and set manifest are written once by the importer and read
// by every command that builds card lists. Implementations live in
// subpackages; sqlite is the only one.
//
// # Error Types
//
//   - ErrNotFound: a requested card is missing. It carries the NOT_FOUND code.
package storage
