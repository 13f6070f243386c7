// Package catalog defines the record types of the lending catalog.
//
// This package contains type definitions only. Every other internal package
// imports catalog; catalog imports nothing internal.
//
// Key design constraints:
//   - Record IDs are positive, unique and immutable once assigned
//   - Field access goes through the Attribute table, never through reflection
//   - Field values are a sealed union of Text and TextList
//   - JSON field names match the on-disk document (BookID, Title, ...)
package catalog
