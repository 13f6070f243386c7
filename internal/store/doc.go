// Package store owns the session's record set and moves it to and from disk.
//
// The package has two halves:
//   - RecordStore: the ordered in-memory record set with id assignment and
//     create/replace/remove mutations
//   - Backend: full-document load and save. JSONFile reads and writes one
//     JSON array; SQLiteBackend keeps the same JSON payload in a single
//     named row of a SQLite database
//
// # Persistence Model
//
// A document is loaded exactly once when a session starts and saved exactly
// once when it ends. There is no partial or incremental write: Save always
// replaces the whole document.
//
// # Load Errors
//
// Every load failure is a *LoadError carrying one of the LoadCode values.
// Load failures are fatal to the session.
package store
