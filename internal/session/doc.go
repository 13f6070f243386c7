// Package session runs the interactive command loop over one record set.
//
// A Session moves between three states:
//   - Idle: waiting for a top-level command
//   - CollectingInput: a handler is prompting for a value and re-prompting
//     until a validator accepts it
//   - Terminated: quit saved the record set
//
// Every suspension point is a blocking read of one operator line. Nothing
// is written to the backend until quit; input that ends before quit
// discards every change with ErrInputClosed.
package session
