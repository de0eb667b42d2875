// Package ui provides the terminal user interface for trolley.
//
// The interface is a Bubble Tea program with three views:
//
//   - Shop: the product catalog next to the cart, with per-line quantity
//     controls and a prompt for typing a quantity directly
//   - Counter: the counter reducer and a tally held in a state.Value
//   - Activity: the tail of the structured log file
//
// The model never mutates state itself. Every key press that changes
// something is turned into actions and handed to the owning store in a
// single Batch, then the model rereads the stores. Run also subscribes to
// each store so the view follows changes made elsewhere.
//
// Stores are injected through Options; New substitutes fresh stores for any
// that are missing, which is what the tests rely on.
package ui
