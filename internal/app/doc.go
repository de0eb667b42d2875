// Package app is the composition root for trolley.
//
// # Startup
//
// Run wires the pieces together in a fixed order:
//
//  1. Load config from ~/.config/trolley/config.toml and TROLLEY_* variables
//  2. Load the product catalog (built in, or the YAML file named by catalog_path)
//  3. Open the JSON log file under the data directory
//  4. Open the bbolt database under the data directory
//  5. Build every store, seeding cart, counter and theme from the database
//  6. Subscribe the persister so flushed snapshots are written back
//  7. Run the UI, or replay JSON actions from stdin when it is not a terminal
//
// Stores are built before step 7 decides how they will be driven, so both
// paths see the same restored state.
//
// # Persistence
//
// Store subscribers never touch the database directly. They hand the encoded
// snapshot to a persister, which keeps only the newest value per key and
// writes from its own goroutine:
//
//	store flush ──> subscriber ──> persister.Queue(key, value)
//	                                   │
//	                         background writer ──> kv.Set
//
// Failed writes are retried with exponential backoff capped at 30 seconds.
// When Run returns, pending values get one final write before the database
// is closed.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid config file, environment override, or catalog
//   - Log file or database that cannot be opened
//   - A replay line that fails to decode or is rejected by the reducer
//
// Recoverable errors (logged):
//   - Unreadable or corrupt persisted values, which fall back to defaults
//   - Failed background writes
package app
