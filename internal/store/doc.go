// Package store provides a SQLite-backed ordered key/value store.
//
// Keys and values live in a single WITHOUT ROWID table keyed by BLOB, so
// SQLite's bytewise BLOB comparison gives the ascending key order that
// prefix scans rely on.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - One open connection: SQLite allows a single writer
//
// Write batches run in one transaction. Either every mutation in a batch is
// visible after commit or none is.
package store
