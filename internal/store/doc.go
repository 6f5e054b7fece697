// Package store keeps the set of URLs discovered for each hostname.
//
// All access goes through the Store interface. Implementations guarantee that
// one InsertUnique call is atomic with respect to every other call, so readers
// observe either none or all of an insert and never see a host's set shrink.
//
// Two backends are provided:
//   - Memory: a map of sets behind a single sync.RWMutex
//   - SQLite: a private in-memory SQLite database (modernc.org/sqlite)
//
// Neither backend outlives the process.
package store
