package store

import (
	"errors"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown store driver")

// Store maps a hostname to the set of URLs known for it.
//
// An error returned from any method is a store fault. Callers must not try to
// continue mutating the store after one, since the set may be inconsistent.
type Store interface {
	// InsertUnique adds urls to the set of host and returns exactly the ones
	// that were absent before the call.
	InsertUnique(host string, urls []string) ([]string, error)

	// URLs returns every URL known for host. It returns an empty slice for an
	// unseen host.
	URLs(host string) ([]string, error)

	// Count returns the number of URLs known for host, 0 for an unseen host.
	Count(host string) (int, error)

	// Hosts returns every hostname with at least one known URL.
	Hosts() ([]string, error)

	// Close releases resources held by the store.
	Close() error
}

// Open creates an empty store for the given driver.
func Open(driver string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// IsKnownDriver reports whether Open accepts driver.
func IsKnownDriver(driver string) bool {
	switch driver {
	case "", DriverMemory, DriverSQLite:
		return true
	default:
		return false
	}
}
