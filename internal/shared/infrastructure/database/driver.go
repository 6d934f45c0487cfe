package database

import (
	"fmt"
	"strings"
)

// Driver selects the meeting store backend.
type Driver string

const (
	// DriverMemory keeps meetings in a process-local slice.
	DriverMemory Driver = "memory"
	// DriverSQLite keeps meetings in an in-memory SQLite database.
	DriverSQLite Driver = "sqlite"
)

// String returns the string representation of the driver.
func (d Driver) String() string {
	return string(d)
}

// IsValid returns true if the driver is a known type.
func (d Driver) IsValid() bool {
	switch d {
	case DriverMemory, DriverSQLite:
		return true
	default:
		return false
	}
}

// ParseDriver resolves a driver name. An empty name selects DriverMemory.
func ParseDriver(name string) (Driver, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DriverMemory, nil
	}
	d := Driver(name)
	if !d.IsValid() {
		return "", fmt.Errorf("unsupported store driver: %q", name)
	}
	return d, nil
}
