// Package keyring stores the PostgreSQL connection string in the OS
// credential store so it never has to live in a config file on disk.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitkit/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string is stored.
	ErrNotFound = errors.New("no connection string stored in keyring")
	// ErrUnavailable wraps backend failures, typically a missing or
	// locked OS keyring.
	ErrUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString reads the stored connection string.
func GetConnectionString() (string, error) {
	value, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	default:
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// SetConnectionString stores the connection string, replacing any
// previous value.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string.
func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// IsAvailable reports whether the keyring backend responds at all. It
// probes the habitkit entry; an empty keyring still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
