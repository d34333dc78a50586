package params

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open builds a store for the given backend kind. location is a directory
// for the file backend and a database path for sqlite.
func Open(kind, location string) (*Params, error) {
	switch strings.ToLower(kind) {
	case KindFile, "":
		b, err := NewFileBackend(location)
		if err != nil {
			return nil, err
		}
		return New(b), nil
	case KindSQLite:
		b, err := OpenSQLite(location)
		if err != nil {
			return nil, err
		}
		return New(b), nil
	case KindMemory:
		return New(NewMemBackend()), nil
	default:
		return nil, fmt.Errorf("unknown params backend %q", kind)
	}
}

// EnsureDeviceID returns the persisted device id, generating one on first use.
func EnsureDeviceID(s Store) (string, error) {
	if id := s.Get(DongleID); id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := s.Put(DongleID, id); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}
	return id, nil
}
