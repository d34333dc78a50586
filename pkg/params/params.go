package params

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

var (
	// ErrNotFound is returned by a Backend when a key has never been written.
	ErrNotFound = errors.New("param not found")
	// ErrUnknownKey is returned when writing a key that is not registered.
	ErrUnknownKey = errors.New("unknown param key")
)

// Keys read and written by the onroad options panel and its host.
const (
	DynamicLaneProfile              = "DynamicLaneProfile"
	DynamicLaneProfileToggle        = "DynamicLaneProfileToggle"
	LongitudinalPersonality         = "LongitudinalPersonality"
	SpeedLimitControl               = "SpeedLimitControl"
	ExperimentalLongitudinalEnabled = "ExperimentalLongitudinalEnabled"
	DongleID                        = "DongleId"
)

// defaults holds every known key with the value written by SeedDefaults.
// An empty default means the key is known but never seeded.
var defaults = map[string]string{
	DynamicLaneProfile:              "2",
	DynamicLaneProfileToggle:        "0",
	LongitudinalPersonality:         "2",
	SpeedLimitControl:               "0",
	ExperimentalLongitudinalEnabled: "0",
	DongleID:                        "",
}

// Backend is the raw storage behind Params.
type Backend interface {
	Read(key string) (string, error)
	Write(key, value string) error
	Delete(key string) error
	Close() error
}

// Store is the read/write surface consumers depend on.
type Store interface {
	Get(key string) string
	GetBool(key string) bool
	Put(key, value string) error
	PutBool(key string, value bool) error
}

// Params is a string-keyed persistent settings store. Reads never fail:
// a missing or unreadable key reads as the empty string.
type Params struct {
	backend Backend
}

// New wraps a backend.
func New(b Backend) *Params {
	return &Params{backend: b}
}

// IsKnown reports whether key is registered.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}

// KnownKeys returns the registered keys in sorted order.
func KnownKeys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the stored value or "" when absent.
func (p *Params) Get(key string) string {
	v, err := p.backend.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("params: read %s failed: %v", key, err)
		}
		return ""
	}
	return v
}

// GetBool is true only for the exact value "1".
func (p *Params) GetBool(key string) bool {
	return p.Get(key) == "1"
}

// Put writes value under a registered key.
func (p *Params) Put(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := p.backend.Write(key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// PutBool stores "1" or "0".
func (p *Params) PutBool(key string, value bool) error {
	if value {
		return p.Put(key, "1")
	}
	return p.Put(key, "0")
}

// Remove deletes a key. Removing a missing key is not an error.
func (p *Params) Remove(key string) error {
	if err := p.backend.Delete(key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close releases the backend.
func (p *Params) Close() error {
	return p.backend.Close()
}

// SeedDefaults writes the default value of every registered key that is
// currently unset. It returns the keys that were written.
func SeedDefaults(s Store) ([]string, error) {
	var seeded []string
	for _, key := range KnownKeys() {
		def := defaults[key]
		if def == "" || s.Get(key) != "" {
			continue
		}
		if err := s.Put(key, def); err != nil {
			return seeded, err
		}
		seeded = append(seeded, key)
	}
	return seeded, nil
}
