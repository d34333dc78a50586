// Package carstate provides the read-only vehicle capability snapshot the
// onroad UI consults before letting the driver change a setting.
package carstate

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"onroad-options/pkg/params"
)

// CarParams is the subset of the vehicle parameters the UI cares about.
type CarParams struct {
	CarName                           string `yaml:"carName"`
	OpenpilotLongitudinalControl      bool   `yaml:"openpilotLongitudinalControl"`
	ExperimentalLongitudinalAvailable bool   `yaml:"experimentalLongitudinalAvailable"`
}

// Source hands out the current snapshot. Callers must treat it as
// read-only.
type Source interface {
	CarParams() CarParams
}

// BoolReader is the part of the params store HasLongitudinalControl needs.
type BoolReader interface {
	GetBool(key string) bool
}

// HasLongitudinalControl reports whether openpilot controls gas and brake.
// Cars where longitudinal control is experimental only get it when the
// driver opted in.
func HasLongitudinalControl(cp CarParams, p BoolReader) bool {
	if cp.ExperimentalLongitudinalAvailable {
		return p.GetBool(params.ExperimentalLongitudinalEnabled)
	}
	return cp.OpenpilotLongitudinalControl
}

// StaticSource always returns the same snapshot.
type StaticSource CarParams

func (s StaticSource) CarParams() CarParams {
	return CarParams(s)
}

// FileSource serves a snapshot loaded from a YAML file and reloads it
// when the file's modification time changes.
type FileSource struct {
	path      string
	cp        CarParams
	modTime   time.Time
	lastCheck time.Time
	every     time.Duration
}

// NewFileSource loads path immediately. A missing or malformed file
// yields an empty snapshot (no longitudinal control) and is retried on
// the next reload.
func NewFileSource(path string, every time.Duration) *FileSource {
	s := &FileSource{path: path, every: every}
	s.Reload()
	return s
}

// CarParams returns the last loaded snapshot. A nil source reports the
// zero snapshot.
func (s *FileSource) CarParams() CarParams {
	if s == nil {
		return CarParams{}
	}
	return s.cp
}

// Poll calls Reload at most once per configured interval.
func (s *FileSource) Poll() bool {
	if s == nil || time.Since(s.lastCheck) < s.every {
		return false
	}
	return s.Reload()
}

// Reload re-reads the file if it changed and reports whether the
// snapshot was replaced.
func (s *FileSource) Reload() bool {
	s.lastCheck = time.Now()

	info, err := os.Stat(s.path)
	if err != nil {
		if !s.modTime.IsZero() || s.cp != (CarParams{}) {
			log.Printf("carstate: %s unavailable, clearing snapshot: %v", s.path, err)
			s.cp = CarParams{}
			s.modTime = time.Time{}
			return true
		}
		return false
	}
	if info.ModTime().Equal(s.modTime) {
		return false
	}

	cp, err := Load(s.path)
	if err != nil {
		// Keep the last good snapshot; retry once the file changes again.
		s.modTime = info.ModTime()
		log.Printf("carstate: %v", err)
		return false
	}
	s.cp = cp
	s.modTime = info.ModTime()
	log.Printf("carstate: loaded %q (longitudinal=%t, experimental=%t)",
		cp.CarName, cp.OpenpilotLongitudinalControl, cp.ExperimentalLongitudinalAvailable)
	return true
}

// Load parses a car params YAML file.
func Load(path string) (CarParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CarParams{}, fmt.Errorf("failed to read car params: %w", err)
	}
	var cp CarParams
	if err := yaml.Unmarshal(data, &cp); err != nil {
		return CarParams{}, fmt.Errorf("failed to parse car params %s: %w", path, err)
	}
	return cp, nil
}
