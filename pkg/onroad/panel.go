// Package onroad implements the onroad options panel: three option rows
// driven by the params store and the vehicle capability snapshot. It has
// no rendering dependency; widgets/onroad draws it.
package onroad

import (
	"log"
	"strconv"

	"onroad-options/pkg/carstate"
	"onroad-options/pkg/params"
)

const (
	Heading = "ONROAD OPTIONS"
	Footer  = "SUNNYPILOT FEATURES"
)

// Store is the params surface the panel reads and writes.
type Store interface {
	Reader
	Put(key, value string) error
	PutBool(key string, value bool) error
}

// Watcher delivers store-change notifications on the panel's goroutine.
type Watcher interface {
	AddParam(key string)
	Subscribe(l params.Listener)
}

// Capabilities is the snapshot of what the driver may change right now.
type Capabilities struct {
	LaneProfileToggle   bool
	LongitudinalControl bool
}

var watchedKeys = []string{
	params.DynamicLaneProfile,
	params.DynamicLaneProfileToggle,
	params.LongitudinalPersonality,
	params.SpeedLimitControl,
}

// Panel holds the three option rows and keeps them in sync with the store.
// All methods must be called from the render loop goroutine.
type Panel struct {
	closeable bool
	store     Store
	cars      carstate.Source
	watcher   Watcher

	state OptionState

	laneProfile    *Row
	gapPersonality *Row
	speedLimit     *Row

	visible        bool
	updatesEnabled bool
	dirty          bool

	changeListeners []func()
	closeListeners  []func()
}

// NewPanel builds the rows and wires their activation to the option
// handlers. The panel starts hidden; Show renders it. watcher may be nil.
func NewPanel(closeable bool, store Store, cars carstate.Source, watcher Watcher) *Panel {
	p := &Panel{
		closeable:      closeable,
		store:          store,
		cars:           cars,
		watcher:        watcher,
		state:          LoadOptionState(store),
		updatesEnabled: true,
	}

	p.laneProfile = p.newRow(func() { p.changeDynamicLaneProfile(p.Capabilities()) })
	p.gapPersonality = p.newRow(func() { p.changeGapAdjustCruise(p.Capabilities()) })
	p.speedLimit = p.newRow(func() { p.changeSpeedLimitControl(p.Capabilities()) })

	if watcher != nil {
		watcher.Subscribe(func(key, value string) {
			p.syncState(key)
			p.Refresh()
		})
	}

	p.Refresh()
	return p
}

func (p *Panel) newRow(handler func()) *Row {
	r := NewRow(p.store)
	r.onUpdate = p.invalidate
	r.OnActivated(handler)
	return r
}

// Capabilities reads the current capability flags.
func (p *Panel) Capabilities() Capabilities {
	var cp carstate.CarParams
	if p.cars != nil {
		cp = p.cars.CarParams()
	}
	return Capabilities{
		LaneProfileToggle:   p.store.GetBool(params.DynamicLaneProfileToggle),
		LongitudinalControl: carstate.HasLongitudinalControl(cp, p.store),
	}
}

func (p *Panel) changeDynamicLaneProfile(caps Capabilities) {
	if caps.LaneProfileToggle {
		next := NextLaneProfile(p.state.LaneProfileMode)
		if p.persist(params.DynamicLaneProfile, p.store.Put(params.DynamicLaneProfile, strconv.Itoa(next))) {
			p.state.LaneProfileMode = next
		}
	}
	p.Refresh()
}

func (p *Panel) changeGapAdjustCruise(caps Capabilities) {
	if caps.LongitudinalControl {
		next := NextGapPersonality(p.state.GapPersonality)
		if p.persist(params.LongitudinalPersonality, p.store.Put(params.LongitudinalPersonality, strconv.Itoa(next))) {
			p.state.GapPersonality = next
		}
	}
	p.Refresh()
}

func (p *Panel) changeSpeedLimitControl(_ Capabilities) {
	next := !p.state.SpeedLimitControlEnabled
	if p.persist(params.SpeedLimitControl, p.store.PutBool(params.SpeedLimitControl, next)) {
		p.state.SpeedLimitControlEnabled = next
	}
	p.Refresh()
}

func (p *Panel) persist(key string, err error) bool {
	if err != nil {
		log.Printf("onroad: failed to persist %s: %v", key, err)
		return false
	}
	return true
}

// syncState pulls a changed option back into the cache so the next click
// steps from the persisted value.
func (p *Panel) syncState(key string) {
	switch key {
	case params.DynamicLaneProfile:
		p.state.LaneProfileMode = Atoi(p.store.Get(key))
	case params.LongitudinalPersonality:
		p.state.GapPersonality = Atoi(p.store.Get(key))
	case params.SpeedLimitControl:
		p.state.SpeedLimitControlEnabled = p.store.GetBool(key)
	}
}

// Refresh re-reads the store and capabilities and updates every row. It
// is safe to call at any time; a hidden panel only re-registers its keys.
func (p *Panel) Refresh() {
	if p.watcher != nil {
		for _, key := range watchedKeys {
			p.watcher.AddParam(key)
		}
	}

	if !p.visible {
		return
	}

	p.setUpdatesEnabled(false)

	caps := p.Capabilities()

	p.laneProfile.UpdateDynamicLaneProfile(params.DynamicLaneProfile)
	p.laneProfile.SetVisible(caps.LaneProfileToggle)

	p.gapPersonality.UpdateGapAdjustCruise(params.LongitudinalPersonality)
	p.gapPersonality.SetVisible(caps.LongitudinalControl)

	p.speedLimit.UpdateSpeedLimitControl(params.SpeedLimitControl)
	p.speedLimit.SetVisible(true)

	p.dirty = true
	p.setUpdatesEnabled(true)
}

// setUpdatesEnabled gates repaint notifications. Re-enabling flushes one
// notification if anything was invalidated meanwhile.
func (p *Panel) setUpdatesEnabled(v bool) {
	p.updatesEnabled = v
	if v && p.dirty {
		p.dirty = false
		p.notifyChange()
	}
}

func (p *Panel) invalidate() {
	if !p.updatesEnabled {
		p.dirty = true
		return
	}
	p.notifyChange()
}

func (p *Panel) notifyChange() {
	for _, fn := range p.changeListeners {
		fn()
	}
}

// OnChange registers a repaint listener.
func (p *Panel) OnChange(fn func()) {
	p.changeListeners = append(p.changeListeners, fn)
}

// OnClose registers a listener for close requests.
func (p *Panel) OnClose(fn func()) {
	p.closeListeners = append(p.closeListeners, fn)
}

// RequestClose is wired to the close button. Panels built without one
// ignore it.
func (p *Panel) RequestClose() {
	if !p.closeable {
		return
	}
	for _, fn := range p.closeListeners {
		fn()
	}
}

// Show makes the panel visible and refreshes it.
func (p *Panel) Show() {
	p.visible = true
	p.Refresh()
}

// Hide stops presentation updates until the next Show.
func (p *Panel) Hide() {
	p.visible = false
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return p.visible }

// Closeable reports whether the panel has a close button.
func (p *Panel) Closeable() bool { return p.closeable }

// State returns a copy of the cached option values.
func (p *Panel) State() OptionState { return p.state }

// Rows returns the rows in display order.
func (p *Panel) Rows() []*Row {
	return []*Row{p.laneProfile, p.gapPersonality, p.speedLimit}
}

// LaneProfileRow returns the dynamic lane profile row.
func (p *Panel) LaneProfileRow() *Row { return p.laneProfile }

// GapPersonalityRow returns the driving personality row.
func (p *Panel) GapPersonalityRow() *Row { return p.gapPersonality }

// SpeedLimitControlRow returns the speed limit control row.
func (p *Panel) SpeedLimitControlRow() *Row { return p.speedLimit }
