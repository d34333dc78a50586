package onroad

// Row is a pressable option row: a round icon, a title and a subtitle.
// It keeps no state beyond what the last update call set.
type Row struct {
	store   Reader
	display Display
	visible bool
	pressed bool

	activated []func()
	onUpdate  func()
}

// NewRow creates a hidden, empty row reading values from store.
func NewRow(store Reader) *Row {
	return &Row{store: store}
}

// OnActivated subscribes fn to presses of this row.
func (r *Row) OnActivated(fn func()) {
	r.activated = append(r.activated, fn)
}

// Activate is called by the input layer when the row is clicked.
func (r *Row) Activate() {
	for _, fn := range r.activated {
		fn()
	}
}

// UpdateDynamicLaneProfile renders the lane profile stored under key.
func (r *Row) UpdateDynamicLaneProfile(key string) {
	r.setDisplay(LaneProfileDisplay(Atoi(r.store.Get(key))))
}

// UpdateGapAdjustCruise renders the driving personality stored under key.
func (r *Row) UpdateGapAdjustCruise(key string) {
	r.setDisplay(GapPersonalityDisplay(Atoi(r.store.Get(key))))
}

// UpdateSpeedLimitControl renders the speed limit control flag stored under key.
func (r *Row) UpdateSpeedLimitControl(key string) {
	r.setDisplay(SpeedLimitControlDisplay(Atoi(r.store.Get(key))))
}

func (r *Row) setDisplay(d Display) {
	if r.display == d {
		return
	}
	r.display = d
	r.changed()
}

// SetVisible shows or hides the row.
func (r *Row) SetVisible(v bool) {
	if r.visible == v {
		return
	}
	r.visible = v
	r.changed()
}

// SetPressed marks the row as held down, for the pressed background.
func (r *Row) SetPressed(v bool) {
	if r.pressed == v {
		return
	}
	r.pressed = v
	r.changed()
}

func (r *Row) changed() {
	if r.onUpdate != nil {
		r.onUpdate()
	}
}

// Display returns everything the row currently shows.
func (r *Row) Display() Display { return r.display }

// Title returns the option value label, empty for unknown values.
func (r *Row) Title() string { return r.display.Title }

// Subtitle returns the option name.
func (r *Row) Subtitle() string { return r.display.Subtitle }

// IconColor returns the icon color as "#RRGGBB".
func (r *Row) IconColor() string { return r.display.IconColor }

// Visible reports whether the row is shown.
func (r *Row) Visible() bool { return r.visible }

// Pressed reports whether the row is held down.
func (r *Row) Pressed() bool { return r.pressed }
