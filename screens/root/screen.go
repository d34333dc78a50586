package root

import (
	"fmt"
	"log"

	"onroad-options/pkg/carstate"
	"onroad-options/pkg/input"
	"onroad-options/pkg/onroad"
	"onroad-options/ui"
	onroadwidget "onroad-options/widgets/onroad"

	"github.com/veandco/go-sdl2/sdl"
)

const statusHeight = 72

var (
	statusBackground = sdl.Color{R: 0x20, G: 0x21, B: 0x23, A: 230}
	statusText       = sdl.Color{R: 0x9b, G: 0xa0, B: 0xa5, A: 255}
)

// NewRootScreen creates and initializes the root screen
func NewRootScreen(window *sdl.Window, renderer *sdl.Renderer, deps Deps) *RootScreen {
	rg := &RootScreen{
		window:      window,
		renderer:    renderer,
		watcher:     deps.Watcher,
		cars:        deps.Cars,
		dirty:       true,
		keyTracker:  input.NewKeyPressTracker(),
		mouseButton: input.NewMouseButtonTracker(sdl.ButtonLMask()),
	}

	fonts, err := ui.LoadFonts()
	if err != nil {
		log.Printf("Warning: Failed to initialize fonts: %v", err)
	}
	rg.fonts = fonts

	// Nil pointers must not reach the panel as non-nil interfaces.
	var cars carstate.Source
	if deps.Cars != nil {
		cars = deps.Cars
	}
	var watcher onroad.Watcher
	if deps.Watcher != nil {
		watcher = deps.Watcher
	}
	rg.panel = onroad.NewPanel(deps.Closeable, deps.Store, cars, watcher)
	rg.panel.OnChange(rg.Invalidate)
	rg.panel.OnClose(rg.hideUI)
	rg.widget = onroadwidget.NewWidget(rg.panel)

	// Without a close button there is no way back to the status strip.
	if !deps.Closeable {
		rg.showUI()
	}

	return rg
}

// Invalidate schedules a redraw on the next frame.
func (rg *RootScreen) Invalidate() {
	rg.dirty = true
}

// Update polls parameter sources and handles SDL2 input
func (rg *RootScreen) Update() error {
	// Watcher callbacks run here, on the render loop.
	if rg.watcher != nil {
		rg.watcher.Poll()
	}
	if rg.cars != nil && rg.cars.Poll() {
		rg.panel.Refresh()
		rg.Invalidate()
	}

	w, h := rg.window.GetSize()
	rg.widget.Layout(sdl.Rect{X: 0, Y: 0, W: w, H: h})

	rg.keyState = sdl.GetKeyboardState()
	mx, my, buttons := sdl.GetMouseState()

	if rg.panel.Visible() {
		rg.handleUIInput(mx, my, buttons)
	} else {
		rg.handleMainInput(buttons)
	}
	return nil
}

// handleUIInput processes input while the options panel is open
func (rg *RootScreen) handleUIInput(mx, my int32, buttons uint32) {
	pressed, released := rg.mouseButton.Edges(buttons)
	if pressed {
		rg.clicks.Press(rg.widget.TargetAt(mx, my))
	}
	if released {
		target, ok := rg.clicks.Release(rg.widget.TargetAt(mx, my))
		rg.widget.SetHeld(input.NoTarget)
		if ok {
			rg.widget.Activate(target)
		}
	}
	if held, ok := rg.clicks.Held(); ok {
		// Dragging off the target drops the pressed look but keeps the gesture.
		if rg.widget.TargetAt(mx, my) == held {
			rg.widget.SetHeld(held)
		} else {
			rg.widget.SetHeld(input.NoTarget)
		}
	}
	if pressed || released {
		rg.Invalidate()
	}

	if rg.keyTracker.IsPressed(rg.keyState, sdl.SCANCODE_DOWN) {
		rg.widget.MoveSelection(1)
		rg.Invalidate()
	}
	if rg.keyTracker.IsPressed(rg.keyState, sdl.SCANCODE_UP) {
		rg.widget.MoveSelection(-1)
		rg.Invalidate()
	}
	if rg.keyTracker.IsPressed(rg.keyState, sdl.SCANCODE_RETURN) ||
		rg.keyTracker.IsPressed(rg.keyState, sdl.SCANCODE_SPACE) {
		rg.widget.ActivateSelection()
		rg.Invalidate()
	}
	if rg.keyTracker.IsPressed(rg.keyState, sdl.SCANCODE_ESCAPE) {
		rg.panel.RequestClose()
	}
}

// handleMainInput processes input while only the status strip is shown
func (rg *RootScreen) handleMainInput(buttons uint32) {
	_, released := rg.mouseButton.Edges(buttons)
	if released || rg.keyTracker.IsPressed(rg.keyState, sdl.SCANCODE_DOWN) {
		rg.showUI()
	}
}

// Draw renders the frame if anything changed since the last one
func (rg *RootScreen) Draw() error {
	if !rg.dirty {
		return nil
	}

	rg.renderer.SetDrawColor(0, 0, 0, 255)
	rg.renderer.Clear()

	if rg.panel.Visible() {
		if err := rg.widget.Draw(rg.renderer, rg.fonts); err != nil {
			return err
		}
	} else {
		w, h := rg.window.GetSize()
		rg.drawStatus(w, h)
	}

	rg.renderer.Present()
	rg.dirty = false
	return nil
}

// drawStatus renders a one-line summary of the current options
func (rg *RootScreen) drawStatus(screenWidth, screenHeight int32) {
	strip := sdl.Rect{X: 0, Y: screenHeight - statusHeight, W: screenWidth, H: statusHeight}
	rg.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	ui.SetDrawColor(rg.renderer, statusBackground)
	rg.renderer.FillRect(&strip)

	if rg.fonts == nil || rg.fonts.Status == nil {
		return
	}
	ui.RenderTextCentered(rg.renderer, statusLine(rg.panel.State()), strip, statusText, rg.fonts.Status)
}

func statusLine(s onroad.OptionState) string {
	slc := 0
	if s.SpeedLimitControlEnabled {
		slc = 1
	}
	return fmt.Sprintf("%s  |  %s / %s / %s  |  Tap or press Down",
		onroad.Heading,
		onroad.LaneProfileDisplay(s.LaneProfileMode).Title,
		onroad.GapPersonalityDisplay(s.GapPersonality).Title,
		onroad.SpeedLimitControlDisplay(slc).Title)
}

// showUI opens the options panel
func (rg *RootScreen) showUI() {
	rg.clicks.Cancel()
	rg.panel.Show()
	rg.Invalidate()
}

// hideUI returns to the status strip
func (rg *RootScreen) hideUI() {
	rg.clicks.Cancel()
	rg.widget.SetHeld(input.NoTarget)
	rg.panel.Hide()
	rg.Invalidate()
}

// Close cleans up resources
func (rg *RootScreen) Close() {
	if rg.fonts != nil {
		rg.fonts.Close()
	}
}
