package root

import (
	"onroad-options/pkg/carstate"
	"onroad-options/pkg/input"
	"onroad-options/pkg/onroad"
	"onroad-options/pkg/params"
	"onroad-options/ui"
	onroadwidget "onroad-options/widgets/onroad"

	"github.com/veandco/go-sdl2/sdl"
)

// Deps are the services the root screen drives from the render loop.
type Deps struct {
	Store     *params.Params
	Watcher   *params.Watcher
	Cars      *carstate.FileSource
	Closeable bool
}

// RootScreen owns the window contents: a status strip while the options
// panel is closed and the panel itself while it is open.
type RootScreen struct {
	// SDL2 rendering
	window   *sdl.Window
	renderer *sdl.Renderer
	fonts    *ui.Fonts

	// Parameter services, polled once per frame
	watcher *params.Watcher
	cars    *carstate.FileSource

	panel  *onroad.Panel
	widget *onroadwidget.Widget

	// Set by panel change notifications and input; cleared after a frame
	// is presented.
	dirty bool

	// Input tracking
	keyState    []uint8
	keyTracker  input.KeyPressTracker
	mouseButton input.MouseButtonTracker
	clicks      input.ClickTracker
}
