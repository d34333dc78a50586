package onroad

import (
	"onroad-options/pkg/input"
	"onroad-options/pkg/onroad"
	"onroad-options/ui"

	"github.com/veandco/go-sdl2/sdl"
)

// Target ids: the close button, then one per row in display order.
const (
	TargetClose = 0
	firstRow    = 1
)

const (
	marginX      = 40
	marginTop    = 40
	marginBottom = 25
	closeSize    = 140
	headingGap   = 32
	rowHeight    = 164
	rowSpacing   = 20
	rowPadX      = 32
	iconSize     = 68
)

var (
	backgroundColor  = sdl.Color{R: 0x33, G: 0x33, B: 0x33, A: 255}
	backgroundShade  = sdl.Color{R: 0x2a, G: 0x2a, B: 0x2a, A: 255}
	rowColor         = sdl.Color{R: 0x20, G: 0x21, B: 0x23, A: 255}
	rowPressedColor  = sdl.Color{R: 0x18, G: 0x19, B: 0x1b, A: 255}
	closeColor       = sdl.Color{R: 0x29, G: 0x29, B: 0x29, A: 255}
	closePressed     = sdl.Color{R: 0x3b, G: 0x3b, B: 0x3b, A: 255}
	focusColor       = sdl.Color{R: 59, G: 130, B: 246, A: 255}
	white            = sdl.Color{R: 255, G: 255, B: 255, A: 255}
	subtitleColor    = sdl.Color{R: 0x9b, G: 0xa0, B: 0xa5, A: 255}
	footerColor      = sdl.Color{R: 0xa0, G: 0xa0, B: 0xa0, A: 255}
	neutralIconColor = ui.HexColor(onroad.NeutralIconColor, sdl.Color{R: 0x3b, G: 0x43, B: 0x56, A: 255})
)

// Widget draws an onroad.Panel and maps pointer and keyboard input onto it.
type Widget struct {
	panel *onroad.Panel

	bounds    sdl.Rect
	closeRect sdl.Rect
	rowRects  []sdl.Rect

	selected    int
	closeIsHeld bool
}

// NewWidget creates a widget for panel.
func NewWidget(panel *onroad.Panel) *Widget {
	return &Widget{
		panel:    panel,
		rowRects: make([]sdl.Rect, len(panel.Rows())),
		selected: input.NoTarget,
	}
}

// Layout positions the close button and the visible rows inside bounds.
// Hidden rows get an empty rect and take no space.
func (w *Widget) Layout(bounds sdl.Rect) {
	w.bounds = bounds
	x := bounds.X + marginX
	width := bounds.W - 2*marginX

	w.closeRect = sdl.Rect{}
	if w.panel.Closeable() {
		w.closeRect = sdl.Rect{X: x, Y: bounds.Y + marginTop, W: closeSize, H: closeSize}
	}

	y := bounds.Y + marginTop + closeSize + headingGap + 32
	for i, row := range w.panel.Rows() {
		if !row.Visible() {
			w.rowRects[i] = sdl.Rect{}
			continue
		}
		w.rowRects[i] = sdl.Rect{X: x, Y: y, W: width, H: rowHeight}
		y += rowHeight + rowSpacing
	}

	if !w.isTarget(w.selected) {
		w.selected = input.NoTarget
	}
}

func (w *Widget) isTarget(target int) bool {
	for _, t := range w.targets() {
		if t == target {
			return true
		}
	}
	return false
}

// targets lists the currently interactive targets in focus order.
func (w *Widget) targets() []int {
	var out []int
	if w.panel.Closeable() {
		out = append(out, TargetClose)
	}
	for i, row := range w.panel.Rows() {
		if row.Visible() {
			out = append(out, firstRow+i)
		}
	}
	return out
}

// TargetAt returns the target under (px, py), or input.NoTarget.
func (w *Widget) TargetAt(px, py int32) int {
	p := sdl.Point{X: px, Y: py}
	if w.panel.Closeable() && p.InRect(&w.closeRect) {
		return TargetClose
	}
	for i, r := range w.rowRects {
		if r.W > 0 && p.InRect(&r) {
			return firstRow + i
		}
	}
	return input.NoTarget
}

// SetHeld shows target as pressed; input.NoTarget releases everything.
func (w *Widget) SetHeld(target int) {
	w.closeIsHeld = target == TargetClose
	for i, row := range w.panel.Rows() {
		row.SetPressed(target == firstRow+i)
	}
}

// Activate performs the action behind target.
func (w *Widget) Activate(target int) {
	switch {
	case target == TargetClose:
		w.panel.RequestClose()
	case target >= firstRow && target < firstRow+len(w.rowRects):
		row := w.panel.Rows()[target-firstRow]
		if row.Visible() {
			row.Activate()
		}
	}
}

// MoveSelection moves keyboard focus with wrapping
func (w *Widget) MoveSelection(delta int) {
	targets := w.targets()
	if len(targets) == 0 {
		w.selected = input.NoTarget
		return
	}

	idx := -1
	for i, t := range targets {
		if t == w.selected {
			idx = i
		}
	}
	if idx == -1 {
		if delta < 0 {
			idx = len(targets) - 1
		} else {
			idx = 0
		}
		w.selected = targets[idx]
		return
	}

	idx = (idx + delta + len(targets)) % len(targets)
	w.selected = targets[idx]
}

// ActivateSelection activates the focused target.
func (w *Widget) ActivateSelection() {
	if w.selected != input.NoTarget {
		w.Activate(w.selected)
	}
}

// Selected returns the focused target.
func (w *Widget) Selected() int {
	return w.selected
}

// Draw renders the panel into the bounds given to the last Layout call.
func (w *Widget) Draw(renderer *sdl.Renderer, fonts *ui.Fonts) error {
	b := w.bounds
	ui.DrawGradientRect(renderer, b, backgroundColor, backgroundShade)

	if w.panel.Closeable() {
		c := closeColor
		if w.closeIsHeld {
			c = closePressed
		}
		ui.FillCircle(renderer, w.closeRect.X+closeSize/2, w.closeRect.Y+closeSize/2, closeSize/2, c)
		if fonts != nil && fonts.Glyph != nil {
			ui.RenderTextCentered(renderer, "←", w.closeRect, white, fonts.Glyph)
		}
		w.drawFocus(renderer, TargetClose, w.closeRect)
	}

	if fonts != nil && fonts.Heading != nil {
		headingX := b.X + marginX
		if w.panel.Closeable() {
			headingX += closeSize + headingGap
		}
		_, h, _ := fonts.Heading.SizeUTF8(onroad.Heading)
		ui.RenderText(renderer, onroad.Heading, headingX, b.Y+marginTop+(closeSize-int32(h))/2, white, fonts.Heading)
	}

	for i, row := range w.panel.Rows() {
		if !row.Visible() {
			continue
		}
		w.drawRow(renderer, row, w.rowRects[i], fonts)
		w.drawFocus(renderer, firstRow+i, w.rowRects[i])
	}

	if fonts != nil && fonts.Footer != nil {
		_, h, _ := fonts.Footer.SizeUTF8(onroad.Footer)
		footer := sdl.Rect{X: b.X, Y: b.Y + b.H - marginBottom - int32(h), W: b.W, H: int32(h)}
		ui.RenderTextCentered(renderer, onroad.Footer, footer, footerColor, fonts.Footer)
	}

	return nil
}

func (w *Widget) drawRow(renderer *sdl.Renderer, row *onroad.Row, r sdl.Rect, fonts *ui.Fonts) {
	bg := rowColor
	if row.Pressed() {
		bg = rowPressedColor
	}
	ui.FillRoundedRect(renderer, r, 10, bg)

	icon := ui.HexColor(row.IconColor(), neutralIconColor)
	ui.FillCircle(renderer, r.X+rowPadX+iconSize/2, r.Y+r.H/2, iconSize/2, icon)

	if fonts == nil || fonts.Option == nil {
		return
	}
	textX := r.X + rowPadX + iconSize + rowPadX
	textW := r.W - (textX - r.X) - rowPadX
	lineH := int32(fonts.Option.Height())
	top := r.Y + (r.H-2*lineH)/2

	ui.RenderElidedText(renderer, row.Title(), textX, top, textW, white, fonts.Option)
	ui.RenderElidedText(renderer, row.Subtitle(), textX, top+lineH, textW, subtitleColor, fonts.Option)
}

func (w *Widget) drawFocus(renderer *sdl.Renderer, target int, r sdl.Rect) {
	if target != w.selected {
		return
	}
	ui.SetDrawColor(renderer, focusColor)
	for i := int32(0); i < 3; i++ {
		renderer.DrawRect(&sdl.Rect{X: r.X - i, Y: r.Y - i, W: r.W + 2*i, H: r.H + 2*i})
	}
}
