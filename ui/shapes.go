package ui

import (
	"math"

	"github.com/veandco/go-sdl2/sdl"
)

// DrawGradientRect draws a vertical gradient rectangle
func DrawGradientRect(renderer *sdl.Renderer, rect sdl.Rect, start, end sdl.Color) {
	if rect.H <= 0 {
		return
	}
	for i := int32(0); i < rect.H; i++ {
		t := 0.0
		if rect.H > 1 {
			t = float64(i) / float64(rect.H-1)
		}
		renderer.SetDrawColor(lerp(start.R, end.R, t), lerp(start.G, end.G, t), lerp(start.B, end.B, t), lerp(start.A, end.A, t))
		renderer.DrawLine(rect.X, rect.Y+i, rect.X+rect.W-1, rect.Y+i)
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

// FillCircle fills a circle of radius r centered at (cx, cy).
func FillCircle(renderer *sdl.Renderer, cx, cy, r int32, c sdl.Color) {
	SetDrawColor(renderer, c)
	for dy := -r; dy <= r; dy++ {
		dx := int32(math.Sqrt(float64(r*r - dy*dy)))
		renderer.DrawLine(cx-dx, cy+dy, cx+dx, cy+dy)
	}
}

// FillRoundedRect fills rect with corners of the given radius.
func FillRoundedRect(renderer *sdl.Renderer, rect sdl.Rect, radius int32, c sdl.Color) {
	if radius*2 > rect.W {
		radius = rect.W / 2
	}
	if radius*2 > rect.H {
		radius = rect.H / 2
	}
	SetDrawColor(renderer, c)
	renderer.FillRect(&sdl.Rect{X: rect.X, Y: rect.Y + radius, W: rect.W, H: rect.H - 2*radius})
	for dy := int32(0); dy < radius; dy++ {
		// Horizontal inset of the corner arc at this row.
		off := radius - int32(math.Sqrt(float64(radius*radius-(radius-dy)*(radius-dy))))
		renderer.DrawLine(rect.X+off, rect.Y+dy, rect.X+rect.W-1-off, rect.Y+dy)
		renderer.DrawLine(rect.X+off, rect.Y+rect.H-1-dy, rect.X+rect.W-1-off, rect.Y+rect.H-1-dy)
	}
}
