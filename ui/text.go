package ui

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

const ellipsis = "…"

// RenderText renders text at the specified position with the given font and color
func RenderText(renderer *sdl.Renderer, text string, x, y int32, color sdl.Color, font *ttf.Font) error {
	if font == nil {
		return fmt.Errorf("font not available")
	}
	if text == "" {
		return nil
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return err
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return err
	}
	defer texture.Destroy()

	_, _, w, h, err := texture.Query()
	if err != nil {
		return err
	}

	dstRect := sdl.Rect{X: x, Y: y, W: w, H: h}
	return renderer.Copy(texture, nil, &dstRect)
}

// RenderTextCentered centers text inside rect.
func RenderTextCentered(renderer *sdl.Renderer, text string, rect sdl.Rect, color sdl.Color, font *ttf.Font) error {
	if font == nil {
		return fmt.Errorf("font not available")
	}
	w, h, err := font.SizeUTF8(text)
	if err != nil {
		return err
	}
	return RenderText(renderer, text, rect.X+(rect.W-int32(w))/2, rect.Y+(rect.H-int32(h))/2, color, font)
}

// ElideText shortens text with a trailing ellipsis until it fits maxWidth.
func ElideText(text string, maxWidth int32, font *ttf.Font) string {
	if font == nil {
		return text
	}
	if w, _, err := font.SizeUTF8(text); err != nil || int32(w) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if w, _, err := font.SizeUTF8(candidate); err == nil && int32(w) <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}

// RenderElidedText renders text clipped to maxWidth.
func RenderElidedText(renderer *sdl.Renderer, text string, x, y, maxWidth int32, color sdl.Color, font *ttf.Font) error {
	return RenderText(renderer, ElideText(text, maxWidth, font), x, y, color, font)
}
