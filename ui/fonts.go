package ui

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/ttf"
)

// Fonts holds the faces used by the onroad panel.
type Fonts struct {
	Heading *ttf.Font // 54px panel heading
	Option  *ttf.Font // 48px row title and subtitle
	Footer  *ttf.Font // 34px footer
	Glyph   *ttf.Font // 100px close arrow
	Status  *ttf.Font // 28px status strip
}

var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

// LoadFonts opens every face from the first font file that works. Missing
// faces are left nil; text drawn with a nil font is skipped.
func LoadFonts() (*Fonts, error) {
	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize TTF: %v", err)
	}

	return &Fonts{
		Heading: openFirst(54),
		Option:  openFirst(48),
		Footer:  openFirst(34),
		Glyph:   openFirst(100),
		Status:  openFirst(28),
	}, nil
}

func openFirst(size int) *ttf.Font {
	for _, path := range fontPaths {
		if f, err := ttf.OpenFont(path, size); err == nil {
			return f
		}
	}
	log.Printf("Warning: no usable font for size %d", size)
	return nil
}

// Close cleans up font resources
func (f *Fonts) Close() {
	for _, font := range []*ttf.Font{f.Heading, f.Option, f.Footer, f.Glyph, f.Status} {
		if font != nil {
			font.Close()
		}
	}
}
