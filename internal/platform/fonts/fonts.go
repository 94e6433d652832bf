// Package fonts loads the embedded chart faces and measures text with them.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"portfolio_chart/internal/feature/pricechart/domain/paint"
)

type faceKey struct {
	weight paint.Weight
	size   float64
}

// Registry resolves paint.Font values to parsed TrueType fonts.
// Family names are carried through to vector output only; glyph metrics
// always come from the embedded Go fonts.
type Registry struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewRegistry parses the embedded fonts.
func NewRegistry() (*Registry, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Registry{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// TrueType returns the parsed font for f's weight.
func (r *Registry) TrueType(f paint.Font) *truetype.Font {
	if f.Weight >= paint.Bold {
		return r.bold
	}
	return r.regular
}

// Measure returns the advance width of text in CSS pixels.
func (r *Registry) Measure(text string, f paint.Font) float64 {
	if text == "" || f.Size <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := faceKey{weight: f.Weight, size: f.Size}
	face, ok := r.faces[key]
	if !ok {
		// 72 DPI makes one point equal to one CSS pixel
		face = truetype.NewFace(r.TrueType(f), &truetype.Options{Size: f.Size, DPI: 72})
		r.faces[key] = face
	}
	adv := font.MeasureString(face, text)
	return float64(adv) / 64
}
