// Package tone maps digraph frequencies to 8-bit grayscale intensities.
package tone

import (
	"math"

	"github.com/merridan/filevis/internal/digraph"
)

// Params are the user adjustable brightness and contrast.
type Params struct {
	Brightness float64
	Contrast   float64
}

// DefaultParams is brightness 0, contrast 1: frequency maps linearly to intensity.
func DefaultParams() Params {
	return Params{Brightness: 0, Contrast: 1}
}

// Map computes floor(clamp(2^b * f^c, 0, 1) * 255).
// A zero frequency is always black, including the 0^0 case.
func Map(f float64, p Params) uint8 {
	if f <= 0 {
		return 0
	}
	shaped := math.Pow(f, p.Contrast)
	if shaped == 0 || math.IsNaN(shaped) {
		return 0
	}
	raw := math.Pow(2, p.Brightness) * shaped
	if math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	if raw >= 1 {
		return 255
	}
	return uint8(math.Floor(raw * 255))
}

// Render regenerates every pixel of dst from freqs. An empty table leaves dst untouched.
func Render(freqs digraph.FrequencyTable, p Params, dst *Buffer) {
	if freqs.Empty() {
		return
	}
	for i, f := range freqs {
		dst.SetPix(i, Map(f, p))
	}
}
