package okcolor

import (
	"fmt"
	"math"

	"github.com/vgskye/okcolor/colorconv"
)

var _ = fmt.Print

type adjustConfig struct {
	hueShift        float64
	chromaScale     float64
	lightnessShift  float64
	saturationScale float64
	valueScale      float64
}

var defaultAdjustConfig = adjustConfig{
	chromaScale:     1,
	saturationScale: 1,
	valueScale:      1,
}

func (c *adjustConfig) changes_lch() bool {
	return c.hueShift != 0 || c.chromaScale != 1 || c.lightnessShift != 0
}

func (c *adjustConfig) changes_hsv() bool {
	return c.saturationScale != 1 || c.valueScale != 1
}

// AdjustOption sets a parameter of the adjustment performed by NewAdjuster.
type AdjustOption func(*adjustConfig)

// HueShift rotates the OKLCh hue by the specified number of degrees.
func HueShift(degrees float64) AdjustOption {
	return func(c *adjustConfig) {
		c.hueShift = degrees
	}
}

// ChromaScale multiplies OKLCh chroma by f. Values above one can produce out
// of gamut colors, these are mapped back into gamut preserving hue.
func ChromaScale(f float64) AdjustOption {
	return func(c *adjustConfig) {
		c.chromaScale = max(0, f)
	}
}

// LightnessShift adds d to OKLCh lightness, the result is limited to [0,1].
func LightnessShift(d float64) AdjustOption {
	return func(c *adjustConfig) {
		c.lightnessShift = d
	}
}

// SaturationScale multiplies OKHSV saturation by f, the result is limited to
// [0,1].
func SaturationScale(f float64) AdjustOption {
	return func(c *adjustConfig) {
		c.saturationScale = max(0, f)
	}
}

// ValueScale multiplies OKHSV value by f, the result is limited to [0,1].
func ValueScale(f float64) AdjustOption {
	return func(c *adjustConfig) {
		c.valueScale = max(0, f)
	}
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

func normalize_hue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// NewAdjuster returns a Transform that edits colors in OKLCh (hue, chroma,
// lightness) and then in OKHSV (saturation, value). Colors that the OKLCh
// edits push out of gamut are clipped back preserving their hue. With no
// options the returned Transform is the identity.
func NewAdjuster(opts ...AdjustOption) Transform {
	cfg := defaultAdjustConfig
	for _, option := range opts {
		option(&cfg)
	}
	lch, hsv := cfg.changes_lch(), cfg.changes_hsv()
	return func(linear colorconv.Vec3) colorconv.Vec3 {
		if lch {
			c := colorconv.LabToLCh(colorconv.LinearToOklab(linear))
			c[0] = clamp01(c[0] + cfg.lightnessShift)
			c[1] *= cfg.chromaScale
			c[2] = normalize_hue(c[2] + cfg.hueShift)
			linear = colorconv.ClipLinear(colorconv.OklabToLinear(colorconv.LChToLab(c)))
		}
		if hsv {
			c := colorconv.SRGBToOkhsv(colorconv.LinearToSRGB(linear))
			c[1] = clamp01(c[1] * cfg.saturationScale)
			c[2] = clamp01(c[2] * cfg.valueScale)
			linear = colorconv.SRGBToLinear(colorconv.ClipSRGB(colorconv.OkhsvToSRGB(c)))
		}
		return linear
	}
}
