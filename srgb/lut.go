// Package srgb converts between integer sRGB encoded channel values and
// normalised linear light values.
package srgb

import (
	"math"
	"sync"

	"github.com/vgskye/okcolor/colorconv"
)

var encoded8ToLinearLUT = sync.OnceValue(func() (ans []float64) {
	ans = make([]float64, 256)
	for i := range ans {
		ans[i] = colorconv.SRGBToLinearComponent(float64(i) / math.MaxUint8)
	}
	return
})

var encoded16ToLinearLUT = sync.OnceValue(func() (ans []float64) {
	ans = make([]float64, 65536)
	for i := range ans {
		ans[i] = colorconv.SRGBToLinearComponent(float64(i) / math.MaxUint16)
	}
	return
})

// From8Bit converts an 8-bit sRGB encoded value to a normalised linear value
// between 0.0 and 1.0.
//
// This implementation uses a look-up table built on first use.
func From8Bit(v uint8) float64 {
	return encoded8ToLinearLUT()[v]
}

// From16Bit converts a 16-bit sRGB encoded value to a normalised linear value
// between 0.0 and 1.0.
//
// This implementation uses a look-up table built on first use.
func From16Bit(v uint16) float64 {
	return encoded16ToLinearLUT()[v]
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

// To8Bit converts a linear value to an 8-bit sRGB encoded value, clipping the
// linear value to between 0.0 and 1.0. NaN maps to zero.
func To8Bit(v float64) uint8 {
	if v != v {
		return 0
	}
	return uint8(math.Round(clamp01(colorconv.LinearToSRGBComponent(v)) * math.MaxUint8))
}

// To16Bit converts a linear value to a 16-bit sRGB encoded value, clipping the
// linear value to between 0.0 and 1.0. NaN maps to zero.
func To16Bit(v float64) uint16 {
	if v != v {
		return 0
	}
	return uint16(math.Round(clamp01(colorconv.LinearToSRGBComponent(v)) * math.MaxUint16))
}
