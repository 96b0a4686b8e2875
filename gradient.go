package okcolor

import (
	"math"
)

func lerp_hue(a, b, t float64) float64 {
	d := math.Mod(b-a+540, 360) - 180
	return normalize_hue(a + d*t)
}

// Mix interpolates between two colors in OKLCh. Lightness and chroma are
// interpolated linearly and hue along the shorter arc. When one side is
// achromatic its hue is meaningless so the hue of the other side is used.
func Mix(from, to Oklch, t float64) Oklch {
	const achromatic = 1e-5
	hf, ht := from.H, to.H
	switch {
	case from.C < achromatic && to.C >= achromatic:
		hf = ht
	case to.C < achromatic && from.C >= achromatic:
		ht = hf
	}
	return Oklch{
		L: from.L + (to.L-from.L)*t,
		C: from.C + (to.C-from.C)*t,
		H: lerp_hue(hf, ht, t),
	}
}

// Gradient returns steps colors evenly spaced between from and to,
// inclusive of both. steps is raised to two if smaller.
func Gradient(from, to Oklch, steps int) []Oklch {
	steps = max(2, steps)
	ans := make([]Oklch, steps)
	for i := range steps {
		ans[i] = Mix(from, to, float64(i)/float64(steps-1))
	}
	return ans
}
