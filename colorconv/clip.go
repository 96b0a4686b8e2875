package colorconv

import (
	"math"
)

const (
	// chroma floor used to derive a hue direction for near achromatic colors
	achromatic_epsilon = 1e-5
	// how strongly chroma pulls the projection focus towards L = 0.5
	adaptive_alpha = 0.05
)

// inGamut checks whether all components are inside [0,1]
func inGamut(rgb Vec3) bool {
	return rgb[0] >= 0 && rgb[1] >= 0 && rgb[2] >= 0 && rgb[0] <= 1 && rgb[1] <= 1 && rgb[2] <= 1
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// ClipOklab maps an OKLAB color into the sRGB gamut. Colors already in gamut
// are returned unchanged. Out of gamut colors are projected along a line
// towards a point on the neutral axis whose lightness is chosen adaptively,
// bending towards black for dark colors and towards white for light ones so
// that their perceived lightness changes as little as possible. Hue is
// preserved.
func ClipOklab(lab Vec3) Vec3 {
	if inGamut(OklabToLinear(lab)) {
		return lab
	}
	return clipOklab(lab)
}

// ClipLinear maps a linear sRGB color into the sRGB gamut, see ClipOklab.
func ClipLinear(rgb Vec3) Vec3 {
	if inGamut(rgb) {
		return rgb
	}
	return OklabToLinear(clipOklab(LinearToOklab(rgb)))
}

// ClipSRGB maps an sRGB color into the sRGB gamut, see ClipOklab.
func ClipSRGB(rgb Vec3) Vec3 {
	if inGamut(rgb) {
		return rgb
	}
	return OklabToSRGB(clipOklab(SRGBToOklab(rgb)))
}

func clipOklab(lab Vec3) Vec3 {
	L := lab[0]
	C := max(achromatic_epsilon, math.Sqrt(lab[1]*lab[1]+lab[2]*lab[2]))
	a, b := lab[1]/C, lab[2]/C

	Ld := L - 0.5
	e1 := 0.5 + math.Abs(Ld) + adaptive_alpha*C
	L0 := 0.5 * (1 + sign(Ld)*(e1-math.Sqrt(e1*e1-2*math.Abs(Ld))))

	t := FindGamutIntersection(a, b, L, C, L0)
	Lc := L0*(1-t) + t*L
	Cc := t * C
	return Vec3{Lc, Cc * a, Cc * b}
}
