package colorconv

import (
	"math"
)

// OKHSV, see https://bottosson.github.io/posts/colorpicker/
//
// The gamut for a single hue is approximated by a triangle through black,
// white and the cusp. Saturation and value are defined on that triangle and a
// lightness toe plus a rescaling by the true gamut boundary correct for the
// approximation.

const (
	toe_k1 = 0.206
	toe_k2 = 0.03
	toe_k3 = (1 + toe_k1) / (1 + toe_k2)
	// saturation of the triangle edge at s = 0.5
	okhsv_s0 = 0.5
)

// Toe compresses OKLAB lightness so that it better matches the CIELAB
// lightness scale near black. Toe(ToeInv(x)) == x for x >= 0.
func Toe(x float64) float64 {
	y := toe_k3*x - toe_k1
	return 0.5 * (y + math.Sqrt(y*y+4*toe_k2*toe_k3*x))
}

// ToeInv is the inverse of Toe
func ToeInv(x float64) float64 {
	return (x*x + toe_k1*x) / (toe_k3 * (x + toe_k2))
}

// stMax returns the slopes of the two edges of the gamut triangle through
// cusp, S from black and T from white.
func stMax(cusp Cusp) (S, T float64) {
	return cusp.C / cusp.L, cusp.C / (1 - cusp.L)
}

// boundaryScale returns the factor that takes the triangle edge point
// (L_vt, C_vt) onto the curved gamut boundary.
func boundaryScale(a, b, L_vt, C_vt float64) float64 {
	rgb := OklabToLinear(Vec3{L_vt, a * C_vt, b * C_vt})
	return math.Cbrt(1 / max(rgb[0], rgb[1], rgb[2], 0))
}

// OkhsvToSRGB converts an OKHSV color (h in turns, s and v in [0,1]) to
// sRGB. Values outside the nominal ranges are extrapolated.
func OkhsvToSRGB(hsv Vec3) Vec3 {
	h, s, v := hsv[0], hsv[1], hsv[2]
	a := math.Cos(2 * math.Pi * h)
	b := math.Sin(2 * math.Pi * h)

	S_max, T_max := stMax(FindCusp(a, b))
	k := 1 - okhsv_s0/S_max

	// L, C on the triangle edge for v = 1
	d := okhsv_s0 + T_max - T_max*k*s
	L_v := 1 - s*okhsv_s0/d
	C_v := s * T_max * okhsv_s0 / d

	L := v * L_v
	C := v * C_v

	L_vt := ToeInv(L_v)
	C_vt := C_v * L_vt / L_v

	L_new := ToeInv(L)
	if L != 0 {
		// at L == 0 C is zero too and the ratio is undefined
		C = C * L_new / L
	}
	L = L_new

	scale := boundaryScale(a, b, L_vt, C_vt)
	L *= scale
	C *= scale
	return OklabToSRGB(Vec3{L, C * a, C * b})
}

// SRGBToOkhsv converts an sRGB color to OKHSV. Achromatic colors, whose
// chroma is below 1e-5, have no defined hue and are returned with h and s
// set to zero. Near white that floor corresponds to an OKHSV saturation of
// roughly 3e-5, so the hue of colors less saturated than that is lost.
func SRGBToOkhsv(rgb Vec3) Vec3 {
	lab := SRGBToOklab(rgb)
	L := lab[0]
	C := math.Sqrt(lab[1]*lab[1] + lab[2]*lab[2])
	if C < achromatic_epsilon {
		// invert OkhsvToSRGB for s == 0 where the triangle edge is the
		// neutral axis and L_v == L_vt == 1
		scale := boundaryScale(1, 0, 1, 0)
		return Vec3{0, 0, Toe(L / scale)}
	}
	a, b := lab[1]/C, lab[2]/C
	h := 0.5 + 0.5*math.Atan2(-lab[2], -lab[1])/math.Pi

	S_max, T_max := stMax(FindCusp(a, b))
	k := 1 - okhsv_s0/S_max

	t := T_max / (C + L*T_max)
	L_v := t * L
	C_v := t * C

	L_vt := ToeInv(L_v)
	C_vt := C_v * L_vt / L_v

	scale := boundaryScale(a, b, L_vt, C_vt)
	L = Toe(L / scale)

	v := L / L_v
	s := (okhsv_s0 + T_max) * C_v / (T_max*okhsv_s0 + T_max*k*C_v)
	return Vec3{h, s, v}
}
