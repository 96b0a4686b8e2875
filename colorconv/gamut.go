package colorconv

import (
	"fmt"
	"math"
)

var _ = fmt.Print

// Cusp is the point of maximum chroma of the sRGB gamut for a single hue.
type Cusp struct {
	L, C float64
}

type channel int

const (
	red_channel channel = iota
	green_channel
	blue_channel
)

func (c channel) String() string {
	switch c {
	case red_channel:
		return "red"
	case green_channel:
		return "green"
	case blue_channel:
		return "blue"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// weights returns the LMS -> linear sRGB row producing this channel
func (c channel) weights() Vec3 { return Vec3(lmsToLinear[c]) }

// Coefficients of the polynomial approximating the maximum saturation of
// each channel, S = k0 + k1*a + k2*b + k3*a*a + k4*a*b
var max_saturation_coefficients = [3][5]float64{
	red_channel:   {1.19086277, 1.76576728, 0.59662641, 0.75515197, 0.56771245},
	green_channel: {0.73956515, -0.45954404, 0.08285427, 0.12541070, 0.14503204},
	blue_channel:  {1.35733652, -0.00915799, -1.15130210, -0.50559606, 0.00692167},
}

// clippingChannel returns the channel that reaches zero first when
// increasing saturation along the unit hue direction (a, b). The tests are
// not mutually exclusive so their order matters.
func clippingChannel(a, b float64) channel {
	switch {
	case -1.88170328*a-0.80936493*b > 1:
		return red_channel
	case 1.81444104*a-1.19445276*b > 1:
		return green_channel
	}
	return blue_channel
}

// hueDirection returns the rate of change of the cube root LMS components
// per unit of chroma along the unit hue direction (a, b).
func hueDirection(a, b float64) Vec3 {
	return Vec3{
		oklabToLMS[0][1]*a + oklabToLMS[0][2]*b,
		oklabToLMS[1][1]*a + oklabToLMS[1][2]*b,
		oklabToLMS[2][1]*a + oklabToLMS[2][2]*b,
	}
}

// halley evaluates f(t) = w . lms(t)^3 - target where every component of
// lms(t) is linear in t with value lms and derivative dlms at the current
// estimate. It returns f and u = f' / (f'^2 - f*f''/2) so that the Halley
// update is t - f*u.
func halley(w, lms, dlms Vec3, target float64) (f, u float64) {
	var f0, f1, f2 float64
	for i, x := range lms {
		d := dlms[i]
		f0 += w[i] * x * x * x
		f1 += w[i] * 3 * d * x * x
		f2 += w[i] * 6 * d * d * x
	}
	f = f0 - target
	u = f1 / (f1*f1 - 0.5*f*f2)
	return
}

// MaxSaturation returns the maximum saturation S = C/L for the unit hue
// direction (a, b) before one of the linear sRGB channels goes negative.
// The result comes from a polynomial fit refined by a single Halley step,
// giving a relative error of about 1e-6, worse for some blue hues where the
// derivative is near singular.
func MaxSaturation(a, b float64) float64 {
	ch := clippingChannel(a, b)
	k := &max_saturation_coefficients[ch]
	S := k[0] + k[1]*a + k[2]*b + k[3]*a*a + k[4]*a*b

	kd := hueDirection(a, b)
	lms := Vec3{1 + S*kd[0], 1 + S*kd[1], 1 + S*kd[2]}
	f, u := halley(ch.weights(), lms, kd, 0)
	return S - f*u
}

// FindCusp returns the point of maximum chroma of the sRGB gamut for the unit
// hue direction (a, b).
func FindCusp(a, b float64) Cusp {
	S := MaxSaturation(a, b)
	rgb := OklabToLinear(Vec3{1, S * a, S * b})
	L := math.Cbrt(1 / max(rgb[0], rgb[1], rgb[2]))
	return Cusp{L: L, C: L * S}
}

// FindGamutIntersection returns t such that the point
// (L0*(1-t) + t*L1, t*C1) lies on the sRGB gamut boundary for the unit hue
// direction (a, b). t is zero at (L0, 0) and one at (L1, C1).
func FindGamutIntersection(a, b, L1, C1, L0 float64) float64 {
	return gamutIntersection(a, b, L1, C1, L0, FindCusp(a, b))
}

func gamutIntersection(a, b, L1, C1, L0 float64, cusp Cusp) float64 {
	if (L1-L0)*cusp.C-(cusp.L-L0)*C1 <= 0 {
		// lower half, the boundary is a straight line from black to the cusp
		return cusp.C * L0 / (C1*cusp.L + cusp.C*(L0-L1))
	}
	// upper half, start with the intersection of the line from the cusp
	// to white, then correct for the curvature of the real boundary
	t := cusp.C * (L0 - 1) / (C1*(cusp.L-1) + cusp.C*(L0-L1))

	kd := hueDirection(a, b)
	dL, dC := L1-L0, C1
	dlms := Vec3{dL + dC*kd[0], dL + dC*kd[1], dL + dC*kd[2]}
	L := L0*(1-t) + t*L1
	C := t * C1
	lms := Vec3{L + C*kd[0], L + C*kd[1], L + C*kd[2]}

	correction := math.Inf(1)
	for _, ch := range [...]channel{red_channel, green_channel, blue_channel} {
		f, u := halley(ch.weights(), lms, dlms, 1)
		if u >= 0 {
			correction = min(correction, -f*u)
		}
	}
	return t + correction
}
