// Package colorconv converts colors between sRGB, linear sRGB and the
// perceptual OKLAB family of color spaces (OKLAB, OKLCh and OKHSV), and maps
// out of gamut OKLAB colors back into the sRGB gamut.
//
// Notes:
//   - sRGB and linear sRGB values are nominally in [0,1] but are never
//     clamped by the basis conversions, out of gamut values pass through.
//   - OKLAB L is in [0,1] for in gamut colors, a and b are roughly in
//     [-0.4,0.4].
//   - OKLCh hue is in degrees in [0,360), OKHSV hue is in turns in [0,1).
//   - Nothing here validates its input. Degenerate input (NaN, infinities, a
//     hue direction of zero length) propagates as NaN or Inf through the
//     IEEE-754 rules rather than as an error, callers are responsible for
//     sanitizing user supplied values.
//
// Every function is pure and safe for concurrent use.
package colorconv

import (
	"fmt"
	"math"
)

var _ = fmt.Print

type Vec3 [3]float64
type Mat3 [3][3]float64

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

// Apply returns the vector obtained by applying f to every component of v.
func (v Vec3) Apply(f func(float64) float64) Vec3 {
	return Vec3{f(v[0]), f(v[1]), f(v[2])}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v[0], v[1], v[2])
}

// Mat3FromColumns builds a matrix whose columns are c0, c1 and c2.
func Mat3FromColumns(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		{c0[0], c1[0], c2[0]},
		{c0[1], c1[1], c2[1]},
		{c0[2], c1[2], c2[2]},
	}
}

// Transform returns m * v
func (m *Mat3) Transform(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Multiply returns m * o
func (m *Mat3) Multiply(o Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			sum := 0.0
			for k := range 3 {
				sum += m[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// The OKLAB basis, see https://bottosson.github.io/posts/oklab/
var (
	linearToLMS = Mat3{
		{0.4122214708, 0.5363325363, 0.0514459929},
		{0.2119034982, 0.6806995451, 0.1073969566},
		{0.0883024619, 0.2817188376, 0.6299787005},
	}
	lmsToOklab = Mat3{
		{0.2104542553, 0.7936177850, -0.0040720468},
		{1.9779984951, -2.4285922050, 0.4505937099},
		{0.0259040371, 0.7827717662, -0.8086757660},
	}
	oklabToLMS = Mat3{
		{1, 0.3963377774, 0.2158037573},
		{1, -0.1055613458, -0.0638541728},
		{1, -0.0894841775, -1.2914855480},
	}
	lmsToLinear = Mat3{
		{4.0767416621, -3.3077115913, 0.2309699292},
		{-1.2684380046, 2.6097574011, -0.3413193965},
		{-0.0041960863, -0.7034186147, 1.7076147010},
	}
)

// SRGBToLinearComponent removes the sRGB transfer function from a single
// encoded component.
func SRGBToLinearComponent(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// LinearToSRGBComponent applies the sRGB transfer function to a single
// linear component.
func LinearToSRGBComponent(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func SRGBToLinear(rgb Vec3) Vec3 { return rgb.Apply(SRGBToLinearComponent) }
func LinearToSRGB(rgb Vec3) Vec3 { return rgb.Apply(LinearToSRGBComponent) }

func cube(x float64) float64 { return x * x * x }

func LinearToOklab(rgb Vec3) Vec3 {
	lms := linearToLMS.Transform(rgb).Apply(math.Cbrt)
	return lmsToOklab.Transform(lms)
}

func OklabToLinear(lab Vec3) Vec3 {
	lms := oklabToLMS.Transform(lab).Apply(cube)
	return lmsToLinear.Transform(lms)
}

// LabToLCh converts a Lab color to its polar form. The hue is in degrees,
// normalised to [0, 360).
func LabToLCh(lab Vec3) Vec3 {
	h := math.Atan2(lab[2], lab[1]) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return Vec3{lab[0], math.Hypot(lab[1], lab[2]), h}
}

func LChToLab(lch Vec3) Vec3 {
	h := lch[2] * math.Pi / 180
	return Vec3{lch[0], lch[1] * math.Cos(h), lch[1] * math.Sin(h)}
}

func SRGBToOklab(rgb Vec3) Vec3 { return LinearToOklab(SRGBToLinear(rgb)) }
func OklabToSRGB(lab Vec3) Vec3 { return LinearToSRGB(OklabToLinear(lab)) }

// SRGBToOklch converts an sRGB color to OKLCh without any gamut checks.
func SRGBToOklch(rgb Vec3) Vec3 { return LabToLCh(SRGBToOklab(rgb)) }

// OklchToSRGB converts an OKLCh color to sRGB. The result is not gamut
// mapped, use ClipSRGB on it to bring it into [0,1].
func OklchToSRGB(lch Vec3) Vec3 { return OklabToSRGB(LChToLab(lch)) }
