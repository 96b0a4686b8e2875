package okcolor

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/vgskye/okcolor/colorconv"
)

var _ = fmt.Print

// ErrInvalidHex is returned when a string is not a #rgb or #rrggbb color.
var ErrInvalidHex = errors.New("okcolor: invalid hex color")

// Oklab is a color in the OKLAB color space.
type Oklab struct {
	L, A, B float64
}

// Oklch is a color in the polar form of OKLAB, with the hue H in degrees.
type Oklch struct {
	L, C, H float64
}

// Okhsv is a color in the OKHSV color space, with the hue H in turns, [0,1).
type Okhsv struct {
	H, S, V float64
}

func (c Oklab) Vec() colorconv.Vec3 { return colorconv.Vec3{c.L, c.A, c.B} }
func (c Oklch) Vec() colorconv.Vec3 { return colorconv.Vec3{c.L, c.C, c.H} }
func (c Okhsv) Vec() colorconv.Vec3 { return colorconv.Vec3{c.H, c.S, c.V} }

func OklabFromSRGB(srgb colorconv.Vec3) Oklab {
	v := colorconv.SRGBToOklab(srgb)
	return Oklab{v[0], v[1], v[2]}
}

func OklchFromSRGB(srgb colorconv.Vec3) Oklch {
	v := colorconv.SRGBToOklch(srgb)
	return Oklch{v[0], v[1], v[2]}
}

func OkhsvFromSRGB(srgb colorconv.Vec3) Okhsv {
	v := colorconv.SRGBToOkhsv(srgb)
	return Okhsv{v[0], v[1], v[2]}
}

func (c Oklab) Oklch() Oklch {
	v := colorconv.LabToLCh(c.Vec())
	return Oklch{v[0], v[1], v[2]}
}

func (c Oklch) Oklab() Oklab {
	v := colorconv.LChToLab(c.Vec())
	return Oklab{v[0], v[1], v[2]}
}

// InGamut returns true if the color can be displayed in sRGB without
// clipping.
func (c Oklab) InGamut() bool {
	v := colorconv.OklabToLinear(c.Vec())
	return v[0] >= 0 && v[1] >= 0 && v[2] >= 0 && v[0] <= 1 && v[1] <= 1 && v[2] <= 1
}

func (c Oklch) InGamut() bool { return c.Oklab().InGamut() }

// Clip returns the color mapped into the sRGB gamut, preserving hue.
func (c Oklab) Clip() Oklab {
	v := colorconv.ClipOklab(c.Vec())
	return Oklab{v[0], v[1], v[2]}
}

func (c Oklch) Clip() Oklch { return c.Oklab().Clip().Oklch() }

// SRGB returns the gamut mapped sRGB form of the color.
func (c Oklab) SRGB() colorconv.Vec3 {
	return colorconv.LinearToSRGB(colorconv.OklabToLinear(colorconv.ClipOklab(c.Vec())))
}

func (c Oklch) SRGB() colorconv.Vec3 { return c.Oklab().SRGB() }

// SRGB returns the sRGB form of the color. OKHSV colors with s and v in [0,1]
// are in gamut by construction, values outside that range are clipped.
func (c Okhsv) SRGB() colorconv.Vec3 {
	return colorconv.ClipSRGB(colorconv.OkhsvToSRGB(c.Vec()))
}

func (c Oklab) AsSharp() string { return as_sharp(c.SRGB()) }
func (c Oklch) AsSharp() string { return as_sharp(c.SRGB()) }
func (c Okhsv) AsSharp() string { return as_sharp(c.SRGB()) }

func (c Oklab) String() string {
	return fmt.Sprintf("Oklab{%.4f %.4f %.4f}", c.L, c.A, c.B)
}

func (c Oklch) String() string {
	return fmt.Sprintf("Oklch{%.4f %.4f %.2f}", c.L, c.C, c.H)
}

func (c Okhsv) String() string {
	return fmt.Sprintf("Okhsv{%.4f %.4f %.4f}", c.H, c.S, c.V)
}

func (c Oklab) RGBA() (r, g, b, a uint32) { return srgb_to_rgba(c.SRGB()) }
func (c Oklch) RGBA() (r, g, b, a uint32) { return srgb_to_rgba(c.SRGB()) }
func (c Okhsv) RGBA() (r, g, b, a uint32) { return srgb_to_rgba(c.SRGB()) }

func quantize(x float64, maxval float64) float64 {
	if x != x {
		return 0
	}
	return math.Round(max(0, min(x, 1)) * maxval)
}

func srgb_to_rgba(v colorconv.Vec3) (r, g, b, a uint32) {
	r = uint32(quantize(v[0], math.MaxUint16))
	g = uint32(quantize(v[1], math.MaxUint16))
	b = uint32(quantize(v[2], math.MaxUint16))
	a = math.MaxUint16
	return
}

func as_sharp(v colorconv.Vec3) string {
	return fmt.Sprintf("#%02X%02X%02X", uint8(quantize(v[0], math.MaxUint8)), uint8(quantize(v[1], math.MaxUint8)), uint8(quantize(v[2], math.MaxUint8)))
}

// srgb_of returns the non-premultiplied sRGB form of an arbitrary color.
// Fully transparent colors have no defined color and become black.
func srgb_of(c color.Color) colorconv.Vec3 {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return colorconv.Vec3{}
	}
	fa := float64(a)
	return colorconv.Vec3{float64(r) / fa, float64(g) / fa, float64(b) / fa}
}

func oklabModel(c color.Color) color.Color {
	switch c := c.(type) {
	case Oklab:
		return c
	case Oklch:
		return c.Oklab()
	}
	return OklabFromSRGB(srgb_of(c))
}

func oklchModel(c color.Color) color.Color {
	switch c := c.(type) {
	case Oklch:
		return c
	case Oklab:
		return c.Oklch()
	}
	return OklchFromSRGB(srgb_of(c))
}

func okhsvModel(c color.Color) color.Color {
	if c, ok := c.(Okhsv); ok {
		return c
	}
	return OkhsvFromSRGB(srgb_of(c))
}

// Models for the perceptual color types. Alpha is discarded.
var (
	OklabModel color.Model = color.ModelFunc(oklabModel)
	OklchModel color.Model = color.ModelFunc(oklchModel)
	OkhsvModel color.Model = color.ModelFunc(okhsvModel)
)

// ParseHex parses a color of the form #rgb or #rrggbb (the leading # is
// optional) and returns its sRGB components in [0,1].
func ParseHex(s string) (ans colorconv.Vec3, err error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(raw) {
	case 3:
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	case 6:
	default:
		return ans, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	for i := range 3 {
		v, perr := strconv.ParseUint(raw[2*i:2*i+2], 16, 8)
		if perr != nil {
			return ans, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		ans[i] = float64(v) / math.MaxUint8
	}
	return
}
