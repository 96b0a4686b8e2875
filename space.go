package okcolor

import (
	"errors"
	"fmt"

	"github.com/vgskye/okcolor/colorconv"
	"github.com/vgskye/okcolor/types"
)

type Space = types.Space

const (
	SRGB        = types.SRGB
	LINEAR_SRGB = types.LINEAR_SRGB
	OKLAB       = types.OKLAB
	OKLCH       = types.OKLCH
	OKHSV       = types.OKHSV
)

// ErrUnknownSpace means a color space name or value was not recognised.
var ErrUnknownSpace = errors.New("okcolor: unknown color space")

// ParseSpace parses a color space name such as "oklch" or "hsv".
func ParseSpace(name string) (Space, error) {
	if s, ok := types.ParseSpace(name); ok {
		return s, nil
	}
	return types.UNKNOWN_SPACE, fmt.Errorf("%w: %q", ErrUnknownSpace, name)
}

// ToSRGB converts v, expressed in space, to sRGB. Only OKHSV is gamut
// mapped, since every other space can represent colors sRGB cannot.
func ToSRGB(v colorconv.Vec3, space Space) (colorconv.Vec3, error) {
	switch space {
	case SRGB:
		return v, nil
	case LINEAR_SRGB:
		return colorconv.LinearToSRGB(v), nil
	case OKLAB:
		return colorconv.OklabToSRGB(v), nil
	case OKLCH:
		return colorconv.OklchToSRGB(v), nil
	case OKHSV:
		return colorconv.ClipSRGB(colorconv.OkhsvToSRGB(v)), nil
	}
	return v, fmt.Errorf("%w: %s", ErrUnknownSpace, space)
}

// FromSRGB converts the sRGB color v to space.
func FromSRGB(v colorconv.Vec3, space Space) (colorconv.Vec3, error) {
	switch space {
	case SRGB:
		return v, nil
	case LINEAR_SRGB:
		return colorconv.SRGBToLinear(v), nil
	case OKLAB:
		return colorconv.SRGBToOklab(v), nil
	case OKLCH:
		return colorconv.SRGBToOklch(v), nil
	case OKHSV:
		return colorconv.SRGBToOkhsv(v), nil
	}
	return v, fmt.Errorf("%w: %s", ErrUnknownSpace, space)
}

// ConvertSpace converts v from one space to another going through sRGB.
func ConvertSpace(v colorconv.Vec3, from, to Space) (colorconv.Vec3, error) {
	if from == to {
		if _, err := FromSRGB(v, to); err != nil {
			return v, err
		}
		return v, nil
	}
	srgb, err := ToSRGB(v, from)
	if err != nil {
		return v, err
	}
	return FromSRGB(srgb, to)
}
