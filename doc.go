/*
Package okcolor provides perceptual color manipulation for colors and images
using the OKLAB family of color spaces (OKLAB, OKLCh and OKHSV).

The numerical conversions and gamut mapping live in the colorconv package.
This package builds on them: color.Color implementations for perceptual
colors, per-pixel transforms over any image.Image, lightness/chroma/hue and
saturation/value adjustments that stay inside the sRGB gamut, perceptual
gradients and image and animation I/O.

All the image functions accept any image type that implements image.Image
as an input. Supported concrete types are modified in place, others are
converted to *image.NRGBA64 first.
*/
package okcolor

import "fmt"

type LibraryVersion struct {
	Major, Minor, Patch uint
}

func (v LibraryVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v LibraryVersion) Equal(o LibraryVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v LibraryVersion) After(o LibraryVersion) bool {
	switch {
	case v.Major == o.Major:
		switch {
		case v.Minor == o.Minor:
			return v.Patch > o.Patch
		case v.Minor > o.Minor:
			return true
		case v.Minor < o.Minor:
			return false
		}
	case v.Major > o.Major:
		return true
	case v.Major < o.Major:
		return false
	}
	return false
}

func (v LibraryVersion) Before(o LibraryVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = LibraryVersion{0, 4, 0}
