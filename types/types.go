package types

import (
	"fmt"
	"strings"
)

var _ = fmt.Print

// Format is an image file format.
type Format int

// Image file formats.
const (
	UNKNOWN Format = iota
	JPEG
	PNG
	GIF
	TIFF
	WEBP
	BMP
)

var FormatExts = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"apng": PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"webp": WEBP,
	"bmp":  BMP,
}

var formatNames = map[Format]string{
	JPEG: "JPEG",
	PNG:  "PNG",
	GIF:  "GIF",
	TIFF: "TIFF",
	WEBP: "WEBP",
	BMP:  "BMP",
}

func (f Format) String() string {
	return formatNames[f]
}

// Space is a color space a three component color value can be expressed in.
type Space int

const (
	UNKNOWN_SPACE Space = iota
	SRGB
	LINEAR_SRGB
	OKLAB
	OKLCH
	OKHSV
)

var spaceNames = map[Space]string{
	SRGB:        "srgb",
	LINEAR_SRGB: "linear",
	OKLAB:       "oklab",
	OKLCH:       "oklch",
	OKHSV:       "okhsv",
}

var spaceAliases = map[string]Space{
	"rgb":         SRGB,
	"linear-srgb": LINEAR_SRGB,
	"lab":         OKLAB,
	"lch":         OKLCH,
	"hsv":         OKHSV,
}

func (s Space) String() string {
	if ans, ok := spaceNames[s]; ok {
		return ans
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// SpaceNames returns the canonical names of all known spaces.
func SpaceNames() (ans []string) {
	for s := SRGB; s <= OKHSV; s++ {
		ans = append(ans, s.String())
	}
	return
}

// ParseSpace parses a case insensitive color space name, returning
// UNKNOWN_SPACE and false if the name is not recognised.
func ParseSpace(name string) (Space, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range spaceNames {
		if n == name {
			return s, true
		}
	}
	if s, ok := spaceAliases[name]; ok {
		return s, true
	}
	return UNKNOWN_SPACE, false
}
