package okcolor

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/kovidgoyal/go-parallel"
	"github.com/vgskye/okcolor/colorconv"
	"github.com/vgskye/okcolor/srgb"
)

var _ = fmt.Print

// Transform maps a linear sRGB color to another linear sRGB color. Results
// outside [0,1] are clamped when written back into an image.
type Transform func(linear colorconv.Vec3) colorconv.Vec3

type transformConfig struct {
	workers int
}

var defaultTransformConfig = transformConfig{}

// TransformOption sets an optional parameter for ApplyTransform and
// ConvertSlice.
type TransformOption func(*transformConfig)

// Workers returns a TransformOption that sets the number of goroutines used.
// Zero, the default, uses one per available CPU.
func Workers(n int) TransformOption {
	return func(c *transformConfig) {
		c.workers = max(0, n)
	}
}

func (tr Transform) convert8(p []uint8) {
	v := tr(colorconv.Vec3{srgb.From8Bit(p[0]), srgb.From8Bit(p[1]), srgb.From8Bit(p[2])})
	p[0], p[1], p[2] = srgb.To8Bit(v[0]), srgb.To8Bit(v[1]), srgb.To8Bit(v[2])
}

func (tr Transform) convert16(p []uint16) {
	v := tr(colorconv.Vec3{srgb.From16Bit(p[0]), srgb.From16Bit(p[1]), srgb.From16Bit(p[2])})
	p[0], p[1], p[2] = srgb.To16Bit(v[0]), srgb.To16Bit(v[1]), srgb.To16Bit(v[2])
}

func premultiply8(r, a uint8) uint8 {
	return uint8((uint16(r)*uint16(a) + 0x7f) / 0xff)
}

func unpremultiply8(r, a uint8) uint8 {
	return uint8(min(0xff, (uint16(r)*0xff+uint16(a)/2)/uint16(a)))
}

func unpremultiply(r, a uint32) uint16 {
	return uint16(min(0xffff, (r*0xffff+a/2)/a))
}

func premultiply(r, a uint32) uint16 {
	return uint16((r*a + 0x7fff) / 0xffff)
}

func get16(s []uint8) uint16 { return uint16(s[0])<<8 | uint16(s[1]) }

func put16(s []uint8, v uint16) {
	s[0] = uint8(v >> 8)
	s[1] = uint8(v)
}

// ApplyTransform applies tr to every pixel of img. Images of type
// *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64 and
// *image.Paletted are modified in place and returned. *image.Gray and
// *image.Gray16 are converted to *image.NRGBA and *image.NRGBA64 as the result
// need not be gray, all other image types are converted to *image.NRGBA64.
// A *image.Paletted gets a transformed copy of its palette, the original
// palette, which may be shared with other frames, is left as is. Alpha is
// preserved, fully transparent pixels are left untouched.
func ApplyTransform(img image.Image, tr Transform, opts ...TransformOption) (ans image.Image, err error) {
	cfg := defaultTransformConfig
	for _, option := range opts {
		option(&cfg)
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	ans = img
	if width == 0 || height == 0 {
		return
	}
	var f func(start, limit int)
	switch img := img.(type) {
	case *image.NRGBA:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = row[4*(width-1)]
				for range width {
					if row[3] != 0 {
						tr.convert8(row[0:3:3])
					}
					row = row[4:]
				}
			}
		}
	case *image.NRGBA64:
		f = func(start, limit int) {
			sl := []uint16{0, 0, 0}
			for y := start; y < limit; y++ {
				row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = row[8*(width-1)]
				for range width {
					s := row[0:8:8]
					if s[6] != 0 || s[7] != 0 {
						sl[0], sl[1], sl[2] = get16(s[0:2]), get16(s[2:4]), get16(s[4:6])
						tr.convert16(sl)
						put16(s[0:2], sl[0])
						put16(s[2:4], sl[1])
						put16(s[4:6], sl[2])
					}
					row = row[8:]
				}
			}
		}
	case *image.RGBA:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = row[4*(width-1)]
				for range width {
					r := row[0:3:3]
					if a := row[3]; a != 0 {
						r[0], r[1], r[2] = unpremultiply8(r[0], a), unpremultiply8(r[1], a), unpremultiply8(r[2], a)
						tr.convert8(r)
						r[0], r[1], r[2] = premultiply8(r[0], a), premultiply8(r[1], a), premultiply8(r[2], a)
					}
					row = row[4:]
				}
			}
		}
	case *image.RGBA64:
		f = func(start, limit int) {
			sl := []uint16{0, 0, 0}
			for y := start; y < limit; y++ {
				row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = row[8*(width-1)]
				for range width {
					s := row[0:8:8]
					if a := uint32(get16(s[6:8])); a != 0 {
						sl[0] = unpremultiply(uint32(get16(s[0:2])), a)
						sl[1] = unpremultiply(uint32(get16(s[2:4])), a)
						sl[2] = unpremultiply(uint32(get16(s[4:6])), a)
						tr.convert16(sl)
						put16(s[0:2], premultiply(uint32(sl[0]), a))
						put16(s[2:4], premultiply(uint32(sl[1]), a))
						put16(s[4:6], premultiply(uint32(sl[2]), a))
					}
					row = row[8:]
				}
			}
		}
	case *image.Paletted:
		// frames of a GIF share the global color table, transform a copy so
		// that every frame is transformed exactly once
		pal := slices.Clone(img.Palette)
		sl := []uint16{0, 0, 0}
		for i, c := range pal {
			r, g, b, a := c.RGBA()
			if a != 0 {
				sl[0], sl[1], sl[2] = unpremultiply(r, a), unpremultiply(g, a), unpremultiply(b, a)
				tr.convert16(sl)
				pal[i] = color.NRGBA64{R: sl[0], G: sl[1], B: sl[2], A: uint16(a)}
			}
		}
		img.Palette = pal
		return
	case *image.Gray:
		d := image.NewNRGBA(b)
		ans = d
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = row[width-1]
				drow := d.Pix[d.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = drow[4*(width-1)]
				for _, gray := range row[:width] {
					drow[0], drow[1], drow[2], drow[3] = gray, gray, gray, 0xff
					tr.convert8(drow[0:3:3])
					drow = drow[4:]
				}
			}
		}
	case *image.Gray16:
		d := image.NewNRGBA64(b)
		ans = d
		f = func(start, limit int) {
			sl := []uint16{0, 0, 0}
			for y := start; y < limit; y++ {
				row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = row[2*(width-1)]
				drow := d.Pix[d.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = drow[8*(width-1)]
				for range width {
					gray := get16(row[0:2])
					sl[0], sl[1], sl[2] = gray, gray, gray
					tr.convert16(sl)
					s := drow[0:8:8]
					put16(s[0:2], sl[0])
					put16(s[2:4], sl[1])
					put16(s[4:6], sl[2])
					s[6], s[7] = 0xff, 0xff
					row = row[2:]
					drow = drow[8:]
				}
			}
		}
	default:
		d := image.NewNRGBA64(b)
		ans = d
		f = func(start, limit int) {
			sl := []uint16{0, 0, 0}
			for y := start; y < limit; y++ {
				row := d.Pix[d.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := range width {
					r16, g16, b16, a16 := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
					if a16 != 0 {
						sl[0], sl[1], sl[2] = unpremultiply(r16, a16), unpremultiply(g16, a16), unpremultiply(b16, a16)
						tr.convert16(sl)
						s := row[8*x : 8*x+8 : 8*x+8]
						put16(s[0:2], sl[0])
						put16(s[2:4], sl[1])
						put16(s[4:6], sl[2])
						put16(s[6:8], uint16(a16))
					}
				}
			}
		}
	}
	err = parallel.Run_in_parallel_over_range(cfg.workers, f, 0, height)
	return
}

// ConvertSlice stores f(src[i]) in dst[i] for every element of src, splitting
// the work across goroutines. dst must be at least as long as src.
func ConvertSlice(dst, src []colorconv.Vec3, f func(colorconv.Vec3) colorconv.Vec3, opts ...TransformOption) error {
	if len(dst) < len(src) {
		return fmt.Errorf("destination has %d colors, needs %d", len(dst), len(src))
	}
	if len(src) == 0 {
		return nil
	}
	cfg := defaultTransformConfig
	for _, option := range opts {
		option(&cfg)
	}
	return parallel.Run_in_parallel_over_range(cfg.workers, func(start, limit int) {
		for i := start; i < limit; i++ {
			dst[i] = f(src[i])
		}
	}, 0, len(src))
}
