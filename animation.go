package okcolor

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
)

var _ = fmt.Print

// Disposal says what happens to the area of a frame before the next frame is
// drawn.
type Disposal int

const (
	DISPOSE_NONE Disposal = iota
	DISPOSE_BACKGROUND
	DISPOSE_PREVIOUS
)

type Frame struct {
	Number   uint
	X, Y     int
	Image    image.Image `json:"-"`
	Delay    time.Duration
	Disposal Disposal
	Replace  bool // Do a simple pixel replacement rather than a full alpha blend when compositing this frame
}

// Image is a possibly animated image. Frames are kept exactly as stored in
// the file, un-composited, since color transforms act on every pixel
// independently.
type Image struct {
	Frames       []*Frame
	Format       Format
	Width        int
	Height       int
	LoopCount    uint        // 0 means loop forever, 1 means loop once, ...
	DefaultImage image.Image `json:"-"` // a "default image" for an animation that is not part of the actual animation
}

// normalize_origin returns an image with the same pixels as img whose
// bounds start at (0, 0)
func normalize_origin(img image.Image) image.Image {
	b := img.Bounds()
	if b.Min == (image.Point{}) {
		return img
	}
	r := image.Rect(0, 0, b.Dx(), b.Dy())
	switch img := img.(type) {
	case *image.Paletted:
		return &image.Paletted{Pix: img.Pix[img.PixOffset(b.Min.X, b.Min.Y):], Stride: img.Stride, Rect: r, Palette: img.Palette}
	case *image.NRGBA:
		return &image.NRGBA{Pix: img.Pix[img.PixOffset(b.Min.X, b.Min.Y):], Stride: img.Stride, Rect: r}
	case *image.RGBA:
		return &image.RGBA{Pix: img.Pix[img.PixOffset(b.Min.X, b.Min.Y):], Stride: img.Stride, Rect: r}
	}
	ans := image.NewNRGBA64(r)
	draw.Draw(ans, r, img, b.Min, draw.Src)
	return ans
}

func (self *Image) populate_from_apng(p *apng.APNG) {
	self.LoopCount = p.LoopCount
	for _, f := range p.Frames {
		if f.IsDefault {
			self.DefaultImage = f.Image
			continue
		}
		n, d := f.DelayNumerator, f.DelayDenominator
		if d <= 0 {
			d = 100
		}
		frame := Frame{Number: uint(len(self.Frames) + 1), Image: normalize_origin(f.Image), X: f.XOffset, Y: f.YOffset,
			Replace: f.BlendOp == apng.BLEND_OP_SOURCE,
			Delay:   time.Duration(float64(time.Second) * float64(n) / float64(d))}
		switch f.DisposeOp {
		case apng.DISPOSE_OP_BACKGROUND:
			frame.Disposal = DISPOSE_BACKGROUND
		case apng.DISPOSE_OP_PREVIOUS:
			frame.Disposal = DISPOSE_PREVIOUS
		}
		self.Frames = append(self.Frames, &frame)
	}
	if len(self.Frames) == 0 && self.DefaultImage != nil {
		self.Frames = append(self.Frames, &Frame{Number: 1, Image: self.DefaultImage})
		self.DefaultImage = nil
	}
}

func (self *Image) populate_from_gif(g *gif.GIF) {
	for i, img := range g.Image {
		b := img.Bounds()
		frame := Frame{Number: uint(len(self.Frames) + 1), Image: normalize_origin(img), X: b.Min.X, Y: b.Min.Y,
			Delay: time.Duration(g.Delay[i]) * 10 * time.Millisecond}
		switch g.Disposal[i] {
		case gif.DisposalBackground:
			frame.Disposal = DISPOSE_BACKGROUND
		case gif.DisposalPrevious:
			frame.Disposal = DISPOSE_PREVIOUS
		}
		self.Frames = append(self.Frames, &frame)
	}
	switch {
	case g.LoopCount == 0:
		self.LoopCount = 0
	case g.LoopCount < 0:
		self.LoopCount = 1
	default:
		self.LoopCount = uint(g.LoopCount) + 1
	}
}

// Apply applies tr to every frame, and the default image if any, see
// ApplyTransform.
func (self *Image) Apply(tr Transform, opts ...TransformOption) (err error) {
	if self.DefaultImage != nil {
		if self.DefaultImage, err = ApplyTransform(self.DefaultImage, tr, opts...); err != nil {
			return err
		}
	}
	for _, f := range self.Frames {
		if f.Image, err = ApplyTransform(f.Image, tr, opts...); err != nil {
			return fmt.Errorf("failed to transform frame %d: %w", f.Number, err)
		}
	}
	return nil
}

// converts a time.Duration to a numerator and denominator of type uint16.
// It finds the best rational approximation of the duration in seconds.
func as_fraction(d time.Duration) (num, den uint16) {
	if d <= 0 {
		return 0, 1
	}
	val := d.Seconds()

	// Use continued fractions to find the best rational approximation
	// that keeps the numerator and denominator within uint16 bounds.
	bestNum, bestDen := uint16(0), uint16(1)
	bestError := math.Abs(val)

	var h, k [3]int64
	h[0], k[0] = 0, 1
	h[1], k[1] = 1, 0

	f := val
	for i := 2; i < 100; i++ {
		a := int64(f)
		h[2] = a*h[1] + h[0]
		k[2] = a*k[1] + k[0]
		if h[2] > math.MaxUint16 || k[2] > math.MaxUint16 {
			break
		}
		numConv := uint16(h[2])
		denConv := uint16(k[2])
		currentError := math.Abs(val - float64(numConv)/float64(denConv))
		if currentError < bestError {
			bestError = currentError
			bestNum = numConv
			bestDen = denConv
		}
		if f-float64(a) == 0.0 {
			break
		}
		f = 1.0 / (f - float64(a))
		h[0], h[1] = h[1], h[2]
		k[0], k[1] = k[1], k[2]
	}
	return bestNum, bestDen
}

func (self *Image) as_apng() (ans apng.APNG) {
	ans.LoopCount = self.LoopCount
	if self.DefaultImage != nil {
		ans.Frames = append(ans.Frames, apng.Frame{Image: self.DefaultImage, IsDefault: true})
	}
	for _, f := range self.Frames {
		d := apng.Frame{
			DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_OVER, XOffset: f.X, YOffset: f.Y, Image: f.Image,
		}
		if f.Replace {
			d.BlendOp = apng.BLEND_OP_SOURCE
		}
		switch f.Disposal {
		case DISPOSE_BACKGROUND:
			d.DisposeOp = apng.DISPOSE_OP_BACKGROUND
		case DISPOSE_PREVIOUS:
			d.DisposeOp = apng.DISPOSE_OP_PREVIOUS
		}
		d.DelayNumerator, d.DelayDenominator = as_fraction(f.Delay)
		ans.Frames = append(ans.Frames, d)
	}
	return
}

func as_paletted(img image.Image) *image.Paletted {
	if p, ok := img.(*image.Paletted); ok {
		return p
	}
	b := img.Bounds()
	ans := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(ans, b, img, b.Min)
	return ans
}

func (self *Image) as_gif() *gif.GIF {
	ans := gif.GIF{Config: image.Config{Width: self.Width, Height: self.Height}}
	switch self.LoopCount {
	case 0:
		ans.LoopCount = 0
	case 1:
		ans.LoopCount = -1
	default:
		ans.LoopCount = int(self.LoopCount) - 1
	}
	for _, f := range self.Frames {
		p := as_paletted(f.Image)
		b := p.Bounds()
		// GIF frames carry their position in their bounds
		p = &image.Paletted{Pix: p.Pix, Stride: p.Stride, Palette: p.Palette, Rect: image.Rect(f.X, f.Y, f.X+b.Dx(), f.Y+b.Dy())}
		disposal := byte(gif.DisposalNone)
		switch f.Disposal {
		case DISPOSE_BACKGROUND:
			disposal = gif.DisposalBackground
		case DISPOSE_PREVIOUS:
			disposal = gif.DisposalPrevious
		}
		ans.Image = append(ans.Image, p)
		ans.Delay = append(ans.Delay, int(f.Delay/(10*time.Millisecond)))
		ans.Disposal = append(ans.Disposal, disposal)
	}
	if ans.Config.Width == 0 || ans.Config.Height == 0 {
		ans.Config = image.Config{}
	}
	return &ans
}

// EncodeAsPNG writes the image as a PNG, or an APNG if it has more than one
// frame.
func (self *Image) EncodeAsPNG(w io.Writer) error {
	if len(self.Frames) == 0 {
		return fmt.Errorf("image has no frames")
	}
	if len(self.Frames) < 2 {
		img := self.DefaultImage
		if img == nil {
			img = self.Frames[0].Image
		}
		return png.Encode(w, img)
	}
	return apng.Encode(w, self.as_apng())
}

// EncodeAsGIF writes the image as a possibly animated GIF. Frames that are not
// paletted are quantized to the Plan9 palette with dithering.
func (self *Image) EncodeAsGIF(w io.Writer) error {
	if len(self.Frames) == 0 {
		return fmt.Errorf("image has no frames")
	}
	return gif.EncodeAll(w, self.as_gif())
}
