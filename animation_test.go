package okcolor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func solid_frame(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func test_animation() *Image {
	return &Image{
		Width: 6, Height: 4, LoopCount: 3,
		Frames: []*Frame{
			{Number: 1, Image: solid_frame(6, 4, color.NRGBA{200, 30, 30, 255}), Delay: 100 * time.Millisecond},
			{Number: 2, X: 2, Y: 1, Image: solid_frame(3, 2, color.NRGBA{30, 200, 30, 255}), Delay: 50 * time.Millisecond, Disposal: DISPOSE_BACKGROUND},
			{Number: 3, X: 1, Y: 1, Image: solid_frame(2, 2, color.NRGBA{30, 30, 200, 255}), Delay: 200 * time.Millisecond, Disposal: DISPOSE_PREVIOUS, Replace: true},
		},
	}
}

func TestAsFraction(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		d        time.Duration
		num, den uint16
	}{
		{0, 0, 1},
		{-time.Second, 0, 1},
		{100 * time.Millisecond, 1, 10},
		{2 * time.Second, 2, 1},
		{40 * time.Millisecond, 1, 25},
	} {
		num, den := as_fraction(tc.d)
		assert.Equal(t, []uint16{tc.num, tc.den}, []uint16{num, den}, tc.d.String())
	}
}

func TestAPNG_Conversion(t *testing.T) {
	t.Parallel()
	src := test_animation()
	p := src.as_apng()
	require.Len(t, p.Frames, 3)
	r := Image{}
	r.populate_from_apng(&p)
	require.Len(t, r.Frames, 3)
	require.Equal(t, src.LoopCount, r.LoopCount)
	for i, f := range src.Frames {
		g := r.Frames[i]
		assert.Equal(t, f.Number, g.Number)
		assert.Equal(t, f.X, g.X)
		assert.Equal(t, f.Y, g.Y)
		assert.Equal(t, f.Delay, g.Delay)
		assert.Equal(t, f.Disposal, g.Disposal)
		assert.Equal(t, f.Replace, g.Replace)
	}
}

func TestGIF_Conversion(t *testing.T) {
	t.Parallel()
	src := test_animation()
	g := src.as_gif()
	require.Len(t, g.Image, 3)
	require.Equal(t, 2, g.LoopCount)
	require.Equal(t, []int{10, 5, 20}, g.Delay)
	require.Equal(t, image.Rect(2, 1, 5, 3), g.Image[1].Bounds())
	r := Image{}
	r.populate_from_gif(g)
	require.Equal(t, src.LoopCount, r.LoopCount)
	for i, f := range src.Frames {
		assert.Equal(t, f.X, r.Frames[i].X)
		assert.Equal(t, f.Y, r.Frames[i].Y)
		assert.Equal(t, f.Delay, r.Frames[i].Delay)
		assert.Equal(t, f.Disposal, r.Frames[i].Disposal)
		assert.Equal(t, image.Point{}, r.Frames[i].Image.Bounds().Min)
	}
	for _, lc := range []uint{0, 1, 7} {
		src.LoopCount = lc
		r := Image{}
		r.populate_from_gif(src.as_gif())
		assert.Equal(t, lc, r.LoopCount)
	}
}

func TestAnimation_Roundtrip(t *testing.T) {
	t.Parallel()
	src := test_animation()

	buf := bytes.Buffer{}
	require.NoError(t, src.EncodeAsPNG(&buf))
	require.True(t, is_animated_png(buf.Bytes()))
	png, err := DecodeAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, PNG, png.Format)
	require.Len(t, png.Frames, 3)
	assert.Equal(t, src.LoopCount, png.LoopCount)

	buf.Reset()
	require.NoError(t, src.EncodeAsGIF(&buf))
	gif, err := DecodeAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, GIF, gif.Format)
	require.Len(t, gif.Frames, 3)
	assert.Equal(t, 6, gif.Width)
	assert.Equal(t, 4, gif.Height)
	for i, f := range src.Frames {
		assert.Equal(t, f.Delay, png.Frames[i].Delay)
		assert.Equal(t, f.Delay, gif.Frames[i].Delay)
		assert.Equal(t, f.Image.Bounds().Size(), png.Frames[i].Image.Bounds().Size())
		assert.Equal(t, f.Image.Bounds().Size(), gif.Frames[i].Image.Bounds().Size())
	}
}

func TestAnimation_Apply(t *testing.T) {
	t.Parallel()
	img := test_animation()
	img.DefaultImage = solid_frame(6, 4, color.NRGBA{90, 90, 90, 255})
	require.NoError(t, img.Apply(NewAdjuster(ValueScale(0))))
	for _, f := range img.Frames {
		r, g, b, a := f.Image.At(0, 0).RGBA()
		assert.Equal(t, []uint32{0, 0, 0, 0xffff}, []uint32{r, g, b, a})
	}
	r, g, b, _ := img.DefaultImage.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r, g, b})

	require.Error(t, (&Image{}).EncodeAsPNG(&bytes.Buffer{}))
	require.Error(t, (&Image{}).EncodeAsGIF(&bytes.Buffer{}))
}

func TestAnimation_ApplySharedGlobalPalette(t *testing.T) {
	t.Parallel()
	global := color.Palette{color.RGBA{200, 30, 30, 255}, color.RGBA{30, 30, 200, 255}}
	g := gif.GIF{Config: image.Config{Width: 4, Height: 4, ColorModel: global}}
	for i := range 4 {
		p := image.NewPaletted(image.Rect(0, 0, 4, 4), global)
		p.SetColorIndex(i, i, 1)
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, 10)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	buf := bytes.Buffer{}
	require.NoError(t, gif.EncodeAll(&buf, &g))
	img, err := DecodeAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, img.Frames, 4)

	tr := NewAdjuster(HueShift(60))
	once := image.NewPaletted(image.Rect(0, 0, 1, 1), slices.Clone(img.Frames[0].Image.(*image.Paletted).Palette))
	_, err = ApplyTransform(once, tr)
	require.NoError(t, err)

	require.NoError(t, img.Apply(tr))
	for _, f := range img.Frames {
		p, ok := f.Image.(*image.Paletted)
		require.True(t, ok)
		require.Equal(t, once.Palette, p.Palette, "frame %d", f.Number)
	}
}
