package okcolor

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgskye/okcolor/colorconv"
)

func hue_distance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return min(d, 360-d)
}

func assert_in_gamut(t *testing.T, linear colorconv.Vec3, msg ...any) {
	t.Helper()
	for _, x := range linear {
		assert.GreaterOrEqual(t, x, -1e-4, msg...)
		assert.LessOrEqual(t, x, 1+1e-4, msg...)
	}
}

func TestNewAdjuster_Identity(t *testing.T) {
	t.Parallel()
	tr := NewAdjuster()
	for _, c := range []colorconv.Vec3{{0, 0, 0}, {1, 1, 1}, {0.2, 0.5, 0.9}, {1.5, -0.1, 0.3}} {
		require.Equal(t, c, tr(c))
	}
	// explicit neutral options are the identity too
	tr = NewAdjuster(HueShift(0), ChromaScale(1), ValueScale(1))
	c := colorconv.Vec3{0.3, 0.1, 0.7}
	require.Equal(t, c, tr(c))
}

func TestNewAdjuster_HueShift(t *testing.T) {
	t.Parallel()
	tr := NewAdjuster(HueShift(120))
	r := rand.New(rand.NewPCG(3, 5))
	for range 100 {
		c := colorconv.Vec3{r.Float64(), r.Float64(), r.Float64()}
		before := colorconv.LabToLCh(colorconv.LinearToOklab(c))
		if before[1] < 0.02 {
			continue
		}
		out := tr(c)
		assert_in_gamut(t, out, c)
		after := colorconv.LabToLCh(colorconv.LinearToOklab(out))
		assert.InDelta(t, 120, hue_distance(before[2], after[2]), 1e-3, c.String())
	}
}

func TestNewAdjuster_Chroma(t *testing.T) {
	t.Parallel()
	gray := NewAdjuster(ChromaScale(0))
	vivid := NewAdjuster(ChromaScale(3))
	r := rand.New(rand.NewPCG(8, 9))
	for range 100 {
		c := colorconv.Vec3{r.Float64(), r.Float64(), r.Float64()}
		before := colorconv.LinearToOklab(c)

		g := colorconv.LinearToOklab(gray(c))
		assert.InDelta(t, before[0], g[0], 1e-6)
		assert.InDelta(t, 0, g[1], 1e-6)
		assert.InDelta(t, 0, g[2], 1e-6)

		assert_in_gamut(t, vivid(c), c)
	}
}

func TestNewAdjuster_Okhsv(t *testing.T) {
	t.Parallel()
	black := NewAdjuster(ValueScale(0))
	desaturate := NewAdjuster(SaturationScale(0))
	r := rand.New(rand.NewPCG(21, 22))
	for range 50 {
		c := colorconv.Vec3{r.Float64(), r.Float64(), r.Float64()}
		for _, x := range black(c) {
			assert.InDelta(t, 0, x, 1e-12)
		}
		d := colorconv.LinearToOklab(desaturate(c))
		assert.InDelta(t, 0, d[1], 1e-6)
		assert.InDelta(t, 0, d[2], 1e-6)
	}
}

func TestNewAdjuster_Lightness(t *testing.T) {
	t.Parallel()
	// lightness is clamped at zero, the clipping keeps the result close to
	// black while preserving some chroma
	tr := NewAdjuster(LightnessShift(-1))
	dark := tr(colorconv.Vec3{0.2, 0.7, 0.4})
	assert_in_gamut(t, dark)
	assert.Less(t, colorconv.LinearToOklab(dark)[0], 0.1)
	tr = NewAdjuster(LightnessShift(0.1))
	c := colorconv.Vec3{0.2, 0.2, 0.2}
	before := colorconv.LinearToOklab(c)
	after := colorconv.LinearToOklab(tr(c))
	assert.InDelta(t, before[0]+0.1, after[0], 1e-6)
}

func TestNormalizeHue(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 10.0, normalize_hue(370))
	assert.Equal(t, 350.0, normalize_hue(-10))
	assert.Equal(t, 0.0, normalize_hue(360))
}
