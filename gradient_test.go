package okcolor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMix(t *testing.T) {
	t.Parallel()
	a := Oklch{L: 0.4, C: 0.1, H: 350}
	b := Oklch{L: 0.8, C: 0.2, H: 10}
	require.Equal(t, a, Mix(a, b, 0))

	m := Mix(a, b, 0.5)
	assert.InDelta(t, 0.6, m.L, 1e-12)
	assert.InDelta(t, 0.15, m.C, 1e-12)
	// the short way round crosses zero
	assert.InDelta(t, 0, m.H, 1e-9)

	end := Mix(a, b, 1)
	assert.InDelta(t, b.L, end.L, 1e-12)
	assert.InDelta(t, b.H, end.H, 1e-9)

	white := Oklch{L: 1}
	red := Oklch{L: 0.63, C: 0.26, H: 29}
	assert.InDelta(t, 29, Mix(white, red, 0.5).H, 1e-9)
	assert.InDelta(t, 29, Mix(red, white, 0.5).H, 1e-9)
}

func TestGradient(t *testing.T) {
	t.Parallel()
	from := Oklch{L: 0.3, C: 0.1, H: 200}
	to := Oklch{L: 0.9, C: 0.05, H: 80}
	g := Gradient(from, to, 5)
	require.Len(t, g, 5)
	require.Equal(t, from, g[0])
	assert.InDelta(t, to.L, g[4].L, 1e-12)
	assert.InDelta(t, to.H, g[4].H, 1e-9)
	for i := 1; i < len(g); i++ {
		assert.Greater(t, g[i].L, g[i-1].L)
		assert.Less(t, g[i].H, g[i-1].H)
	}
	require.Len(t, Gradient(from, to, 0), 2)
}
