package main

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgskye/okcolor"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := root_cmd()
	out := bytes.Buffer{}
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvert(t *testing.T) {
	out, err := run(t, "convert", "--to", "oklab", "#ff0000")
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.Len(t, fields, 5)
	assert.Equal(t, "oklab", fields[0])
	assert.True(t, strings.HasPrefix(fields[1], "0.6279"), out)
	assert.Equal(t, "#FF0000", fields[4])

	out, err = run(t, "convert", "--from", "okhsv", "--to", "srgb", "0", "0", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "#FFFFFF"), out)

	_, err = run(t, "convert", "--to", "cmyk", "#fff")
	require.ErrorIs(t, err, okcolor.ErrUnknownSpace)
	_, err = run(t, "convert", "1", "2")
	require.Error(t, err)
	_, err = run(t, "convert", "#ggg")
	require.ErrorIs(t, err, okcolor.ErrInvalidHex)
}

func TestGradient(t *testing.T) {
	out, err := run(t, "gradient", "-n", "3", "#000000", "#ffffff")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#000000"))
	assert.True(t, strings.HasPrefix(lines[2], "#FFFFFF"))
}

func TestAdjust(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xc0
	}
	input, output := filepath.Join(dir, "in.png"), filepath.Join(dir, "out.png")
	require.NoError(t, okcolor.Save(src, input))
	_, err := run(t, "adjust", "--value", "0", input, output)
	require.NoError(t, err)
	img, err := okcolor.Open(output)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xc0}, color.NRGBAModel.Convert(img.At(1, 1)))

	_, err = run(t, "adjust", input, filepath.Join(dir, "out.xyz"))
	require.ErrorIs(t, err, okcolor.ErrUnsupportedFormat)
}
