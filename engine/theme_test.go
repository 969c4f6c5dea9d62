package engine

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	for in, want := range map[string]string{
		"":        DefaultTheme,
		"viridis": "viridis",
		" Magma ": "magma",
		"PURPLES": "purples",
	} {
		got, err := ParseTheme(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseTheme("sepia")
	assert.Error(t, err)
}

func TestEveryThemeHasAScale(t *testing.T) {
	for _, name := range Themes() {
		assert.GreaterOrEqual(t, len(ThemeScale(name)), 2, name)
	}
	assert.Equal(t, ThemeScale(DefaultTheme), ThemeScale("nope"))
}

func TestHeatColor(t *testing.T) {
	assert.Equal(t, "#F7FBFF", HeatColor("blues", Defined(-1)))
	assert.Equal(t, "#08306B", HeatColor("blues", Defined(1)))
	assert.Equal(t, "#6BAED6", HeatColor("blues", Defined(0)))
	assert.Equal(t, "#08306B", HeatColor("blues", Defined(3)))
	assert.Equal(t, UndefinedColor, HeatColor("blues", Undefined))
}

func TestTextColorFor(t *testing.T) {
	assert.Equal(t, "#000000", TextColorFor("#F7FBFF"))
	assert.Equal(t, "#FFFFFF", TextColorFor("#08306B"))
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x3A, G: 0x3A, B: 0x3A, A: 255}, ParseHexColor(UndefinedColor))
}

func TestMetricJSON(t *testing.T) {
	b, err := Defined(2.5).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(b))

	b, err = Undefined.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var m Metric
	require.NoError(t, m.UnmarshalJSON([]byte("null")))
	assert.False(t, m.Defined)
	require.NoError(t, m.UnmarshalJSON([]byte("4")))
	assert.Equal(t, Defined(4), m)
}

func TestScaleRGBA(t *testing.T) {
	scale := []string{"#000000", "#FFFFFF"}
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, ScaleRGBA(scale, -1))
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, ScaleRGBA(scale, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, ScaleRGBA(scale, 2))
	assert.Equal(t, ParseHexColor(UndefinedColor), ScaleRGBA(nil, 0))
	assert.Equal(t, ScaleRGBA(ThemeScale("viridis"), 0.3), HeatRGBA("viridis", 0.3))
}
