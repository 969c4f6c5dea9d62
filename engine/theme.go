package engine

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// ============================================================================
// THEMES: Heatmap color scales
// ============================================================================
// The theme selector is cosmetic: it changes the correlation heatmap palette
// and nothing else. Scales run from the low end (-1) to the high end (+1).
// ============================================================================

// DefaultTheme is the heatmap theme used when none is selected.
const DefaultTheme = "purples"

// UndefinedColor paints heatmap cells with no defined coefficient.
const UndefinedColor = "#3A3A3A"

var themeScales = map[string][]string{
	"blues":   {"#F7FBFF", "#C6DBEF", "#6BAED6", "#2171B5", "#08306B"},
	"cividis": {"#00224E", "#35456C", "#666970", "#948E77", "#C8B866", "#FEE838"},
	"greens":  {"#F7FCF5", "#C7E9C0", "#74C476", "#238B45", "#00441B"},
	"inferno": {"#000004", "#420A68", "#932667", "#DD513A", "#FCA50A", "#FCFFA4"},
	"magma":   {"#000004", "#3B0F70", "#8C2981", "#DE4968", "#FE9F6D", "#FCFDBF"},
	"plasma":  {"#0D0887", "#6A00A8", "#B12A90", "#E16462", "#FCA636", "#F0F921"},
	"reds":    {"#FFF5F0", "#FCBBA1", "#FB6A4A", "#CB181D", "#67000D"},
	"rainbow": {"#96005A", "#0000C8", "#0019FF", "#0098FF", "#2CFF96", "#97FF00", "#FFEA00", "#FF6F00", "#FF0000"},
	"turbo":   {"#30123B", "#4686FB", "#1AE4B6", "#A2FC3C", "#FABA39", "#E4460A", "#7A0403"},
	"viridis": {"#440154", "#3B528B", "#21918C", "#5EC962", "#FDE725"},
	"purples": {"#FCFBFD", "#DADAEB", "#9E9AC8", "#6A51A3", "#3F007D"},
}

// Themes lists the selectable heatmap themes in menu order.
func Themes() []string {
	return []string{"blues", "cividis", "greens", "inferno", "magma", "plasma", "reds", "rainbow", "turbo", "viridis", "purples"}
}

// ParseTheme normalizes a theme name. Empty selects DefaultTheme.
func ParseTheme(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultTheme, nil
	}
	if _, ok := themeScales[name]; !ok {
		return DefaultTheme, fmt.Errorf("unknown color theme %q (valid: %s)", name, strings.Join(Themes(), ", "))
	}
	return name, nil
}

// ThemeScale returns the color stops of a theme (DefaultTheme if unknown).
func ThemeScale(name string) []string {
	if s, ok := themeScales[name]; ok {
		return append([]string(nil), s...)
	}
	return append([]string(nil), themeScales[DefaultTheme]...)
}

// HeatColor maps a coefficient in [-1, 1] onto the theme scale.
func HeatColor(theme string, m Metric) string {
	if !m.Defined {
		return UndefinedColor
	}
	c := HeatRGBA(theme, m.Value)
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HeatRGBA interpolates the theme scale at v ∈ [-1, 1].
func HeatRGBA(theme string, v float64) color.RGBA {
	return ScaleRGBA(ThemeScale(theme), v)
}

// ScaleRGBA interpolates an explicit color scale at v ∈ [-1, 1].
func ScaleRGBA(scale []string, v float64) color.RGBA {
	if len(scale) == 0 {
		return parseHex(UndefinedColor)
	}
	t := (math.Max(-1, math.Min(1, v)) + 1) / 2
	pos := t * float64(len(scale)-1)
	i := int(math.Floor(pos))
	if i >= len(scale)-1 {
		return parseHex(scale[len(scale)-1])
	}
	frac := pos - float64(i)
	a, b := parseHex(scale[i]), parseHex(scale[i+1])
	return color.RGBA{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: 255,
	}
}

// TextColorFor picks black or white text for legibility on a background.
func TextColorFor(background string) string {
	c := parseHex(background)
	luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if luma > 140 {
		return "#000000"
	}
	return "#FFFFFF"
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func parseHex(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ParseHexColor converts "#RRGGBB" to an RGBA color.
func ParseHexColor(s string) color.RGBA { return parseHex(s) }
