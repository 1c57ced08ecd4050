package property

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA constructs a Color from red, green, blue, alpha bytes.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// RGBAF returns normalized color components (0.0 to 1.0).
func (c Color) RGBAF() (r, g, b, a float64) {
	return float64(uint8(c>>16)) / maxByte,
		float64(uint8(c>>8)) / maxByte,
		float64(uint8(c)) / maxByte,
		float64(uint8(c>>24)) / maxByte
}

// WithAlpha returns a copy of the color with the given alpha (0-255).
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// Common colors.
var (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
)

// ParseColor parses a declaration color value: #rgb, #rrggbb, #rrggbbaa
// hex forms, rgb()/rgba() functional forms, or an SVG 1.1 color keyword.
func ParseColor(raw string) (Color, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	switch {
	case raw == "transparent":
		return ColorTransparent, nil
	case strings.HasPrefix(raw, "#"):
		return parseHexColor(raw[1:])
	case strings.HasPrefix(raw, "rgb(") && strings.HasSuffix(raw, ")"):
		return parseColorChannels(raw[4:len(raw)-1], false)
	case strings.HasPrefix(raw, "rgba(") && strings.HasSuffix(raw, ")"):
		return parseColorChannels(raw[5:len(raw)-1], true)
	}
	if named, ok := colornames.Map[raw]; ok {
		return RGBA(named.R, named.G, named.B, named.A), nil
	}
	return 0, fmt.Errorf("invalid color %q", raw)
}

func parseHexColor(hex string) (Color, error) {
	switch len(hex) {
	case 3:
		var expanded [6]byte
		for i := 0; i < 3; i++ {
			expanded[i*2] = hex[i]
			expanded[i*2+1] = hex[i]
		}
		hex = string(expanded[:])
	case 6, 8:
	default:
		return 0, fmt.Errorf("invalid hex color #%s", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color #%s", hex)
	}
	if len(hex) == 8 {
		// #rrggbbaa: move trailing alpha to the high byte.
		return Color(uint32(v)>>8 | uint32(v)<<24), nil
	}
	return Color(uint32(v) | 0xFF000000), nil
}

func parseColorChannels(inner string, hasAlpha bool) (Color, error) {
	parts := strings.Split(inner, ",")
	want := 3
	if hasAlpha {
		want = 4
	}
	if len(parts) != want {
		return 0, fmt.Errorf("expected %d color channels, got %d", want, len(parts))
	}
	var channels [4]uint8
	channels[3] = 0xFF
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i == 3 {
			// Alpha is specified as a 0-1 float.
			f, err := strconv.ParseFloat(part, 64)
			if err != nil || f < 0 || f > 1 {
				return 0, fmt.Errorf("invalid alpha channel %q", part)
			}
			channels[3] = uint8(f*maxByte + 0.5)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return 0, fmt.Errorf("invalid color channel %q", part)
		}
		channels[i] = uint8(n)
	}
	return RGBA(channels[0], channels[1], channels[2], channels[3]), nil
}
