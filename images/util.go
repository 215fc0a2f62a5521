package images

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrColorLength is returned when a color string is not six hex digits long.
	ErrColorLength = errors.New("color must be in #RRGGBB format")
	// ErrColorDigits is returned when a color string contains non-hex characters.
	ErrColorDigits = errors.New("invalid hexadecimal color")
)

// ParseHexColor parses a "#RRGGBB" color. The leading '#' is optional.
//
// Arguments:
// - s: The color string.
//
// Returns:
// - color.RGBA: The parsed color with full opacity.
// - error: ErrColorLength or ErrColorDigits.
//
// @example
// key, err := ParseHexColor("#00FF00")
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, ErrColorLength
	}

	var c [3]uint8
	for i := range c {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.RGBA{}, ErrColorDigits
		}
		c[i] = uint8(v)
	}

	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}, nil
}
