// color.go - Color string parsing into packed pixels.
package canvas

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
)

// ParseColor parses "#rrggbb" (the leading '#' is optional) or "random" into
// a packed pixel.
func ParseColor(s string) (uint32, error) {
	if s == "random" {
		buf := make([]byte, 3)
		if _, err := rand.Read(buf); err != nil {
			return 0, fmt.Errorf("random color: %w", err)
		}
		return Pack(buf[0], buf[1], buf[2]), nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: expected 6-char hex", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

// FormatColor is the inverse of ParseColor for non-random colors.
func FormatColor(p uint32) string {
	return fmt.Sprintf("#%06x", p&0xffffff)
}
