// Package draw renders logical-space shapes to a terminal using half-block characters.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI SGR fragments used by the renderer.
const (
	sgrReset = "\033[0m"
	sgrBold  = "\033[1m"
)

// Color256 returns the SGR sequence selecting a 256-colour foreground.
// Negative indices yield the terminal default.
func Color256(index int) string {
	if index < 0 || index > 255 {
		return "\033[39m"
	}
	return "\033[38;5;" + itoa(index) + "m"
}

// Reset returns the SGR sequence that clears all attributes.
func Reset() string { return sgrReset }

// Bold returns the SGR sequence for bold text.
func Bold() string { return sgrBold }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
