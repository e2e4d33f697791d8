package ranking

import (
	"strconv"
	"strings"
)

// DefaultWindow is used for any width outside the supported set
const DefaultWindow = 1

// Windows lists the supported rolling widths
var Windows = []int{1, 4, 8, 12}

// SelectWindow returns n when it is a supported width, otherwise DefaultWindow.
// Unsupported values are not snapped to a neighbour: 6 becomes 1.
func SelectWindow(n int) int {
	for _, w := range Windows {
		if w == n {
			return n
		}
	}
	return DefaultWindow
}

// ParseWindow applies SelectWindow to raw request text
func ParseWindow(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultWindow
	}
	return SelectWindow(n)
}
