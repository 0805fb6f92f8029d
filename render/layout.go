// Package render lays out the logo and the report side by side.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const escape = '\x1b'

// DefaultGap is the number of spaces between the logo and the info column.
const DefaultGap = 4

// WidthFunc measures the on-screen width of a line.
type WidthFunc func(s string) int

// VisibleWidth returns the width of s excluding ANSI escape sequences. A
// sequence runs from ESC up to and including the next 'm'. Every other rune
// counts as one cell, so wide runes are undercounted.
func VisibleWidth(s string) int {
	return measure(s, func(rune) int { return 1 })
}

// CellWidth is VisibleWidth with runes measured by their terminal cell
// width: East Asian wide runes count 2 and combining marks 0.
func CellWidth(s string) int {
	return measure(s, runewidth.RuneWidth)
}

func measure(s string, width func(rune) int) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == escape:
			inEscape = true
		default:
			n += width(r)
		}
	}
	return n
}

// Compose joins logo and info into rows. The logo column is padded so every
// info cell starts gap spaces after the widest logo line, whatever escape
// sequences the logo carries. A nil width uses VisibleWidth.
func Compose(logo, info []string, gap int, width WidthFunc) []string {
	if width == nil {
		width = VisibleWidth
	}

	logoWidth := 0
	for _, line := range logo {
		if w := width(line); w > logoWidth {
			logoWidth = w
		}
	}

	rows := len(logo)
	if len(info) > rows {
		rows = len(info)
	}

	out := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		var logoLine, infoLine string
		if i < len(logo) {
			logoLine = logo[i]
		}
		if i < len(info) {
			infoLine = info[i]
		}
		pad := logoWidth - width(logoLine) + gap
		if pad < 0 {
			pad = 0
		}
		out = append(out, logoLine+strings.Repeat(" ", pad)+infoLine)
	}
	return out
}
