package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// placeOverlay places a foreground string on top of a background at the
// given cell position. The layers are composed back to front, so a later
// overlay paints over an earlier one. Background lines are cut on terminal
// cell boundaries, keeping any ANSI escape sequences intact.
func placeOverlay(x, y int, fg, bg string) string {
	bgLines := splitLines(bg)
	fgLines := splitLines(fg)

	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}

	for i, fgLine := range fgLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}

		bgLine := bgLines[bgIdx]
		if pad := x - ansi.StringWidth(bgLine); pad > 0 {
			bgLine += strings.Repeat(" ", pad)
		}

		before := ansi.Truncate(bgLine, x, "")
		after := ""
		if fgWidth := ansi.StringWidth(fgLine); ansi.StringWidth(bgLine) > x+fgWidth {
			after = ansi.TruncateLeft(bgLine, x+fgWidth, "")
		}

		bgLines[bgIdx] = before + fgLine + after
	}

	return joinLines(bgLines)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func joinLines(lines []string) string {
	result := ""
	for i, line := range lines {
		if i > 0 {
			result += "\n"
		}
		result += line
	}
	return result
}
