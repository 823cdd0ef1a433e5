package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// CapacityBar renders one slot per allowed item, taken slots first,
// followed by "used/limit".
func CapacityBar(used, limit int) string {
	if limit < 1 {
		limit = 1
	}
	if used > limit {
		used = limit
	}
	if used < 0 {
		used = 0
	}
	t := Current()
	slots := strings.Repeat(t.SlotTaken+" ", used) + strings.Repeat(t.SlotFree+" ", limit-used)
	return fmt.Sprintf("%s %d/%d", strings.TrimSpace(slots), used, limit)
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	// visible width, ignoring color codes and counting wide runes
	maxw := 0
	for _, ln := range lines {
		if vw := lipgloss.Width(stripANSI(ln)); vw > maxw {
			maxw = vw
		}
	}
	pad := func(s string) string {
		vis := lipgloss.Width(stripANSI(s))
		if vis < maxw {
			s = s + strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}
