package action

import "github.com/mattn/go-runewidth"

// widthPadding is the fixed horizontal padding added to the longest
// visible label when sizing a surface.
const widthPadding = 5

// Geometry is the minimum render size for a surface.
type Geometry struct {
	Width int
}

// MeasureLabels computes the surface geometry for a set of visible
// labels: the display width of the longest label plus fixed padding.
// Widths are terminal cell widths, so double-width runes count as two.
func MeasureLabels(labels []string) Geometry {
	maxWidth := 0
	for _, l := range labels {
		if w := runewidth.StringWidth(l); w > maxWidth {
			maxWidth = w
		}
	}
	return Geometry{Width: maxWidth + widthPadding}
}

// GroupLabel is the visible label of a group row on the primary
// surface: the group name with the configured group icon appended.
func GroupLabel(name, icon string) string {
	return name + icon
}
