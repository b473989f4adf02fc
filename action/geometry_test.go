package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasureLabels(t *testing.T) {
	g := MeasureLabels([]string{"short", "a much longer label"})
	assert.Equal(t, len("a much longer label")+5, g.Width)

	assert.Equal(t, 5, MeasureLabels(nil).Width, "empty set still gets padding")
}

func TestMeasureLabelsUsesDisplayWidth(t *testing.T) {
	// CJK runes occupy two terminal cells each.
	g := MeasureLabels([]string{"変数名を変更"})
	assert.Equal(t, 12+5, g.Width)
}

func TestGroupLabel(t *testing.T) {
	assert.Equal(t, "Clippy ▸", GroupLabel("Clippy", " ▸"))
}
