package styles

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Chapter One", 20, "Chapter One"},
		{"exact", "Chapter", 7, "Chapter"},
		{"cut", "The Cloud Ink", 8, "The Clo…"},
		{"zero", "anything", 0, ""},
		{"one", "anything", 1, "…"},
		{"wide runes", "雲の墨の物語", 7, "雲の墨…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateText(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), max(tt.width, 0))
		})
	}
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"light", "sepia", "dark"}, GetThemeNames())
	assert.Equal(t, "light", GetTheme("nope").Name)

	defer ApplyTheme(LightTheme)
	defer func() { currentTheme = LightTheme }()

	assert.True(t, SetCurrentTheme("sepia"))
	assert.False(t, SetCurrentTheme("sepia"))
	assert.Equal(t, SepiaTheme.Background, Background)
	assert.Equal(t, "sepia", CurrentTheme().Name)
}
