package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Success))
	assert.NotEmpty(t, string(theme.Warning))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
}

func TestDefaultTheme_StatusColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Primary, theme.Success, theme.Warning, theme.Error} {
		assert.False(t, seen[c], "duplicate colour: %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestStyles_CanRenderText(t *testing.T) {
	styles := DefaultStyles()

	testCases := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Title", styles.Title},
		{"Label", styles.Label},
		{"Muted", styles.Muted},
		{"Success", styles.Success},
		{"Warning", styles.Warning},
		{"Error", styles.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, tc.style.Render("test text"), "test text")
		})
	}
}

func TestStyles_Table(t *testing.T) {
	styles := DefaultStyles()

	out := styles.Table(
		[]string{"NAME", "DISPLAY NAME"},
		[][]string{
			{"engine-a", "Engine A"},
			{"engine-b", "Engine B"},
		},
	)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "engine-a")
	assert.Contains(t, out, "Engine B")
	// Header, two rows and the top and bottom borders at least.
	assert.GreaterOrEqual(t, len(strings.Split(out, "\n")), 5)
}

func TestStyles_TableEmpty(t *testing.T) {
	out := DefaultStyles().Table([]string{"ID"}, nil)

	assert.Contains(t, out, "ID")
}
