package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"primary":    theme.Primary,
		"secondary":  theme.Secondary,
		"accent":     theme.Accent,
		"background": theme.Background,
		"foreground": theme.Foreground,
		"muted":      theme.Muted,
		"success":    theme.Success,
		"warning":    theme.Warning,
		"error":      theme.Error,
		"border":     theme.Border,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	accents := []lipgloss.Color{
		theme.Primary,
		theme.Secondary,
		theme.Accent,
		theme.Success,
		theme.Warning,
		theme.Error,
	}

	seen := make(map[string]bool)
	for _, c := range accents {
		assert.False(t, seen[string(c)], "duplicate colour: %s", c)
		seen[string(c)] = true
	}
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DefaultTheme()
	styles := NewStyles(theme)

	require.NotNil(t, styles)
	assert.Equal(t, theme, styles.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	styles := DefaultStyles()

	for name, s := range map[string]lipgloss.Style{
		"title":           styles.Title,
		"subtitle":        styles.Subtitle,
		"normal":          styles.Normal,
		"muted":           styles.Muted,
		"selected":        styles.Selected,
		"error":           styles.Error,
		"success":         styles.Success,
		"warning":         styles.Warning,
		"link":            styles.Link,
		"summary":         styles.Summary,
		"user message":    styles.UserMessage,
		"assistant label": styles.AssistantLabel,
		"tab":             styles.Tab,
		"active tab":      styles.ActiveTab,
		"input":           styles.InputField,
		"status bar":      styles.StatusBar,
		"help":            styles.Help,
		"border":          styles.Border,
	} {
		assert.NotEqual(t, lipgloss.Style{}, s, name)
	}
}

func TestStyles_UserMessageAlignsRight(t *testing.T) {
	styles := DefaultStyles()

	assert.Equal(t, lipgloss.Right, styles.UserMessage.GetAlignHorizontal())
}

func TestStyles_CanRenderText(t *testing.T) {
	styles := DefaultStyles()

	for _, s := range []lipgloss.Style{styles.Title, styles.Link, styles.Summary, styles.ActiveTab} {
		assert.Contains(t, s.Render("idea"), "idea")
	}
}
