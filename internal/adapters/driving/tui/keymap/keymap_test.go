package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"submit", km.Submit, []string{"enter"}},
		{"switch view", km.SwitchView, []string{"tab"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"load more", km.LoadMore, []string{"m"}},
		{"new search", km.NewSearch, []string{"n"}},
		{"edit", km.Edit, []string{"i"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_QuitIsNotAPrintableKey(t *testing.T) {
	km := DefaultKeyMap()

	// Typing "q" into an idea must not quit.
	assert.False(t, Matches("q", km.Quit))
}

func TestKeyMap_ResultsHelp(t *testing.T) {
	km := DefaultKeyMap()

	withMore := km.ResultsHelp(true)
	withoutMore := km.ResultsHelp(false)

	assert.Contains(t, helpKeys(withMore), "m")
	assert.NotContains(t, helpKeys(withoutMore), "m")
	assert.Len(t, withoutMore, len(withMore)-1)
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"enter", "tab", "ctrl+c"}, helpKeys(km.ShortHelp()))
}

func TestKeyMap_TranscriptHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, helpKeys(km.TranscriptHelp()), "i")
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	require.Len(t, groups, 3)
	for _, group := range groups {
		assert.NotEmpty(t, group)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("up", km.Up))
	assert.False(t, Matches("j", km.Up))
	assert.True(t, Matches("tab", km.SwitchView))
}

func helpKeys(bindings []key.Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, b.Help().Key)
	}
	return out
}
