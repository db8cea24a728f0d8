package input

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/styles"
)

func TestNewTextInput(t *testing.T) {
	s := styles.DefaultStyles()
	in := NewTextInput(s, "Label: ", "placeholder")

	require.NotNil(t, in)
	assert.Equal(t, "", in.Value())
	assert.Equal(t, "Label: ", in.Label())
	assert.True(t, in.Focused())
}

func TestNewTextInput_NilStyles(t *testing.T) {
	in := NewTextInput(nil, "", "")

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
}

func TestNewIdeaAndMessageInputs(t *testing.T) {
	assert.Equal(t, "Idea: ", NewIdeaInput(nil).Label())
	assert.Equal(t, "You: ", NewMessageInput(nil).Label())
}

func TestTextInput_Init(t *testing.T) {
	in := NewIdeaInput(nil)

	assert.NotNil(t, in.Init())
}

func TestTextInput_Update(t *testing.T) {
	in := NewIdeaInput(nil)

	updated, _ := in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("todo app")})

	assert.Equal(t, in, updated)
	assert.Equal(t, "todo app", in.Value())
}

func TestTextInput_UpdateWhenBlurred(t *testing.T) {
	in := NewIdeaInput(nil)
	in.Blur()

	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Equal(t, "", in.Value())
	assert.False(t, in.Focused())
}

func TestTextInput_View(t *testing.T) {
	in := NewIdeaInput(nil)

	view := in.View()

	assert.Contains(t, view, "Idea:")
}

func TestTextInput_SetValueAndReset(t *testing.T) {
	in := NewMessageInput(nil)

	in.SetValue("hello")
	assert.Equal(t, "hello", in.Value())

	in.Reset()
	assert.Equal(t, "", in.Value())
}

func TestTextInput_CharLimit(t *testing.T) {
	in := NewIdeaInput(nil)

	in.SetValue(strings.Repeat("a", CharLimit+10))

	assert.Len(t, in.Value(), CharLimit)
}

func TestTextInput_SetWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		field int
	}{
		{"wide", 100, 100 - len("Idea: ") - 6},
		{"narrow clamps", 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewIdeaInput(nil)
			in.SetWidth(tt.width)

			assert.Equal(t, tt.width, in.Width())
			assert.Equal(t, tt.field, in.textinput.Width)
		})
	}
}
