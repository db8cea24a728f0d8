// Package chat provides the assistant conversation view for the TUI.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
)

// Placeholder is shown while the transcript is empty.
const Placeholder = "Your AI assistant will appear here."

// ErrNoChatController indicates that no chat controller was provided.
var ErrNoChatController = errors.New("chat controller is required")

// View is the chat view: transcript viewport, message input and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	viewport  viewport.Model
	renderer  *glamour.TermRenderer
	statusbar *status.Bar

	controller driving.ChatController
	ctx        context.Context

	width      int
	height     int
	ready      bool
	pending    int
	focusInput bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, controller driving.ChatController) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewMessageInput(s),
		viewport:   viewport.New(80, 16),
		renderer:   newRenderer(76),
		statusbar:  status.NewBar(s, km),
		controller: controller,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
	v.refresh()
	return v
}

func newRenderer(wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return renderer
}

// WithContext sets the context assistant calls run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.refresh()
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ChatReplied:
		if v.pending > 0 {
			v.pending--
		}
		v.refresh()
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	} else {
		v.viewport, cmd = v.viewport.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		switch {
		case keymap.Matches(msg.String(), v.keymap.Submit):
			return v, v.send()
		case keymap.Matches(msg.String(), v.keymap.Back):
			v.focusInput = false
			v.input.Blur()
			v.updateBindings()
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if keymap.Matches(msg.String(), v.keymap.Edit) || keymap.Matches(msg.String(), v.keymap.Submit) {
		v.focusInput = true
		v.updateBindings()
		return v, v.input.Focus()
	}

	// Scrolling keys
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// send submits the typed message. The user message is in the transcript
// before the returned command calls the assistant.
func (v *View) send() tea.Cmd {
	if v.controller == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoChatController} }
	}

	v.controller.SetInput(v.input.Value())
	pending, err := v.controller.SubmitInput()
	if errors.Is(err, domain.ErrEmptyMessage) {
		return nil
	}
	if err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return nil
	}

	v.input.SetValue(v.controller.Input())
	v.pending++
	v.refresh()

	ctx := v.ctx
	return func() tea.Msg {
		return messages.ChatReplied{Message: pending.Await(ctx)}
	}
}

// refresh re-renders the transcript and scrolls to the newest message.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()

	if v.pending > 0 {
		v.statusbar.SetState(status.StateSending)
	} else {
		v.statusbar.SetState(status.StateReady)
	}
	v.updateBindings()
}

func (v *View) updateBindings() {
	if v.focusInput {
		v.statusbar.SetBindings(nil)
		return
	}
	v.statusbar.SetBindings(v.keymap.TranscriptHelp())
}

func (v *View) renderTranscript() string {
	transcript := v.Transcript()
	if len(transcript) == 0 {
		return v.styles.Muted.Render(Placeholder)
	}

	width := v.viewport.Width
	blocks := make([]string, 0, len(transcript))
	for _, m := range transcript {
		if m.IsUser() {
			blocks = append(blocks, v.styles.UserMessage.Width(width).Render(m.Text))
			continue
		}
		blocks = append(blocks, v.styles.AssistantLabel.Render("Assistant")+"\n"+v.renderMarkdown(m.Text))
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) renderMarkdown(text string) string {
	if v.renderer == nil {
		return text
	}
	out, err := v.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.viewport.View(),
		"",
		v.input.View(),
		"",
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.viewport.Width = width
	v.viewport.Height = height - 8 // header, input, status
	if v.viewport.Height < 3 {
		v.viewport.Height = 3
	}
	v.renderer = newRenderer(width - 4)
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.refresh()
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Transcript returns the controller's transcript.
func (v *View) Transcript() []domain.ChatMessage {
	if v.controller == nil {
		return nil
	}
	return v.controller.Transcript()
}

// Pending returns the number of exchanges awaiting a reply.
func (v *View) Pending() int {
	return v.pending
}

// Input returns the message currently typed.
func (v *View) Input() string {
	return v.input.Value()
}

// InputFocused returns whether the message input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
