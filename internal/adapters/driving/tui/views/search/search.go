// Package search provides the idea search view for the TUI.
package search

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
)

// View is the search view: idea input, repository list and status bar.
//
// The view never holds result state of its own. Every render reads the
// controller, so results, cursor and the loading flag have one owner.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	list      *list.RepoList
	statusbar *status.Bar

	controller driving.SearchController
	ctx        context.Context

	width      int
	height     int
	ready      bool
	notice     string
	focusInput bool // true = typing an idea, false = navigating results
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, controller driving.SearchController) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewIdeaInput(s),
		list:       list.NewRepoList(s),
		statusbar:  status.NewBar(s, km),
		controller: controller,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context searches run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.refresh()
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchFinished:
		selected := v.list.Selected()
		v.refresh()
		if msg.Mode == domain.SubmitLoadMore {
			v.list.SetSelected(selected)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		switch {
		case keymap.Matches(msg.String(), v.keymap.Submit):
			return v, v.submit(v.input.Value(), domain.SubmitFresh)
		case keymap.Matches(msg.String(), v.keymap.Back):
			if !v.list.IsEmpty() {
				v.blurInput()
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.LoadMore):
		return v, v.loadMore()
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.input.SetValue("")
		return v, v.focus()
	case keymap.Matches(msg.String(), v.keymap.Back), keymap.Matches(msg.String(), v.keymap.Edit):
		return v, v.focus()
	}
	return v, nil
}

// submit begins a search and returns the command that runs it.
func (v *View) submit(query string, mode domain.SubmitMode) tea.Cmd {
	if v.controller == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoSearchController} }
	}

	run, err := v.controller.Begin(query, mode)
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		v.notice = "Enter a project idea to search for."
		return nil
	case errors.Is(err, domain.ErrSearchInProgress):
		v.notice = "A search is already running."
		return nil
	case err != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return nil
	}

	v.notice = ""
	v.statusbar.SetState(status.StateSearching)
	if mode == domain.SubmitFresh {
		v.blurInput()
	}

	ctx := v.ctx
	return func() tea.Msg {
		run.Run(ctx)
		return messages.SearchFinished{Mode: run.Mode(), Page: run.Page()}
	}
}

// loadMore requests the next page when another page is worth asking for.
func (v *View) loadMore() tea.Cmd {
	if v.controller == nil || !v.controller.State().CanLoadMore() {
		return nil
	}
	return v.submit(v.controller.Query(), domain.SubmitLoadMore)
}

// refresh copies the controller state into the list and status bar.
func (v *View) refresh() {
	if v.controller == nil {
		return
	}
	state := v.controller.State()
	v.list.SetRepos(state.Results)

	switch {
	case state.Loading:
		v.statusbar.SetState(status.StateSearching)
	case state.Query == "":
		v.statusbar.SetState(status.StateReady)
	default:
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetResults(len(state.Results), state.Cursor.Page, state.Cursor.HasMore)
	}
	v.updateBindings()
}

func (v *View) updateBindings() {
	if v.focusInput {
		v.statusbar.SetBindings(nil)
		return
	}
	canLoadMore := v.controller != nil && v.controller.State().CanLoadMore()
	v.statusbar.SetBindings(v.keymap.ResultsHelp(canLoadMore))
}

func (v *View) focus() tea.Cmd {
	v.focusInput = true
	v.updateBindings()
	return v.input.Focus()
}

func (v *View) blurInput() {
	v.focusInput = false
	v.input.Blur()
	v.updateBindings()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.input.View(), "")

	if v.notice != "" {
		sections = append(sections, v.styles.Warning.Render(v.notice), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9) // header, input, status
	v.statusbar.SetWidth(width)
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

// Query returns the idea currently typed in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the idea input.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the repositories currently displayed.
func (v *View) Results() []domain.Repository {
	return v.list.Repos()
}

// SelectedIndex returns the index of the selected repository.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedRepository returns the selected repository, or nil.
func (v *View) SelectedRepository() *domain.Repository {
	return v.list.SelectedRepo()
}

// Notice returns the current inline notice, if any.
func (v *View) Notice() string {
	return v.notice
}

// InputFocused returns whether the idea input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
