package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/views/search"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// App owns one search view and one chat view for its lifetime. Both keep
// their controller across view switches, so switching never loses results
// or the transcript.
type App struct {
	// ports provides access to the controllers.
	ports *Ports

	// ctx is the context searches and chat exchanges run under.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	searchView *search.View
	chatView   *chat.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// returnView is where help goes back to.
	returnView messages.ViewType

	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingSearchController)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		searchView:  search.NewView(s, km, ports.Search),
		chatView:    chat.NewView(s, km, ports.Chat),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("IdeaLens"),
		a.searchView.Init(),
		a.chatView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	// Completions are routed to their owner whichever view is active.
	case messages.SearchFinished:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ChatReplied:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.switchTo(msg.View)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, a.keymap.Quit) {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if keymap.Matches(keyStr, a.keymap.Help) || keymap.Matches(keyStr, a.keymap.Back) {
			a.switchTo(a.returnView)
		}
		return a, nil
	}

	if keymap.Matches(keyStr, a.keymap.SwitchView) {
		if a.currentView == messages.ViewSearch {
			a.switchTo(messages.ViewChat)
		} else {
			a.switchTo(messages.ViewSearch)
		}
		return a, nil
	}

	if keymap.Matches(keyStr, a.keymap.Help) && !a.typing() {
		a.switchTo(messages.ViewHelp)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// typing reports whether the active view's input has focus.
func (a *App) typing() bool {
	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.InputFocused()
	case messages.ViewChat:
		return a.chatView.InputFocused()
	default:
		return false
	}
}

func (a *App) switchTo(view messages.ViewType) {
	if view == messages.ViewHelp && a.currentView != messages.ViewHelp {
		a.returnView = a.currentView
	}
	a.currentView = view
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewSearch:
		body = a.searchView.View()
	case messages.ViewChat:
		body = a.chatView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.viewHeader(), "", body)
}

func (a *App) viewHeader() string {
	tab := func(label string, view messages.ViewType) string {
		if a.currentView == view {
			return a.styles.ActiveTab.Render(label)
		}
		return a.styles.Tab.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.styles.Title.Render("IdeaLens "),
		tab("Search", messages.ViewSearch),
		tab("Chat", messages.ViewChat),
	)
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Subtitle.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// ChatView returns the chat view.
func (a *App) ChatView() *chat.View {
	return a.chatView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and sizes both views below the header.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height-2)
	a.chatView.SetDimensions(width, height-2)
}
