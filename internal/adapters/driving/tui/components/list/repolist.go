// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/idealens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/idealens/internal/core/domain"
)

// EmptyText is shown while there are no results.
const EmptyText = "No results yet. Enter a project idea above."

// linesPerItem is the most lines one repository occupies, blank line included.
const linesPerItem = 5

// RepoList displays repositories in a navigable list.
type RepoList struct {
	repos    []domain.Repository
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRepoList creates a new repository list component.
func NewRepoList(s *styles.Styles) *RepoList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RepoList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (r *RepoList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *RepoList) Update(msg tea.Msg) (*RepoList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the list, scrolled so the selected repository is visible.
func (r *RepoList) View() string {
	if len(r.repos) == 0 {
		return r.styles.Muted.Render(EmptyText)
	}

	lines := make([]string, 0, len(r.repos)*linesPerItem+2)
	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.repos)))
	lines = append(lines, header, "")

	visibleCount := (r.height - 2) / linesPerItem
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.repos) {
		end = len(r.repos)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderRepo(i, r.repos[i]), "")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// renderRepo formats one repository: name, link, description and summary.
func (r *RepoList) renderRepo(index int, repo domain.Repository) string {
	textWidth := r.width - 6
	if textWidth < 20 {
		textWidth = 20
	}

	name := truncate(repo.Name, textWidth)
	var nameLine string
	if index == r.selected {
		nameLine = r.styles.Selected.Render("> " + name)
	} else {
		nameLine = r.styles.Normal.Render("  " + name)
	}

	out := []string{nameLine, "    " + r.styles.Link.Render(truncate(repo.URL, textWidth))}
	if repo.Description != "" {
		out = append(out, "    "+r.styles.Muted.Render(truncate(repo.Description, textWidth)))
	}
	if repo.HasSummary() {
		out = append(out, "    "+r.styles.Summary.Render(truncate(repo.Summary, textWidth)))
	}
	return strings.Join(out, "\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// SetRepos replaces the list and keeps the selection in range.
func (r *RepoList) SetRepos(repos []domain.Repository) {
	r.repos = repos
	if r.selected >= len(repos) {
		r.selected = 0
	}
}

// Repos returns the current repositories.
func (r *RepoList) Repos() []domain.Repository {
	return r.repos
}

// Selected returns the index of the selected repository.
func (r *RepoList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RepoList) SetSelected(index int) {
	if index >= 0 && index < len(r.repos) {
		r.selected = index
	}
}

// SelectedRepo returns the selected repository, or nil if none.
func (r *RepoList) SelectedRepo() *domain.Repository {
	if r.selected < 0 || r.selected >= len(r.repos) {
		return nil
	}
	return &r.repos[r.selected]
}

// MoveUp moves selection up.
func (r *RepoList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *RepoList) MoveDown() {
	if r.selected < len(r.repos)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *RepoList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *RepoList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *RepoList) Height() int {
	return r.height
}

// Count returns the number of repositories.
func (r *RepoList) Count() int {
	return len(r.repos)
}

// IsEmpty returns whether the list is empty.
func (r *RepoList) IsEmpty() bool {
	return len(r.repos) == 0
}
