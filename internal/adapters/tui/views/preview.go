package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"notepub/internal/adapters/tui/styles"
	"notepub/internal/domain"
)

// PreviewKeyMap defines key bindings for the preview view
type PreviewKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultPreviewKeys returns the default preview key bindings
var DefaultPreviewKeys = PreviewKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "publish"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc", "q"),
		key.WithHelp("n/q", "cancel"),
	),
}

// ConfirmPublishMsg is emitted when the user confirms the publish
type ConfirmPublishMsg struct{}

// CancelMsg is emitted when the user backs out
type CancelMsg struct{}

// PreviewModel shows what a publish would do before anything is written:
// the root note, the reachable linked files, and the estimated size.
type PreviewModel struct {
	ViewState
	Keys PreviewKeyMap

	rootPath  string
	target    string
	stats     *domain.PublishStats
	loading   bool
	paginator *Paginator
}

// NewPreviewModel creates a new preview view model
func NewPreviewModel(rootPath, targetFolder string) *PreviewModel {
	return &PreviewModel{
		Keys:      DefaultPreviewKeys,
		rootPath:  rootPath,
		target:    targetFolder,
		loading:   true,
		paginator: NewPaginator(12),
	}
}

// Init initializes the preview view
func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

// SetStats hands over the loaded dry-run stats
func (m *PreviewModel) SetStats(stats *domain.PublishStats) {
	m.stats = stats
	m.loading = false
	m.paginator.SetTotal(len(stats.LinkedFiles))
}

// Update handles messages for the preview view
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			return m, func() tea.Msg { return CancelMsg{} }
		case key.Matches(msg, m.Keys.Confirm):
			if !m.loading {
				return m, func() tea.Msg { return ConfirmPublishMsg{} }
			}
		case key.Matches(msg, m.Keys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, m.Keys.Down):
			m.paginator.CursorDown()
		}
	}

	return m, nil
}

// View renders the preview view
func (m *PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Publish Preview"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.rootPath + " → " + m.target))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styles.MutedText.Render("Scanning linked files..."))
		return styles.App.Render(b.String())
	}

	fmt.Fprintf(&b, "%d files, ~%s\n\n",
		m.stats.TotalFiles, formatSize(m.stats.EstimatedSize))

	if len(m.stats.LinkedFiles) == 0 {
		b.WriteString(styles.MutedText.Render("No linked files, only the note itself will be published."))
		b.WriteString("\n")
	} else {
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			row := "  " + m.stats.LinkedFiles[i].Path
			if i == m.paginator.Cursor() {
				row = styles.FileSelected.Render("▸ " + m.stats.LinkedFiles[i].Path)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
		if m.paginator.TotalPages() > 1 {
			fmt.Fprintf(&b, "\n%s\n", styles.MutedText.Render(
				fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())))
		}
	}

	b.WriteString("\n")
	b.WriteString(renderHelp(m.Keys.Confirm, m.Keys.Cancel, m.Keys.Up, m.Keys.Down))
	return styles.App.Render(b.String())
}

func renderHelp(bindings ...key.Binding) string {
	var parts []string
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
