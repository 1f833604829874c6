package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"notepub/internal/adapters/tui/styles"
	"notepub/internal/application/commands"
	"notepub/internal/ports"
)

// ResultKeyMap defines key bindings for the result view
type ResultKeyMap struct {
	CopyURL key.Binding
	Open    key.Binding
	Quit    key.Binding
}

// DefaultResultKeys returns the default result key bindings
var DefaultResultKeys = ResultKeyMap{
	CopyURL: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy URL"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in Obsidian"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "enter"),
		key.WithHelp("q", "quit"),
	),
}

// ResultModel shows the outcome of a publish run
type ResultModel struct {
	ViewState
	Keys ResultKeyMap

	rootPath string
	report   *commands.PublishReport
	opener   ports.ObsidianOpener
}

// NewResultModel creates a new result view model
func NewResultModel(rootPath string, opener ports.ObsidianOpener) *ResultModel {
	return &ResultModel{
		Keys:     DefaultResultKeys,
		rootPath: rootPath,
		opener:   opener,
	}
}

// Init initializes the result view
func (m *ResultModel) Init() tea.Cmd {
	return nil
}

// SetReport hands over the finished publish report
func (m *ResultModel) SetReport(report *commands.PublishReport) {
	m.report = report
}

// Update handles messages for the result view
func (m *ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, func() tea.Msg { return CancelMsg{} }

		case key.Matches(msg, m.Keys.CopyURL):
			if m.report != nil && m.report.URL != "" {
				if err := clipboard.WriteAll(m.report.URL); err != nil {
					m.SetMessage("clipboard unavailable: "+err.Error(), true)
				} else {
					m.SetMessage("URL copied to clipboard", false)
				}
			}
			return m, nil

		case key.Matches(msg, m.Keys.Open):
			if m.opener != nil {
				if err := m.opener.OpenFile(m.rootPath); err != nil {
					m.SetMessage("could not open Obsidian: "+err.Error(), true)
				} else {
					m.SetMessage("opened in Obsidian", false)
				}
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the result view
func (m *ResultModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Publish Result"))
	b.WriteString("\n\n")

	if m.report == nil {
		b.WriteString(styles.MutedText.Render("Publishing..."))
		return styles.App.Render(b.String())
	}

	files := m.report.Files
	if len(files.Errors) == 0 {
		b.WriteString(styles.Success.Render(m.report.Message))
	} else {
		b.WriteString(styles.ErrorMsg.Render(m.report.Message))
	}
	b.WriteString("\n\n")

	for _, f := range files.PublishedFiles {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	for _, f := range files.SkippedFiles {
		fmt.Fprintf(&b, "  %s\n", styles.FileSkipped.Render(f+" (depth limit)"))
	}
	for _, e := range files.Errors {
		fmt.Fprintf(&b, "  %s\n", styles.FileError.Render(e))
	}

	if m.report.URL != "" {
		b.WriteString("\n")
		b.WriteString(styles.URL.Render(m.report.URL))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	keys := []key.Binding{m.Keys.Quit}
	if m.report.URL != "" {
		keys = append([]key.Binding{m.Keys.CopyURL}, keys...)
	}
	if m.opener != nil {
		keys = append([]key.Binding{m.Keys.Open}, keys...)
	}
	b.WriteString(renderHelp(keys...))

	return styles.App.Render(b.String())
}
