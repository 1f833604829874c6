package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"notepub/internal/adapters/tui/views"
	"notepub/internal/application/commands"
	"notepub/internal/domain"
	"notepub/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewPreview ViewState = iota
	ViewResult
)

// App drives the interactive publish flow: preview the linked neighborhood,
// confirm, publish, then show the result with copy/open shortcuts.
type App struct {
	storage  ports.Storage
	resolver ports.LinkResolver
	drawings ports.DrawingProcessor

	rootPath string
	options  domain.PublishOptions
	settings domain.Settings

	state   ViewState
	preview *views.PreviewModel
	result  *views.ResultModel

	width  int
	height int
}

// NewApp creates a new TUI application. opener may be nil when Obsidian
// integration is unavailable.
func NewApp(storage ports.Storage, resolver ports.LinkResolver, drawings ports.DrawingProcessor,
	opener ports.ObsidianOpener, rootPath string, options domain.PublishOptions, settings domain.Settings) *App {
	return &App{
		storage:  storage,
		resolver: resolver,
		drawings: drawings,
		rootPath: rootPath,
		options:  options,
		settings: settings,
		state:    ViewPreview,
		preview:  views.NewPreviewModel(rootPath, settings.TargetFolder),
		result:   views.NewResultModel(rootPath, opener),
	}
}

type statsLoadedMsg struct{ stats *domain.PublishStats }
type publishDoneMsg struct{ report *commands.PublishReport }
type commandErrMsg struct{ err error }

// Init starts the dry-run scan
func (a *App) Init() tea.Cmd {
	return a.loadStats
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.preview.SetSize(msg.Width, msg.Height)
		a.result.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case statsLoadedMsg:
		a.preview.SetStats(msg.stats)
		return a, nil

	case commandErrMsg:
		a.preview.SetMessage(msg.err.Error(), true)
		return a, tea.Quit

	case views.ConfirmPublishMsg:
		a.state = ViewResult
		return a, a.runPublish

	case publishDoneMsg:
		a.result.SetReport(msg.report)
		return a, nil

	case views.CancelMsg:
		return a, tea.Quit
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewPreview:
		_, cmd = a.preview.Update(msg)
	case ViewResult:
		_, cmd = a.result.Update(msg)
	}

	return a, cmd
}

func (a *App) loadStats() tea.Msg {
	cmd := commands.NewStatsCommand(a.storage, a.resolver, a.drawings,
		a.rootPath, a.options, a.settings)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		return commandErrMsg{err: err}
	}
	return statsLoadedMsg{stats: result.Stats}
}

func (a *App) runPublish() tea.Msg {
	cmd := commands.NewPublishCommand(a.storage, a.resolver, a.drawings,
		a.rootPath, a.options, a.settings)
	report, err := cmd.Execute(context.Background())
	if err != nil {
		return commandErrMsg{err: err}
	}
	return publishDoneMsg{report: report}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewResult:
		return a.result.View()
	default:
		return a.preview.View()
	}
}
