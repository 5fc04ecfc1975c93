package cli

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/nexport-go/internal/export"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// pageDoneMsg carries one completed page result.
type pageDoneMsg struct {
	ev export.ProgressEvent
}

// runDoneMsg signals that the whole run (including unpack) has finished.
type runDoneMsg struct {
	dir string
	err error
}

// exportModel is the bubbletea model for a running export.
type exportModel struct {
	progress progress.Model
	theme    Theme

	total     int
	done      int
	lastPage  string
	lastCount int

	dir      string
	finished bool
	quitting bool
	err      error
}

// newExportModel creates a progress model for total pages.
func newExportModel(total int) exportModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return exportModel{
		progress: prog,
		theme:    defaultTheme,
		total:    total,
	}
}

// Init returns the initial command.
func (m exportModel) Init() tea.Cmd {
	return m.progress.Init()
}

// Update handles messages and returns the updated model.
func (m exportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case pageDoneMsg:
		m.done = msg.ev.Done
		m.lastPage = msg.ev.Result.Name
		m.lastCount = msg.ev.Result.PagesExported
		return m, nil

	case runDoneMsg:
		m.finished = true
		m.dir = msg.dir
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m exportModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m exportModel) renderContent() string {
	if m.finished {
		return m.finalView()
	}

	var pct float64
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}

	status := m.theme.statusStyle().Render("[exporting]")
	progressBar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%d/%d pages", m.done, m.total)

	line := fmt.Sprintf("%s %s %s\n", status, progressBar, counts)
	if m.lastPage != "" {
		line += fmt.Sprintf("Exporting %s... %d pages already exported\n", m.lastPage, m.lastCount)
	}
	line += m.theme.hintStyle().Render("Press Ctrl+C to abort") + "\n"
	return line
}

// finalView renders the completion message.
func (m exportModel) finalView() string {
	if m.err != nil {
		return m.errorStyleRender(fmt.Sprintf("\n✗ Export failed: %s\n", m.err))
	}

	output := m.theme.completedStyle().Render("✓ Export complete") + "\n\n"
	output += fmt.Sprintf("  Pages exported: %d/%d\n", m.done, m.total)
	if failed := m.total - m.done; failed > 0 {
		output += m.errorStyleRender(fmt.Sprintf("  Pages failed:   %d (see log)\n", failed))
	}
	output += fmt.Sprintf("  Output:         %s\n", m.dir)
	return output
}

func (m exportModel) errorStyleRender(s string) string {
	return m.theme.errorStyle().Render(s)
}

// runExportWithProgress runs the export with an interactive progress bar.
// Page completions stream into the UI as they arrive; Ctrl+C cancels the run.
func runExportWithProgress(ctx context.Context, client export.Client, cfg export.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newExportModel(len(cfg.Pages))
	p := tea.NewProgram(model)

	cfg.OnProgress = func(ev export.ProgressEvent) {
		p.Send(pageDoneMsg{ev: ev})
	}

	exporter, err := export.New(client, cfg)
	if err != nil {
		return err
	}

	go func() {
		err := exporter.Process(ctx)
		p.Send(runDoneMsg{dir: exporter.Dir(), err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(exportModel); ok {
		if m.quitting {
			return fmt.Errorf("export aborted")
		}
		if m.err != nil {
			return m.err
		}
	}

	return nil
}
