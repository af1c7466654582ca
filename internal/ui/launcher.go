package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/fade/internal/async"
	"github.com/Aman-CERP/fade/internal/catalog"
	"github.com/Aman-CERP/fade/internal/launcher"
)

// DefaultDebounce is the pause after the last keystroke before the query runs.
const DefaultDebounce = 150 * time.Millisecond

// statusInterval is how often scan progress is polled.
const statusInterval = 200 * time.Millisecond

// Searcher is the part of the search engine the launcher drives.
type Searcher interface {
	Search(query string, limit int) []catalog.Candidate
	RecordLaunch(c catalog.Candidate)
	Rescan(ctx context.Context) bool
	Status() async.Snapshot
}

// Options configures the launcher.
type Options struct {
	Searcher   Searcher
	Dispatcher launcher.Dispatcher
	Limit      int
	Debounce   time.Duration
	NoColor    bool
	Input      io.Reader
	Output     io.Writer
}

// Message types for bubbletea.
type (
	debounceMsg struct{ seq int }
	statusTickMsg time.Time
	launchResultMsg struct {
		candidate catalog.Candidate
		err       error
	}
)

// Model is the bubbletea model for the interactive launcher.
type Model struct {
	ctx        context.Context
	searcher   Searcher
	dispatcher launcher.Dispatcher
	limit      int
	debounce   time.Duration

	input   textinput.Model
	spinner spinner.Model
	styles  Styles

	results  []catalog.Candidate
	cursor   int
	seq      int
	shownGen uint64
	status   async.Snapshot

	notice    string
	noticeErr bool
	launching bool
	launched  *catalog.Candidate
	quitting  bool
	width     int
}

// NewModel creates a launcher model showing the current recent list.
func NewModel(ctx context.Context, opts Options) *Model {
	in := textinput.New()
	in.Placeholder = "Type to search applications"
	in.Prompt = "› "
	in.CharLimit = 256
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime))

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	styles := GetStyles(opts.NoColor || DetectNoColor())
	if opts.NoColor {
		s.Style = lipgloss.NewStyle()
	}

	m := &Model{
		ctx:        ctx,
		searcher:   opts.Searcher,
		dispatcher: opts.Dispatcher,
		limit:      opts.Limit,
		debounce:   debounce,
		input:      in,
		spinner:    s,
		styles:     styles,
		width:      80,
	}
	m.status = m.searcher.Status()
	m.refresh()
	return m
}

// Run starts the launcher full-screen and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(ctx, opts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("launcher UI failed: %w", err)
	}

	if m, ok := final.(*Model); ok && m.launched != nil && opts.Output != nil {
		_, _ = fmt.Fprintf(opts.Output, "Launched %s\n", m.launched.DisplayName)
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, statusTick())
}

func statusTick() tea.Cmd {
	return tea.Tick(statusInterval, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-8, 20)
		return m, nil

	case debounceMsg:
		// Only the last keystroke in a burst runs the query.
		if msg.seq == m.seq {
			m.refresh()
		}
		return m, nil

	case statusTickMsg:
		m.status = m.searcher.Status()
		if m.status.Generation != m.shownGen {
			m.refresh()
		}
		return m, statusTick()

	case launchResultMsg:
		m.launching = false
		if msg.err != nil {
			m.setNotice(launchNotice(msg.err), true)
			return m, nil
		}
		c := msg.candidate
		m.launched = &c
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.input.Value() == "" {
			m.quitting = true
			return m, tea.Quit
		}
		m.input.SetValue("")
		m.seq++
		m.refresh()
		return m, nil

	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m, m.launchSelected()

	case "ctrl+r":
		if m.searcher.Rescan(m.ctx) {
			m.setNotice("Rescanning…", false)
		} else {
			m.setNotice("A scan is already running", false)
		}
		m.status = m.searcher.Status()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.seq++
	seq := m.seq
	debounce := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

// launchSelected dispatches the highlighted candidate off the UI goroutine.
func (m *Model) launchSelected() tea.Cmd {
	if m.launching || len(m.results) == 0 {
		return nil
	}

	c := m.results[m.cursor]
	m.launching = true
	m.setNotice("Starting "+c.DisplayName+"…", false)

	ctx, d, rec := m.ctx, m.dispatcher, m.searcher
	return func() tea.Msg {
		err := launcher.LaunchAndRecord(ctx, d, rec, c)
		return launchResultMsg{candidate: c, err: err}
	}
}

// refresh reruns the current query against the committed index.
func (m *Model) refresh() {
	m.results = m.searcher.Search(m.input.Value(), m.limit)
	m.shownGen = m.status.Generation
	if m.cursor >= len(m.results) {
		m.cursor = max(len(m.results)-1, 0)
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func launchNotice(err error) string {
	var le *launcher.LaunchError
	if errors.As(err, &le) {
		return fmt.Sprintf("Could not launch %s: %v", le.Path, errors.Unwrap(le))
	}
	return "Could not launch: " + err.Error()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("fade"))
	sb.WriteString("  ")
	sb.WriteString(m.renderStatus())
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.renderResults())

	if m.notice != "" {
		sb.WriteString("\n")
		style := m.styles.Warning
		if m.noticeErr {
			style = m.styles.Error
		}
		sb.WriteString(style.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("↑/↓ select • enter launch • ctrl+r rescan • esc clear/quit"))

	return m.styles.Panel.Width(max(m.width-2, 40)).Render(sb.String())
}

func (m *Model) renderStatus() string {
	s := m.status
	switch {
	case s.Scanning():
		return m.spinner.View() + m.styles.Status.Render(fmt.Sprintf(" scanning %d/%d folders", s.RootsDone, s.RootsTotal))
	case s.Status == string(async.StatusError):
		return m.styles.Warning.Render("scan failed: " + s.ErrorMessage)
	case s.Status == string(async.StatusReady):
		return m.styles.Status.Render(fmt.Sprintf("%d apps", s.Candidates))
	default:
		return ""
	}
}

func (m *Model) renderResults() string {
	if len(m.results) == 0 {
		if m.input.Value() == "" {
			return m.styles.Status.Render("Nothing indexed yet.") + "\n"
		}
		return m.styles.Status.Render("No matches.") + "\n"
	}

	var sb strings.Builder
	for i, c := range m.results {
		marker := "  "
		name := m.styles.Name.Render(c.DisplayName)
		if i == m.cursor {
			marker = m.styles.Selected.Render("▸ ")
			name = m.styles.Selected.Render(c.DisplayName)
		}

		detail := c.Path
		if c.Description != "" {
			detail = c.Description + " · " + c.Path
		}

		sb.WriteString(marker)
		sb.WriteString(name)
		sb.WriteString("  ")
		sb.WriteString(m.styles.Detail.Render(detail))
		sb.WriteString("\n")
	}
	return sb.String()
}
