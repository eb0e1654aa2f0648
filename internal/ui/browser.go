package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"oracle/internal/diag"
	"oracle/internal/driver"
)

// Result carries the outcome of the background resolve step into the
// browser.
type Result struct {
	Report *driver.ResolvedReport
	Err    error
}

type browserModel struct {
	title   string
	results <-chan Result

	spinner  spinner.Model
	viewport viewport.Model

	entries   []entry
	visible   []int
	cursor    int
	offset    int
	filter    string
	filtering bool
	status    string
	err       error

	width  int
	height int
	loaded bool
}

// entry is one diagnostic flattened out of the resolved report.
type entry struct {
	path string
	res  driver.Resolved
}

type resultMsg Result

// NewBrowserModel returns a Bubble Tea model that browses a resolved
// report: a list of diagnostics on the left, the explanation for the
// selected one on the right.
func NewBrowserModel(title string, results <-chan Result) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return &browserModel{
		title:    title,
		results:  results,
		spinner:  sp,
		viewport: viewport.New(40, 10),
		width:    80,
		height:   24,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForResult())
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.loaded = true
		if msg.Err != nil {
			m.err = msg.Err
			return m, tea.Quit
		}
		m.setReport(msg.Report)
		return m, nil
	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		m.viewport.Width = m.paneWidth()
		m.viewport.Height = m.bodyHeight()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filter = ""
			m.applyFilter()
		case "enter":
			m.filtering = false
		case "backspace":
			if m.filter != "" {
				runes := []rune(m.filter)
				m.filter = string(runes[:len(runes)-1])
				m.applyFilter()
			}
		default:
			if msg.Type == tea.KeyRunes {
				m.filter += string(msg.Runes)
				m.applyFilter()
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "/":
		m.filtering = true
		m.status = ""
	case "s":
		if e, ok := m.selected(); ok {
			m.status = e.res.SearchURL
		}
	}
	return m, nil
}

func (m *browserModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

	if !m.loaded {
		return fmt.Sprintf("%s %s\n", m.spinner.View(), titleStyle.Render("resolving "+m.title))
	}
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	header := fmt.Sprintf("%s (%d of %d)", m.title, len(m.visible), len(m.entries))
	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	left := m.listView()
	right := m.viewport.View()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	return b.String()
}

func (m *browserModel) listView() string {
	listWidth := m.listWidth()
	rows := m.bodyHeight()
	selStyle := lipgloss.NewStyle().Reverse(true).Width(listWidth)

	var b strings.Builder
	if len(m.visible) == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Width(listWidth).Render("no diagnostics"))
		for i := 1; i < rows; i++ {
			b.WriteString("\n")
		}
		return b.String()
	}
	end := m.offset + rows
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := m.offset; i < end; i++ {
		e := m.entries[m.visible[i]]
		text := truncate(listLine(e), listWidth)
		if i == m.cursor {
			b.WriteString(selStyle.Render(text))
		} else {
			b.WriteString(severityStyle(e.res.Diagnostic.Severity).Width(listWidth).Render(text))
		}
		if i != end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *browserModel) statusView() string {
	if m.filtering {
		return "/" + m.filter
	}
	if m.status != "" {
		return truncate(m.status, m.width)
	}
	hint := "j/k move · / filter · s search url · q quit"
	return lipgloss.NewStyle().Faint(true).Render(hint)
}

func (m *browserModel) listenForResult() tea.Cmd {
	return func() tea.Msg {
		res, ok := <-m.results
		if !ok {
			return nil
		}
		return resultMsg(res)
	}
}

func (m *browserModel) setReport(rep *driver.ResolvedReport) {
	m.entries = m.entries[:0]
	if rep != nil {
		for _, file := range rep.Files {
			for _, res := range file.Entries {
				m.entries = append(m.entries, entry{path: file.Path, res: res})
			}
		}
	}
	m.applyFilter()
}

// applyFilter rebuilds the visible index list from the filter text.
// An empty filter shows everything.
func (m *browserModel) applyFilter() {
	m.visible = m.visible[:0]
	needle := strings.ToLower(m.filter)
	for i, e := range m.entries {
		if needle == "" || strings.Contains(strings.ToLower(e.res.Diagnostic.Message), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.offset = 0
	m.refreshViewport()
}

func (m *browserModel) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	rows := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.status = ""
	m.refreshViewport()
}

func (m *browserModel) refreshViewport() {
	e, ok := m.selected()
	if !ok {
		m.viewport.SetContent("No diagnostics match the filter.")
		return
	}
	d := e.res.Diagnostic
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s:%d:%d", d.Severity, e.path, d.Range.Start.Line+1, d.Range.Start.Character+1)
	if d.Code != "" {
		fmt.Fprintf(&b, " [%s]", d.Code)
	}
	if d.Source != "" {
		fmt.Fprintf(&b, " (%s)", d.Source)
	}
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")
	b.WriteString(e.res.Explanation)
	b.WriteString("\n")
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m *browserModel) selected() (entry, bool) {
	if len(m.visible) == 0 || m.cursor < 0 || m.cursor >= len(m.visible) {
		return entry{}, false
	}
	return m.entries[m.visible[m.cursor]], true
}

func (m *browserModel) listWidth() int {
	w := m.width/2 - 1
	if w < 24 {
		w = 24
	}
	return w
}

func (m *browserModel) paneWidth() int {
	w := m.width - m.listWidth() - 1
	if w < 20 {
		w = 20
	}
	return w
}

func (m *browserModel) bodyHeight() int {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

func listLine(e entry) string {
	d := e.res.Diagnostic
	return fmt.Sprintf("%s %s:%d %s", d.Severity, e.path, d.Range.Start.Line+1, firstLine(d.Message))
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func severityStyle(sev diag.Severity) lipgloss.Style {
	switch sev {
	case diag.SevError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case diag.SevWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case diag.SevInfo:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
