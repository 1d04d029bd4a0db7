package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/winkit/event"
)

// maxLines bounds the event log kept in memory.
const maxLines = 1000

// EventMsg carries one window event into the viewer.
type EventMsg struct {
	Event event.Event
}

// WindowGoneMsg tells the viewer the window closed; it quits.
type WindowGoneMsg struct{}

// WindowInfo is the header shown above the event log.
type WindowInfo struct {
	Title    string
	Platform string
	Width    uint32
	Height   uint32
	HiDPI    float32
}

type keyMap struct {
	Quit   key.Binding
	Clear  key.Binding
	Follow key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Follow: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "follow")),
}

// Viewer is a bubbletea model listing window events as they arrive.
type Viewer struct {
	info   WindowInfo
	lines  []string
	counts map[string]int
	total  int
	follow bool
	gone   bool

	viewport viewport.Model
	width    int
	height   int
}

// NewViewer creates a viewer for the described window.
func NewViewer(info WindowInfo) Viewer {
	return Viewer{
		info:     info,
		counts:   make(map[string]int),
		follow:   true,
		viewport: viewport.New(80, 20),
	}
}

// Init implements tea.Model.
func (v Viewer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, keys.Clear):
			v.lines = nil
			v.refresh()
			return v, nil
		case key.Matches(msg, keys.Follow):
			v.follow = !v.follow
			v.refresh()
			return v, nil
		}

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.viewport.Width = msg.Width
		v.viewport.Height = v.logHeight()
		v.refresh()
		return v, nil

	case EventMsg:
		v.record(msg.Event)
		v.refresh()
		return v, nil

	case WindowGoneMsg:
		v.gone = true
		return v, tea.Quit
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	if !v.viewport.AtBottom() {
		v.follow = false
	}
	return v, cmd
}

func (v *Viewer) record(ev event.Event) {
	v.total++
	v.counts[eventKind(ev)]++
	v.lines = append(v.lines, fmt.Sprintf("%6d  %s", v.total, ev))
	if len(v.lines) > maxLines {
		v.lines = v.lines[len(v.lines)-maxLines:]
	}
}

func (v *Viewer) refresh() {
	v.viewport.SetContent(strings.Join(v.lines, "\n"))
	if v.follow {
		v.viewport.GotoBottom()
	}
}

// logHeight returns the rows left for the event log: header (2), summary (1)
// and help bar (1).
func (v Viewer) logHeight() int {
	return max(v.height-4, 1)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// View implements tea.Model.
func (v Viewer) View() string {
	header := titleStyle.Render(displayOrDefault(v.info.Title, "(untitled)")) +
		dimStyle.Render(fmt.Sprintf("  %s  %dx%d  hidpi %.2f", v.info.Platform, v.info.Width, v.info.Height, v.info.HiDPI))

	help := dimStyle.Render("q quit  c clear  f follow  ↑/↓ scroll")
	if v.follow {
		help += countStyle.Render("  following")
	}

	return strings.Join([]string{
		header,
		"",
		v.viewport.View(),
		v.summary(),
		help,
	}, "\n")
}

// summary lists per-kind event counts, most frequent first.
func (v Viewer) summary() string {
	if v.total == 0 {
		return dimStyle.Render("waiting for events...")
	}
	kinds := make([]string, 0, len(v.counts))
	for k := range v.counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if v.counts[kinds[i]] != v.counts[kinds[j]] {
			return v.counts[kinds[i]] > v.counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s %s", k, countStyle.Render(fmt.Sprint(v.counts[k]))))
	}
	return strings.Join(parts, dimStyle.Render(" · "))
}

// Total returns how many events the viewer has seen.
func (v Viewer) Total() int {
	return v.total
}

// eventKind is the type name of ev without the package prefix.
func eventKind(ev event.Event) string {
	name := fmt.Sprintf("%T", ev)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func displayOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
