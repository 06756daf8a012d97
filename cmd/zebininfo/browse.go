package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/wippyai/zebin/dump"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newBrowseCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse FILE",
		Short: "Browse the kernels of a zebin interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.New("browse needs an interactive terminal")
			}
			opts, _, err := g.settings()
			if err != nil {
				return err
			}
			doc, err := decodeFile(args[0], opts)
			if err != nil {
				return err
			}
			p := tea.NewProgram(newBrowseModel(doc), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

type browseState int

const (
	stateList browseState = iota
	stateFilter
	stateDetail
)

type browseModel struct {
	doc      *dump.Document
	styles   dump.Styles
	filter   textinput.Model
	detail   viewport.Model
	visible  []int // indexes into doc.Kernels
	selected int
	state    browseState
	width    int
	height   int
}

func newBrowseModel(doc *dump.Document) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "kernel name"
	ti.Prompt = "/ "
	ti.Width = 40

	m := &browseModel{
		doc:    doc,
		styles: dump.NewStyles(lipgloss.DefaultRenderer()),
		filter: ti,
		detail: viewport.New(80, 20),
	}
	m.applyFilter()
	return m
}

// applyFilter ranks kernels by fuzzy distance to the filter text. An empty
// filter keeps file order.
func (m *browseModel) applyFilter() {
	m.visible = m.visible[:0]
	query := m.filter.Value()
	if query == "" {
		for i := range m.doc.Kernels {
			m.visible = append(m.visible, i)
		}
	} else {
		names := make([]string, len(m.doc.Kernels))
		for i, k := range m.doc.Kernels {
			names[i] = k.Name
		}
		ranks := fuzzy.RankFindFold(query, names)
		sort.Stable(ranks)
		for _, r := range ranks {
			m.visible = append(m.visible, r.OriginalIndex)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browseModel) current() (dump.Kernel, bool) {
	if m.selected >= len(m.visible) {
		return dump.Kernel{}, false
	}
	return m.doc.Kernels[m.visible[m.selected]], true
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-4, 1)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateFilter:
			return m.updateFilter(msg)
		case stateDetail:
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	case "/":
		m.state = stateFilter
		return m, m.filter.Focus()
	case "enter":
		if k, ok := m.current(); ok {
			doc := &dump.Document{Outcome: m.doc.Outcome, Kernels: []dump.Kernel{k}}
			m.detail.SetContent(dump.RenderText(doc, m.styles))
			m.detail.GotoTop()
			m.state = stateDetail
		}
	}
	return m, nil
}

func (m *browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filter.Blur()
		m.state = stateList
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "enter":
		m.state = stateList
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("zebininfo"))
	b.WriteString(" ")
	b.WriteString(m.doc.Source)
	b.WriteString(" ")
	b.WriteString(m.doc.Outcome)
	b.WriteString("\n\n")

	if m.doc.Error != "" {
		b.WriteString(errorStyle.Render(m.doc.Error))
		b.WriteString("\n\n")
	}

	switch m.state {
	case stateDetail:
		b.WriteString(m.detail.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
		return b.String()
	case stateFilter:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString("No kernels.\n")
	}
	for i, idx := range m.visible {
		k := m.doc.Kernels[idx]
		line := fmt.Sprintf("%s  simd %d  args %d", k.Name, k.SimdSize, len(k.Args))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • / filter • enter details • q quit"))
	return b.String()
}
