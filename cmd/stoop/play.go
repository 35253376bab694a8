package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tomaswrobel/scrap-native/pkg/driver"
	"github.com/tomaswrobel/scrap-native/pkg/errors"
	"github.com/tomaswrobel/scrap-native/pkg/rewrite"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	varStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type playView int

const (
	viewOutput playView = iota
	viewVariables
)

type playModel struct {
	tr     *driver.Transpiler
	editor textarea.Model
	output viewport.Model
	view   playView
	last   string
	failed bool
}

func newPlayModel(tr *driver.Transpiler, initial string) *playModel {
	editor := textarea.New()
	editor.Placeholder = "say(\"hello\");"
	editor.ShowLineNumbers = true
	editor.SetValue(initial)
	editor.Focus()

	m := &playModel{tr: tr, editor: editor, output: viewport.New(40, 20), last: "\x00"}
	m.refresh()
	return m
}

func (m *playModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+t":
			if m.view == viewOutput {
				m.view = viewVariables
			} else {
				m.view = viewOutput
			}
			m.last = "\x00"
			m.refresh()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		width := msg.Width/2 - 2
		height := msg.Height - 4
		m.editor.SetWidth(width)
		m.editor.SetHeight(height)
		m.output.Width = width
		m.output.Height = height
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	m.refresh()

	return m, tea.Batch(cmds...)
}

// refresh re-runs the transform when the editor text changed.
func (m *playModel) refresh() {
	code := m.editor.Value()
	if code == m.last {
		return
	}
	m.last = code

	var content string
	var err error
	switch m.view {
	case viewOutput:
		content, err = m.tr.Transform(code)
	case viewVariables:
		var vars []rewrite.Variable
		vars, err = m.tr.Variables(code)
		content = formatVariables(vars)
	}

	m.failed = err != nil
	if err != nil {
		var b strings.Builder
		if diags := driver.Diagnostics(err); len(diags) > 0 {
			errors.DisplayErrors(&b, diags, false)
		} else {
			b.WriteString(err.Error())
		}
		content = errorStyle.Render(b.String())
	}
	m.output.SetContent(content)
}

func formatVariables(vars []rewrite.Variable) string {
	if len(vars) == 0 {
		return helpStyle.Render("no interface variables")
	}
	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "%s: %s\n", v.Name, varStyle.Render(strings.Join(v.Types, " | ")))
	}
	return b.String()
}

func (m *playModel) View() string {
	title := "output"
	if m.view == viewVariables {
		title = "variables"
	}
	if m.failed {
		title += " (error)"
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.editor.View()),
		paneStyle.Render(m.output.View()),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("stoop play"))
	b.WriteString(" " + title + "\n")
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+t output/variables • pgup/pgdown scroll • esc quit"))
	return b.String()
}
