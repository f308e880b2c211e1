package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hntran/tiny-drill-deck-go/internal/actor"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

var cmdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff66ff"))

type Model struct {
	system    *actor.System
	viewport  viewport.Model
	textInput textinput.Model
	history   []string
	ready     bool
}

func NewModel(system *actor.System) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter command... (/draw, /drawmany N, /state, /snapshot)"
	ti.Focus()
	ti.Width = 80

	return Model{
		system:    system,
		textInput: ti,
		history:   []string{},
	}
}

func (m Model) Init() bubbletea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	var (
		cmd  bubbletea.Cmd
		cmds []bubbletea.Cmd
	)

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	switch msg := msg.(type) {
	case bubbletea.KeyMsg:
		switch msg.Type {
		case bubbletea.KeyEnter:
			input := m.textInput.Value()
			m.textInput.Reset()

			parts := strings.Fields(input)
			if len(parts) == 0 {
				return m, nil
			}

			command := parts[0]
			args := parts[1:]

			switch command {
			case "/state":
				state := m.system.State()
				reqId := m.system.GetRequestID()

				m.appendHistory(cmdStyle.Render("/state"),
					fmt.Sprintf("LatestRequestId: %d", reqId),
					prettyState(state))
			case "/draw":
				resp := m.system.Draw()
				var output string
				if resp.Err != nil {
					output = fmt.Sprintf("[Request %d] Draw failed: %v", resp.RequestID, resp.Err)
				} else {
					output = fmt.Sprintf("[Request %d] You drew: %s", resp.RequestID, resp.Item)
				}
				m.appendHistory(cmdStyle.Render("/draw"), output)
			case "/drawmany":
				count := 1
				if len(args) > 0 {
					if n, err := strconv.Atoi(args[0]); err == nil {
						count = n
					}
				}
				resp := m.system.DrawMany(count)
				lines := []string{cmdStyle.Render(fmt.Sprintf("/drawmany %d", count))}
				for i, item := range resp.Items {
					lines = append(lines, fmt.Sprintf("  %d. %s", i+1, item))
				}
				if resp.Err != nil {
					lines = append(lines, fmt.Sprintf("Draw stopped: %v", resp.Err))
				}
				m.appendHistory(lines...)
			case "/snapshot":
				err := m.system.Snapshot()
				output := "Snapshot created."
				if err != nil {
					output = fmt.Sprintf("Snapshot failed: %v", err)
				}
				m.appendHistory(cmdStyle.Render("/snapshot"), output)
			case "/flush":
				err := m.system.Flush()
				output := "Journal flushed."
				if err != nil {
					output = fmt.Sprintf("Flush failed: %v", err)
				}
				m.appendHistory(cmdStyle.Render("/flush"), output)
			}
		case bubbletea.KeyCtrlC, bubbletea.KeyEsc:
			return m, bubbletea.Quit
		}
	case bubbletea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		viewportHeight := 10

		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
		}
		m.textInput.Width = msg.Width - 4
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, bubbletea.Batch(cmds...)
}

func (m *Model) appendHistory(lines ...string) {
	m.history = append(m.history, lines...)
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		m.headerView(),
		m.viewport.View(),
		m.footerView(),
	)
}

func (m Model) headerView() string {
	var style = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))
	return style.Render("Drill Deck TUI")
}

func (m Model) footerView() string {
	return m.textInput.View()
}

func prettyState(state types.SessionState) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Deck: %s  Mode: %s  Round: %d  Drawn: %d\n",
		state.Deck, modeName(state.Mode), state.Round, state.Drawn))
	builder.WriteString(fmt.Sprintf("Remaining (%d):\n", len(state.Remaining)))
	for _, item := range state.Remaining {
		builder.WriteString(fmt.Sprintf("  - %s\n", item))
	}
	return builder.String()
}

func modeName(mode types.DrawMode) string {
	if mode == types.ModeShrinking {
		return "shrinking"
	}
	return "refilling"
}
