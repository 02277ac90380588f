package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/treasure-hunt/internal/engine"
	"github.com/tatianab/treasure-hunt/internal/models"
)

type sessionState int

const (
	stateAnswering sessionState = iota
	stateChoosing
	stateEnded
)

type model struct {
	state     sessionState
	engine    *engine.Engine
	session   *models.Session
	room      models.Room
	textInput textinput.Model
	viewport  viewport.Model
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	riddleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AFAFFF")).
			Italic(true)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FAF5F")).
			Bold(true)

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D75F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(eng *engine.Engine) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := model{
		engine:    eng,
		textInput: ti,
		viewport:  viewport.New(80, 20),
	}
	m.start()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			input := m.textInput.Value()
			if strings.TrimSpace(input) == "" {
				return m, nil
			}
			m.textInput.Reset()

			switch input {
			case "/quit":
				return m, tea.Quit
			case "/restart":
				m.start()
				m.refresh()
				return m, nil
			}

			if m.state == stateEnded {
				return m, nil
			}

			m.gameLog += userStyle.Width(m.logWidth()).Render("> "+input) + "\n\n"
			switch m.state {
			case stateAnswering:
				m.answer(input)
			case stateChoosing:
				m.choose(input)
			}
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		m.refresh()
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// start begins a new session and shows the first room.
func (m *model) start() {
	w := m.engine.World()
	m.session = m.engine.NewSession()
	m.gameLog = titleStyle.Render("Welcome to "+w.Title()+"!") + "\n"
	if intro := strings.TrimSpace(w.Intro()); intro != "" {
		m.gameLog += gameStyle.Width(m.logWidth()).Render(intro) + "\n"
	}
	m.gameLog += "\n"
	m.enter()
	m.refresh()
}

func (m *model) enter() {
	room, _ := m.engine.World().Room(m.session.Current())
	m.room = room

	m.gameLog += gameStyle.Bold(true).Render("📍 "+string(room.ID)) + "\n"
	m.gameLog += gameStyle.Width(m.logWidth()).Render(room.Description) + "\n\n"

	if room.Riddle != nil {
		m.gameLog += riddleStyle.Width(m.logWidth()).Render("🔍 Riddle: "+room.Riddle.Prompt) + "\n\n"
		m.state = stateAnswering
		m.textInput.Placeholder = "Your answer..."
		return
	}
	m.finish()
}

func (m *model) answer(input string) {
	switch outcome, _ := m.engine.SolveRiddle(m.session, m.room, input); outcome {
	case engine.RiddleSolved:
		m.gameLog += goodStyle.Render(fmt.Sprintf("🎉 Correct! You found the %s!", m.room.Reward)) + "\n\n"
	case engine.RiddleFailed:
		m.gameLog += badStyle.Render("❌ Wrong! No key this time. Try another room or think carefully.") + "\n\n"
	}

	if m.room.Terminal() {
		m.finish()
		return
	}

	m.gameLog += "Where to go next?\n"
	for i, next := range m.room.Next {
		m.gameLog += fmt.Sprintf("%d. %s\n", i+1, next)
	}
	m.gameLog += "\n"
	m.state = stateChoosing
	m.textInput.Placeholder = "Enter number..."
}

func (m *model) choose(input string) {
	if move, _ := m.engine.Navigate(m.session, m.room, input); move == engine.Stayed {
		m.gameLog += badStyle.Render("Invalid choice, staying here.") + "\n\n"
	}
	m.enter()
}

func (m *model) finish() {
	master := m.engine.World().MasterReward()
	m.gameLog += titleStyle.Render("🏆 You reached the "+strings.ToLower(string(m.room.ID))+"!") + "\n"
	if m.engine.Finish(m.session) == engine.Win {
		m.gameLog += goodStyle.Render(fmt.Sprintf("🎖 You unlocked the treasure with the %s! YOU WIN!", master)) + "\n"
	} else {
		m.gameLog += badStyle.Render(fmt.Sprintf("❌ You need the %s to open the treasure. Keep hunting!", master)) + "\n"
	}
	m.state = stateEnded
	m.textInput.Placeholder = "/restart or /quit"
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.75)
}

func (m model) View() string {
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)

	help := helpStyle.Render("Commands: /restart, /quit. Answer riddles, then pick a room by number.")

	s := lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+help,
	)
	return "\n" + s + "\n"
}

func (m model) renderState() string {
	if m.session == nil {
		return ""
	}

	location := titleStyle.Render("LOCATION") + "\n" + string(m.session.Current()) + "\n\n"

	goal := titleStyle.Render("GOAL") + "\n" + "Find the " + string(m.engine.World().MasterReward()) + "\n\n"

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if m.session.Inventory.Len() == 0 {
		inventory = "(empty)"
	} else {
		for _, item := range m.session.Inventory.Items() {
			inventory += "- " + string(item) + "\n"
		}
	}

	content := location + goal + invTitle + inventory

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) renderLog() string {
	return m.gameLog
}

// Run plays eng's world full-screen until the player quits.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
