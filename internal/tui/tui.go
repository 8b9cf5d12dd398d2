// Package tui implements the interactive hero-hand equity explorer.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/config"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/deck"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/equity"
)

const barWidth = 40

// Model is the Bubble Tea model for the equity explorer
type Model struct {
	handInput textinput.Model
	spinner   spinner.Model
	logger    *log.Logger
	sim       *config.SimulationSettings
	seed      int64

	hero    [2]deck.Card
	points  []equity.CurvePoint
	running bool
	errMsg  string
	width   int
}

// curveMsg delivers a finished sweep back to the update loop
type curveMsg struct {
	hero   [2]deck.Card
	points []equity.CurvePoint
	err    error
}

// New creates the explorer model
func New(sim *config.SimulationSettings, seed int64, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter hero hand (e.g. AsKd)"
	ti.Focus()
	ti.CharLimit = 5
	ti.Width = 30
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		handInput: ti,
		spinner:   sp,
		logger:    logger.WithPrefix("tui"),
		sim:       sim,
		seed:      seed,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.running {
				return m, nil
			}
			cards, err := deck.ParseCards(m.handInput.Value())
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			if len(cards) != 2 || cards[0] == cards[1] {
				m.errMsg = "hero hand must be two distinct cards"
				return m, nil
			}
			m.errMsg = ""
			m.running = true
			hero := [2]deck.Card{cards[0], cards[1]}
			return m, tea.Batch(m.spinner.Tick, m.runCurve(hero))
		}

	case curveMsg:
		m.running = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.hero = msg.hero
		m.points = msg.points
		return m, nil

	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.handInput, cmd = m.handInput.Update(msg)
	return m, cmd
}

// runCurve sweeps opponent counts for the hero hand off the update loop
func (m *Model) runCurve(hero [2]deck.Card) tea.Cmd {
	trials := m.sim.CurveTrials
	seed := m.seed
	logger := m.logger
	return func() tea.Msg {
		logger.Debug("running equity curve", "hero", fmt.Sprintf("%s %s", hero[0], hero[1]), "trials", trials)
		points, err := equity.Curve(context.Background(), hero, equity.MaxCurveOpponents, trials, seed)
		return curveMsg{hero: hero, points: points, err: err}
	}
}

// View renders the explorer
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Equity Explorer"))
	b.WriteString("\n\n")
	b.WriteString(m.handInput.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	if m.running {
		b.WriteString(m.spinner.View())
		b.WriteString(LabelStyle.Render(" simulating..."))
		b.WriteString("\n")
	}

	if len(m.points) > 0 && !m.running {
		b.WriteString("\n")
		b.WriteString(HandStyle.Render(fmt.Sprintf("%s %s vs unknown opponents", renderCard(m.hero[0]), renderCard(m.hero[1]))))
		if pct, err := deck.StartingHandPercentile(m.hero[0], m.hero[1]); err == nil {
			b.WriteString(LabelStyle.Render(fmt.Sprintf("  %s, top %.0f%% starting hand",
				deck.StartingHandKey(m.hero[0], m.hero[1]), (1-pct)*100)))
		}
		b.WriteString("\n\n")
		for _, p := range m.points {
			bar := strings.Repeat("█", int(p.EquityPct/100*barWidth))
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				LabelStyle.Render(fmt.Sprintf("%d opp", p.Opponents)),
				BarStyle.Render(fmt.Sprintf("%-*s", barWidth, bar)),
				EquityStyle.Render(fmt.Sprintf("%5.1f%%", p.EquityPct))))
		}
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: simulate • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func renderCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}
