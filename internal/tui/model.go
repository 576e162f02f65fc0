package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"grindstone/internal/engine"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	date     string
	missions []engine.Instance
	stats    engine.Stats

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	date     string
	missions []engine.Instance
	stats    engine.Stats
	err      error
}

type completedMsg struct {
	id  string
	res *engine.CompletionResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		date := m.svc.Today()
		missions, err := m.svc.MissionsOn(m.ctx, date)
		if err != nil {
			return loadedMsg{err: err}
		}
		stats, err := m.svc.Stats(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{date: date, missions: missions, stats: stats}
	}
}

func (m boardModel) completeCmd(id string, actualTime int) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ConfirmCompletion(m.ctx, m.date, id, actualTime)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.date = msg.date
		m.missions = msg.missions
		m.stats = msg.stats
		if m.selected >= len(m.missions) {
			m.selected = len(m.missions) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		log := fmt.Sprintf("Completed %s: +%.2f earnings", msg.res.Mission.Description, msg.res.Reward)
		if msg.res.BetWon {
			log += fmt.Sprintf(", bet paid %.2f", msg.res.BetPayout)
		}
		if msg.res.GrindBonus > 0 {
			log += fmt.Sprintf(", grind bonus +%.2f", msg.res.GrindBonus)
		}
		m.lastLog = log
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.missions)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(m.missions) {
				return m, nil
			}
			inst := m.missions[m.selected]
			if inst.Completed {
				m.lastLog = "Already done."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", inst.Description)
			return m, m.completeCmd(inst.ID, inst.EstimatedTime)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading {
		return "Grindstone — loading…"
	}
	rank, _ := engine.RankForGP(m.stats.TotalGP)
	return fmt.Sprintf("Grindstone | %s | %s | Streak %d (x%.3f) | Balance %.2f",
		m.date, rank.Name, m.stats.Streak, m.stats.StreakMultiplier, m.stats.CurrentBalance)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Categories"}
	if len(m.stats.CategoryScores) == 0 {
		lines = append(lines, "(nothing earned yet)")
	}
	for i, cs := range m.stats.CategoryScores {
		if i >= 6 {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s %.2f", cs.Category, cs.Earnings))
	}
	lines = append(lines, "")
	lines = append(lines, "Rank")
	rank, next := engine.RankForGP(m.stats.TotalGP)
	lines = append(lines, fmt.Sprintf("- %s (%.0f GP)", rank.Name, m.stats.TotalGP))
	if next != nil {
		bar := progressBar(m.stats.TotalGP-rank.GPThreshold, next.GPThreshold-rank.GPThreshold, 14)
		lines = append(lines, fmt.Sprintf("- next: %s %s", next.Name, bar))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space/enter: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Today's Missions")
	if len(m.missions) == 0 {
		out = append(out, "(no missions today)")
		return strings.Join(out, "\n")
	}
	for i, inst := range m.missions {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if inst.Completed {
			mark = "[x]"
		}
		kind := ""
		if inst.Recurring() {
			kind = "[R] "
		}
		bet := ""
		if inst.Bet.Placed {
			bet = fmt.Sprintf(" (bet %.2f x%.1f)", inst.Bet.Amount, inst.Bet.Multiplier)
		}
		out = append(out, fmt.Sprintf("%s%s %s%s — %s, %dm%s",
			cursor, mark, kind, inst.Description, inst.Difficulty, inst.EstimatedTime, bet))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value, total float64, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := int(value / total * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
