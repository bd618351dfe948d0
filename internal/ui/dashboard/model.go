package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cafetalk/internal/modules/progress/dto"
	"cafetalk/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type progressPort interface {
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Badges(ctx context.Context, earnedOnly bool) ([]dto.BadgeOutput, error)
	Achievements(ctx context.Context) ([]dto.AchievementOutput, error)
	History(ctx context.Context, scenario, language string, limit int) ([]dto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// EventMsg carries a hub event into the program. Send it with tea.Program.Send.
type EventMsg struct {
	Event dto.ProgressEvent
}

type loadedMsg struct {
	stats        dto.StatsOutput
	badges       []dto.BadgeOutput
	achievements []dto.AchievementOutput
	recent       []dto.SessionOutput
	err          error
}

type clearBannerMsg struct{ seq int }

const (
	recentLimit = 5
	bannerTTL   = 4 * time.Second
)

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Refresh}, {k.Help, k.Quit}}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders level, XP progress, streak, favourites and badges. It
// re-reads through the port whenever a progress event arrives.
type Model struct {
	port progressPort

	keys     keyMap
	help     help.Model
	bar      progress.Model
	showHelp bool

	stats        dto.StatsOutput
	badges       []dto.BadgeOutput
	achievements []dto.AchievementOutput
	recent       []dto.SessionOutput
	loaded       bool

	banner    string
	bannerSeq int
	err       error
	width     int
}

func New(port progressPort) Model {
	return Model{
		port: port,
		keys: defaultKeys(),
		help: help.New(),
		bar:  progress.New(progress.WithGradient(string(theme.Cinnamon), string(theme.Caramel))),
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		msg := loadedMsg{}
		if msg.stats, msg.err = port.Stats(ctx); msg.err != nil {
			return msg
		}
		if msg.badges, msg.err = port.Badges(ctx, false); msg.err != nil {
			return msg
		}
		if msg.achievements, msg.err = port.Achievements(ctx); msg.err != nil {
			return msg
		}
		msg.recent, msg.err = port.History(ctx, "", "", recentLimit)
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(60, msg.Width-20))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.stats = msg.stats
		m.badges = msg.badges
		m.achievements = msg.achievements
		m.recent = msg.recent
		return m, m.bar.SetPercent(m.stats.LevelProgress)

	case EventMsg:
		switch msg.Event.Kind {
		case dto.EventLevelUp:
			m.bannerSeq++
			seq := m.bannerSeq
			m.banner = fmt.Sprintf("LEVEL UP!  %d → %d  (%d XP)", msg.Event.LevelUp.OldLevel, msg.Event.LevelUp.NewLevel, msg.Event.LevelUp.TotalXP)
			return m, tea.Tick(bannerTTL, func(time.Time) tea.Msg { return clearBannerMsg{seq: seq} })
		default:
			m.stats = msg.Event.Stats
			return m, tea.Batch(m.bar.SetPercent(m.stats.LevelProgress), m.load())
		}

	case clearBannerMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
		}
		return m, nil

	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		if bar, ok := updated.(progress.Model); ok {
			m.bar = bar
		}
		return m, cmd
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sections []string
	sections = append(sections, theme.Title.Render("☕ Café Talk progress"))
	if m.banner != "" {
		sections = append(sections, theme.Banner.Render(m.banner))
	}
	if m.err != nil {
		sections = append(sections, theme.Warn.Render("error: "+m.err.Error()))
	}
	if !m.loaded {
		sections = append(sections, theme.Muted.Render("brewing…"))
		return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	sections = append(sections,
		m.levelPane(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.streakPane(), m.favoritesPane()),
		m.badgePane(),
		m.recentPane(),
	)
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) levelPane() string {
	s := m.stats
	lines := []string{
		theme.Hot.Render(fmt.Sprintf("Level %d", s.Level)) + theme.Muted.Render(fmt.Sprintf("  %d XP", s.TotalXP)),
		m.bar.View(),
		theme.Muted.Render(fmt.Sprintf("%d XP to level %d", s.XPToNextLevel, s.Level+1)),
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) streakPane() string {
	st := m.stats.Streak
	status := theme.Good.Render("practised today")
	switch {
	case st.AtRisk:
		status = theme.Warn.Render("practise today to keep it!")
	case !st.PracticedToday:
		status = theme.Muted.Render("no session today")
	}
	lines := []string{
		theme.Title.Render("Streak"),
		fmt.Sprintf("🔥 %d day(s)   best %d", st.Current, st.Longest),
		status,
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) favoritesPane() string {
	s := m.stats
	lines := []string{
		theme.Title.Render("Favourites"),
		"Language: " + s.FavoriteLanguage,
		"Scenario: " + s.FavoriteScenario,
		theme.Muted.Render(fmt.Sprintf("%d conversations · %d days active · ~%d words", s.ConversationsCompleted, s.DaysActive, s.WordsSpoken)),
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) badgePane() string {
	var cells []string
	for _, b := range m.badges {
		if b.Earned {
			cells = append(cells, b.Icon+" "+b.Name)
		} else {
			cells = append(cells, theme.Locked.Render("· "+b.Name))
		}
	}
	earnedAchievements := 0
	for _, a := range m.achievements {
		if a.Earned {
			earnedAchievements++
		}
	}
	header := theme.Title.Render(fmt.Sprintf("Badges %d/%d", m.stats.BadgesEarned, m.stats.BadgesTotal)) +
		theme.Muted.Render(fmt.Sprintf("   achievements %d/%d", earnedAchievements, len(m.achievements)))
	return theme.Pane.Render(header + "\n" + grid(cells, 3))
}

func (m Model) recentPane() string {
	lines := []string{theme.Title.Render("Recent sessions")}
	if len(m.recent) == 0 {
		lines = append(lines, theme.Muted.Render("none yet"))
	}
	for _, s := range m.recent {
		score := s.GrammarScore
		if score == "" {
			score = "-"
		}
		lines = append(lines, fmt.Sprintf("%s  %-15s %-3s %2d exchanges  %-10s +%d XP",
			s.Timestamp.Format("Jan 02 15:04"), s.ScenarioName, s.Language, s.Exchanges, score, s.XP))
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func grid(cells []string, cols int) string {
	var rows []string
	for i := 0; i < len(cells); i += cols {
		end := min(i+cols, len(cells))
		row := make([]string, 0, cols)
		for _, c := range cells[i:end] {
			row = append(row, lipgloss.NewStyle().Width(24).Render(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}
