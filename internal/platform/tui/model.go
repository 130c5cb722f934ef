package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/cash-merge/internal/analytics"
	"github.com/vovakirdan/cash-merge/internal/config"
	"github.com/vovakirdan/cash-merge/internal/core"
	"github.com/vovakirdan/cash-merge/internal/games/cashmerge"
	"github.com/vovakirdan/cash-merge/internal/storage"
)

// Options configures a game model.
type Options struct {
	Rules     config.CashMergeConfig
	Runtime   core.RuntimeConfig
	Store     *storage.Store       // Optional; scores are not saved without it
	Collector *analytics.Collector // Optional
	Logger    *log.Logger          // Optional
	Player    string
}

// Model is the Bubble Tea model for a Cash Merge game.
type Model struct {
	game       *cashmerge.Game
	screen     *core.Screen
	store      *storage.Store
	collector  *analytics.Collector
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	scoreboard ScoreboardModel
	config     core.RuntimeConfig
	player     string
	sessionID  string
	showScores bool
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a model and deals the first board.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "player"
	}

	m := Model{
		game:      cashmerge.NewGame(opts.Rules),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     opts.Store,
		collector: opts.Collector,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		config:    cfg,
		player:    player,
		sessionID: uuid.NewString(),
	}
	m.help.Width = cfg.ScreenW
	m.game.Reset(m.gameConfig())
	m.layout()

	m.collector.Track(m.sessionID, analytics.KindSessionStart, map[string]any{
		"player": player,
		"seed":   cfg.Seed,
	})
	return m
}

// Game exposes the running game.
func (m Model) Game() *cashmerge.Game { return m.game }

// SessionID identifies this model in telemetry.
func (m Model) SessionID() string { return m.sessionID }

// Init starts the event clocks.
func (m Model) Init() tea.Cmd {
	return m.startClocks()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	gen := m.game.Session().Generation()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if m.showScores {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case cascadeMsg:
		if msg.gen != gen {
			return m, nil
		}
		return m.handleCascade()

	case settleMsg:
		if msg.gen != gen {
			return m, nil
		}
		m.game.Session().ClearMergeFlags()
		return m, cascadeCmd(m.rules().Pacing.ChainDelay, gen)

	case activationMsg:
		if msg.gen != gen {
			return m, nil
		}
		if m.game.ActivationTick() {
			m.collector.TrackEventStart(m.sessionID, m.game.Session().ActiveEvent())
		}
		return m, activationCmd(m.rules().Events.ActivationInterval, gen)

	case countdownMsg:
		if msg.gen != gen {
			return m, nil
		}
		m.game.CountdownTick()
		return m, countdownCmd(m.rules().Events.CountdownStep, gen)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case key.Matches(msg, m.keys.Scores):
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.showScores = true
	case key.Matches(msg, m.keys.Reset):
		return m.reset()
	case key.Matches(msg, m.keys.Up):
		m.game.MoveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.game.MoveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.game.MoveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.game.MoveCursor(0, 1)
	case key.Matches(msg, m.keys.Exchange):
		m.game.ToggleExchange()
	case key.Matches(msg, m.keys.Click):
		return m.afterClick(m.game.Click())
	}
	return m, nil
}

// handleMouse turns a left click on a cell into a cell click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showScores || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	out, ok := m.game.ClickAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	return m.afterClick(out)
}

// afterClick records the click and starts the cascade after a move.
func (m Model) afterClick(out cashmerge.Outcome) (tea.Model, tea.Cmd) {
	s := m.game.Session()
	m.collector.TrackClick(m.sessionID, out, s)

	switch out {
	case cashmerge.OutcomeMoved, cashmerge.OutcomeSwapped:
		return m, cascadeCmd(m.rules().Pacing.MoveDelay, s.Generation())
	case cashmerge.OutcomeExchanged:
		m.saveScore()
	}
	return m, nil
}

// handleCascade runs one cascade step. A merge is shown for MergeSettle
// before the next step; the turn ends when nothing merges.
func (m Model) handleCascade() (tea.Model, tea.Cmd) {
	s := m.game.Session()
	step := m.game.Step()
	m.collector.TrackStep(m.sessionID, step, s)

	if step.Merged {
		return m, settleCmd(m.rules().Pacing.MergeSettle, s.Generation())
	}
	m.saveScore()
	return m, nil
}

// reset starts a new game. Pending ticks of the old game become stale.
func (m Model) reset() (tea.Model, tea.Cmd) {
	m.game.Reset(m.gameConfig())
	m.scoreSaved = false
	m.collector.Track(m.sessionID, analytics.KindReset, nil)
	return m, m.startClocks()
}

// startClocks schedules both event clocks for the current game.
func (m Model) startClocks() tea.Cmd {
	gen := m.game.Session().Generation()
	ev := m.rules().Events
	return tea.Batch(
		activationCmd(ev.ActivationInterval, gen),
		countdownCmd(ev.CountdownStep, gen),
	)
}

// saveScore stores the final result once per game.
func (m *Model) saveScore() {
	state := m.game.State()
	if m.scoreSaved || !state.GameOver {
		return
	}
	m.scoreSaved = true
	if m.store == nil || state.Score == 0 {
		return
	}

	entry := storage.ScoreEntry{
		Player: m.player,
		Score:  state.Score,
		Merges: m.game.Session().MergeCount(),
	}
	if coupon, ok := cashmerge.CouponFor(state.Score); ok {
		entry.CouponPercent = coupon.Percent
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Warn("could not save score", "player", m.player, "error", err)
	}
}

// updateScoreboard forwards keys to the scoreboard until it is closed.
func (m Model) updateScoreboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	if m.scoreboard.Done() {
		m.showScores = false
	}
	return m, cmd
}

// handleResize processes window resize events. The game keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.layout()

	if m.showScores {
		next, _ := m.scoreboard.Update(msg)
		if sb, ok := next.(ScoreboardModel); ok {
			m.scoreboard = sb
		}
	}
	return m, nil
}

// layout gives the game everything above the help bar.
func (m *Model) layout() {
	rc := m.gameConfig()
	m.screen.Resize(rc.ScreenW, rc.ScreenH)
	m.game.Resize(rc.ScreenW, rc.ScreenH)
}

// gameConfig is the runtime config minus the help bar.
func (m Model) gameConfig() core.RuntimeConfig {
	rc := m.config
	rc.ScreenH = max(rc.ScreenH-lipgloss.Height(m.help.View(m.keys)), 0)
	return rc
}

func (m Model) rules() config.CashMergeConfig {
	return m.game.Session().Config()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".cashmerge", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts a local game.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
