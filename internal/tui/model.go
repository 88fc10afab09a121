// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/keydrill/internal/charset"
	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/game"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/pool"
	"github.com/verte-zerg/keydrill/internal/store"
)

// DefaultTickInterval is how often the session clock is re-evaluated.
const DefaultTickInterval = 100 * time.Millisecond

// page is one of menuPage, settingsPage or gamePage.
type page interface {
	isPage()
}

type menuPage struct{}

type settingsPage struct {
	cursor int
	draft  model.Settings
}

type gamePage struct {
	session *game.Session
	best    int
	hasBest bool
	saved   bool
	newBest bool
}

func (*menuPage) isPage()     {}
func (*settingsPage) isPage() {}
func (*gamePage) isPage()     {}

type tickMsg time.Time

type resultSavedMsg struct {
	session *game.Session
	best    int
	hasBest bool
	err     error
}

// Options configures a Model.
type Options struct {
	Settings     model.Settings
	Store        *store.Store
	Logger       *log.Logger
	Chars        pool.CharSource
	Random       pool.RandomSource
	ConfigPath   string
	TickInterval time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model implements the Bubble Tea drill UI. It is the single owner of the
// running session.
type Model struct {
	settings     model.Settings
	store        *store.Store
	logger       *log.Logger
	chars        pool.CharSource
	rnd          pool.RandomSource
	configPath   string
	tickInterval time.Duration
	now          func() time.Time

	page page
	keys keyMap
	help help.Model
	bar  progress.Model

	width  int
	height int
}

// NewModel constructs the drill UI starting at the menu.
func NewModel(opts Options) *Model {
	m := &Model{
		settings:     opts.Settings.Sanitize(),
		store:        opts.Store,
		logger:       opts.Logger,
		chars:        opts.Chars,
		rnd:          opts.Random,
		configPath:   opts.ConfigPath,
		tickInterval: opts.TickInterval,
		now:          opts.Now,
		page:         &menuPage{},
		keys:         defaultKeyMap(),
		help:         help.New(),
		bar:          progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage()),
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.chars == nil {
		m.chars = charset.Source{}
	}
	if m.rnd == nil {
		m.rnd = pool.NewRandom(0)
	}
	if m.tickInterval <= 0 {
		m.tickInterval = DefaultTickInterval
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(msg.Width/3, 10)
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.handleTick(), m.tickCmd())
	case resultSavedMsg:
		m.handleResultSaved(msg)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch p := m.page.(type) {
		case *menuPage:
			return m, m.updateMenu(msg)
		case *settingsPage:
			return m, m.updateSettings(p, msg)
		case *gamePage:
			return m, m.updateGame(p, msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	switch p := m.page.(type) {
	case *menuPage:
		return m.frame(m.viewMenu(), m.keys.menuHelp())
	case *settingsPage:
		return m.frame(m.viewSettings(p), m.keys.settingsHelp())
	case *gamePage:
		return m.frame(m.viewGame(p), m.keys.gameHelp())
	}
	return ""
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Settings):
		m.page = &settingsPage{draft: m.settings}
	case key.Matches(msg, m.keys.Begin):
		m.beginGame()
	}
	return nil
}

func (m *Model) beginGame() {
	p, err := pool.BuildOrDefault(m.chars, m.settings.Categories, m.rnd)
	if err != nil {
		m.logger.Warn("character pool degraded", "categories", m.settings.Categories.String(), "err", err)
	}
	gp := &gamePage{session: game.New(m.settings, p, m.now())}
	gp.best, gp.hasBest = m.loadBest()
	m.page = gp
}

func (m *Model) loadBest() (int, bool) {
	if m.store == nil {
		return 0, false
	}
	best, ok, err := m.store.BestScore(context.Background(), m.settings.DurationSec)
	if err != nil {
		m.logger.Error("failed to load best score", "err", err)
		return 0, false
	}
	return best, ok
}

func (m *Model) updateGame(p *gamePage, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		// Leaving discards the session.
		if p.session.Apply(game.ExitRequested{}) {
			m.page = &menuPage{}
		}
		return nil
	case key.Matches(msg, m.keys.Reset):
		p.session.Apply(game.ResetRequested{Now: m.now()})
		p.saved = false
		p.newBest = false
		return nil
	case msg.Type == tea.KeyRunes && !msg.Paste && !msg.Alt:
		// Pastes and alt chords are not key presses.
		for _, r := range msg.Runes {
			p.session.Apply(game.KeyPress{Rune: r})
		}
		return m.persistIfFinished(p)
	}
	return nil
}

func (m *Model) handleTick() tea.Cmd {
	p, ok := m.page.(*gamePage)
	if !ok {
		return nil
	}
	p.session.Apply(game.Tick{Now: m.now()})
	return m.persistIfFinished(p)
}

// persistIfFinished saves a finished session exactly once.
func (m *Model) persistIfFinished(p *gamePage) tea.Cmd {
	if p.saved || p.session.State() != game.StateFinished {
		return nil
	}
	p.saved = true
	snap := p.session.Snapshot()
	settings := p.session.Settings()
	m.logger.Info("session finished", "score", snap.Score, "reason", snap.Reason.String())
	p.newBest = snap.Score > 0 && (!p.hasBest || snap.Score > p.best)
	if m.store == nil {
		if p.newBest {
			p.best, p.hasBest = snap.Score, true
		}
		return nil
	}
	result := model.SessionResult{
		StartedAt:     p.session.StartedAt(),
		EndedAt:       m.now(),
		DurationSec:   settings.DurationSec,
		HistoryLength: settings.HistoryLength,
		FutureLength:  settings.FutureLength,
		Categories:    settings.Categories.String(),
		TenFingerHint: settings.TenFingerHint,
		Hardcore:      settings.Hardcore,
		Reason:        snap.Reason.String(),
		Score:         snap.Score,
	}
	return saveResultCmd(m.store, p.session, result)
}

func saveResultCmd(st *store.Store, session *game.Session, result model.SessionResult) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := st.InsertResult(ctx, result); err != nil {
			return resultSavedMsg{session: session, err: err}
		}
		best, ok, err := st.BestScore(ctx, result.DurationSec)
		return resultSavedMsg{session: session, best: best, hasBest: ok, err: err}
	}
}

func (m *Model) handleResultSaved(msg resultSavedMsg) {
	if msg.err != nil {
		m.logger.Error("failed to save session", "err", msg.err)
		return
	}
	p, ok := m.page.(*gamePage)
	if !ok || p.session != msg.session {
		return
	}
	p.best = msg.best
	p.hasBest = msg.hasBest
}

func (m *Model) updateSettings(p *settingsPage, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.applySettings(p.draft)
		m.page = &menuPage{}
	case key.Matches(msg, m.keys.Down):
		p.cursor = (p.cursor + 1) % len(settingItems)
	case key.Matches(msg, m.keys.Up):
		p.cursor = (p.cursor - 1 + len(settingItems)) % len(settingItems)
	case key.Matches(msg, m.keys.Increase):
		settingItems[p.cursor].edit(&p.draft, true)
	case key.Matches(msg, m.keys.Decrease):
		settingItems[p.cursor].edit(&p.draft, false)
	}
	return nil
}

func (m *Model) applySettings(s model.Settings) {
	if err := s.Validate(); err != nil {
		m.logger.Warn("invalid settings replaced with defaults", "err", err)
	}
	m.settings = s.Sanitize()
	if m.configPath == "" {
		return
	}
	if err := config.SaveSettings(m.configPath, m.settings); err != nil {
		m.logger.Error("failed to save settings", "path", m.configPath, "err", err)
	}
}

// Settings returns the settings the next session will use.
func (m *Model) Settings() model.Settings {
	return m.settings
}
