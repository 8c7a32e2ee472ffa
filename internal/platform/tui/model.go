package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathflyer/internal/config"
	"github.com/vovakirdan/mathflyer/internal/core"
	"github.com/vovakirdan/mathflyer/internal/engine"
	"github.com/vovakirdan/mathflyer/internal/questions"
)

// GameOptions configures one terminal run.
type GameOptions struct {
	Config    config.Config
	Questions []questions.MathQuestion
	Runtime   core.RuntimeConfig // Seed 0 means time-based
	Logger    *log.Logger
	Debug     bool
}

// Model is the Bubble Tea model for one player's run.
type Model struct {
	engine     *engine.Engine
	renderer   *Renderer
	particles  *Particles
	keys       *KeyMapper
	logger     *log.Logger
	config     core.RuntimeConfig
	clock      frameClock
	inputFrame core.InputFrame
	paused     bool
	quitting   bool
}

// NewModel builds the engine, the question pool and the drawing layer for a run.
func NewModel(opts GameOptions) (Model, error) {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = max(opts.Config.Quality.TargetFrameRate, 1)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	pool, err := questions.NewPool(opts.Questions, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	particles := NewParticles(cfg.Seed, opts.Config.Quality.MaxParticleCount)
	renderer := NewRenderer(cfg.ScreenW, cfg.ScreenH, particles)

	e, err := engine.New(opts.Config, pool,
		engine.WithLogger(logger),
		engine.WithSeed(cfg.Seed),
		engine.WithEffects(particles),
		engine.WithDebugAssertions(opts.Debug),
	)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	cb := engine.Callbacks{
		OnGameStart: func() {
			renderer.SetStatus("")
		},
		OnGameOver: func(s engine.GameOverSummary) {
			renderer.RecordRun(s)
			logger.Info("game over", "reason", s.Reason, "score", s.Score, "math", s.MathScore, "accuracy", s.Accuracy)
		},
		OnError: func(err error) {
			renderer.SetStatus(err.Error())
		},
	}
	if err := e.Initialize(renderer, cb); err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	return Model{
		engine:     e,
		renderer:   renderer,
		particles:  particles,
		keys:       NewKeyMapper(),
		logger:     logger,
		config:     cfg,
		clock:      newFrameClock(cfg.TickRate),
		inputFrame: core.NewInputFrame(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.renderer.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues the key's action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.engine.Destroy()
		return m, tea.Quit
	}
	return m, nil
}

// handleTick applies queued input and advances the run by the elapsed time.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	delta := m.clock.delta(t)
	m.applyInput()
	m.inputFrame.Clear()

	if !m.paused {
		m.engine.Update(delta)
		m.particles.Update(delta)
	}
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) applyInput() {
	in := m.inputFrame

	if in.Has(core.ActionRestart) {
		m.engine.Restart()
		m.particles.Clear()
		m.setPaused(false)
		return
	}

	if in.Has(core.ActionPause) && m.engine.IsPlaying() {
		m.setPaused(!m.paused)
	}

	if in.Has(core.ActionFlap) && !m.paused {
		switch m.engine.Phase() {
		case engine.PhaseReady:
			if err := m.engine.Start(); err != nil {
				m.logger.Warn("cannot start run", "err", err)
				return
			}
			m.engine.Jump()
		case engine.PhasePlaying:
			m.engine.Jump()
		}
	}
}

func (m *Model) setPaused(paused bool) {
	m.paused = paused
	m.renderer.SetPaused(paused)
	m.clock.reset()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.engine.Render()

	dir := filepath.Join(os.Getenv("HOME"), ".mathflyer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("mathflyer_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.renderer.Screen().String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.engine.Render()
	return m.renderer.String()
}

// Engine returns the engine driven by the model.
func (m Model) Engine() *engine.Engine {
	return m.engine
}

// Paused reports whether frame updates are suspended.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting reports whether the player asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a local run and blocks until it exits.
func Run(opts GameOptions) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	model.engine.Destroy()
	return err
}
