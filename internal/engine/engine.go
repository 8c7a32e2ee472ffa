// Package engine owns the authoritative state of one run and advances it one
// frame at a time: physics, spawning, collision, answer resolution, question
// sync, pass scoring, culling and feedback timing, in that order.
package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathflyer/internal/collision"
	"github.com/vovakirdan/mathflyer/internal/config"
	"github.com/vovakirdan/mathflyer/internal/core"
	"github.com/vovakirdan/mathflyer/internal/obstacle"
	"github.com/vovakirdan/mathflyer/internal/physics"
	"github.com/vovakirdan/mathflyer/internal/qsync"
	"github.com/vovakirdan/mathflyer/internal/questions"
	"github.com/vovakirdan/mathflyer/internal/scoring"
)

// Crash effect parameters.
const (
	CrashColor     = "#FF8700"
	CrashParticles = 25
)

// Surface is the drawing layer the engine renders snapshots to.
type Surface interface {
	Draw(state GameState) error
}

// Engine is the game orchestrator. It is single-threaded: every method must be
// called from the goroutine that drives the frame loop.
type Engine struct {
	cfg        config.Config
	logger     *log.Logger
	seed       int64
	debug      bool
	effects    scoring.EffectSpawner
	settings   SettingsProvider
	difficulty *config.DifficultyManager

	rng      *rand.Rand
	body     *physics.Body
	detector collision.Detector
	layout   obstacle.Layout
	pool     *obstacle.Pool
	sync     *qsync.Manager
	scoring  *scoring.System
	resolver *scoring.Resolver
	sched    *Scheduler

	surface     Surface
	cb          Callbacks
	initialized bool
	destroyed   bool

	phase          Phase
	obstacles      []*obstacle.MathObstacle
	score          int
	clock          time.Duration
	elapsedMs      float64
	scrolled       float64 // World distance scrolled since the run started
	nextObstacleX  float64 // World x of the next spawn; only moves forward
	gameOverReason string

	snapshot GameState
}

// New creates an engine for cfg drawing questions from drawer.
func New(cfg config.Config, drawer qsync.Drawer, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if drawer == nil {
		return nil, fmt.Errorf("%w: no question source", ErrInitialization)
	}

	e := &Engine{
		cfg:      cfg,
		logger:   log.New(io.Discard),
		seed:     time.Now().UnixNano(),
		settings: StaticSettings(cfg.Quality),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.rng = rand.New(rand.NewSource(e.seed))
	e.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	e.body = physics.NewBody(cfg.Body, cfg.Physics)
	e.detector = collision.NewDetector(cfg.Playfield.GroundY(), cfg.Playfield.CeilingY, cfg.Obstacles.CollisionPadding)
	e.layout = obstacle.Layout{
		Width:        cfg.Obstacles.Width,
		CeilingY:     cfg.Playfield.CeilingY,
		GroundY:      cfg.Playfield.GroundY(),
		TopMargin:    cfg.Obstacles.TopMargin,
		BottomMargin: cfg.Obstacles.BottomMargin,
	}
	e.pool = obstacle.NewPool()
	e.sched = NewScheduler()
	e.sync = qsync.NewManager(drawer, qsync.WithLogger(e.logger), qsync.WithObserver(e.onQuestionChanged))
	e.scoring = scoring.NewSystem()
	e.resolver = scoring.NewResolver(e.scoring,
		scoring.WithEffects(effectGate{target: e.effects, settings: e.settings}),
		scoring.WithScheduler(e.sched),
		scoring.WithClock(func() time.Duration { return e.clock }),
	)

	e.resetRun()
	return e, nil
}

// Initialize attaches the drawing surface and callbacks and shows the first
// question. A nil surface fails with ErrInitialization, also reported via OnError.
func (e *Engine) Initialize(surface Surface, cb Callbacks) error {
	e.cb = cb
	if surface == nil {
		err := fmt.Errorf("%w: no rendering surface", ErrInitialization)
		e.logger.Error("initialize failed", "err", err)
		e.cb.error(err)
		return err
	}
	if e.destroyed {
		err := fmt.Errorf("%w: engine destroyed", ErrInitialization)
		e.cb.error(err)
		return err
	}

	e.surface = surface
	e.initialized = true
	e.resetRun()
	e.drawFirstQuestion()
	e.refreshSnapshot()
	return nil
}

// Start moves a Ready run to Playing.
func (e *Engine) Start() error {
	if !e.initialized || e.destroyed {
		return fmt.Errorf("%w: engine not initialized", ErrInitialization)
	}
	if e.phase != PhaseReady {
		return fmt.Errorf("%w: phase is %s", ErrNotReady, e.phase)
	}

	e.phase = PhasePlaying
	e.logger.Debug("run started", "question", e.sync.Current())
	e.refreshSnapshot()
	e.cb.gameStart()
	return nil
}

// Restart abandons the current run and returns to Ready with a fresh question.
func (e *Engine) Restart() {
	if !e.initialized || e.destroyed {
		return
	}
	e.resetRun()
	e.drawFirstQuestion()
	e.refreshSnapshot()
	e.cb.scoreUpdate(0)
	e.cb.mathScoreUpdate(0, 0)
}

// Destroy stops the engine. Pending callbacks are cancelled and further
// updates are ignored.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.sched.CancelAll()
	e.surface = nil
}

// Jump applies the jump impulse. It is ignored outside Playing.
func (e *Engine) Jump() {
	if e.phase != PhasePlaying || e.destroyed {
		return
	}
	e.body.ApplyJumpImpulse()
}

// Update advances the run by deltaMs of simulated time. Non-positive deltas are
// ignored and long frames are clamped. A panic inside the frame is recovered,
// reported via OnError, and the previous snapshot stays visible.
func (e *Engine) Update(deltaMs float64) {
	if e.phase != PhasePlaying || e.destroyed || deltaMs <= 0 {
		return
	}
	deltaMs = min(deltaMs, e.cfg.Playfield.MaxFrameDeltaMs)

	if e.guard("update", func() { e.step(deltaMs) }) {
		e.refreshSnapshot()
	}
}

// Render hands the last good snapshot to the drawing surface.
func (e *Engine) Render() {
	if e.surface == nil || e.destroyed {
		return
	}
	e.guard("render", func() {
		if err := e.surface.Draw(e.snapshot.clone()); err != nil {
			e.logger.Error("render failed", "err", err)
			e.cb.error(fmt.Errorf("engine: render: %w", err))
		}
	})
}

// GameState returns a read-only copy of the last good snapshot.
func (e *Engine) GameState() GameState {
	return e.snapshot.clone()
}

// CurrentQuestion returns the locked question, or nil.
func (e *Engine) CurrentQuestion() *questions.MathQuestion {
	return e.sync.Current()
}

// Obstacles returns views of the live obstacles, left to right.
func (e *Engine) Obstacles() []ObstacleView {
	views := make([]ObstacleView, len(e.obstacles))
	for i, m := range e.obstacles {
		views[i] = viewOf(m)
	}
	return views
}

// ForceObstacleGeneration spawns an obstacle at the right edge immediately,
// bypassing the spacing marker. The marker is pushed past the new obstacle.
func (e *Engine) ForceObstacleGeneration() {
	if e.destroyed {
		return
	}
	ok := e.guard("spawn", func() {
		width := e.cfg.Playfield.Width
		e.spawnObstacle(width)
		e.nextObstacleX = max(e.nextObstacleX, e.scrolled+width) + e.nextSpacing()
	})
	if ok {
		e.refreshSnapshot()
	}
}

// IsPlaying reports whether the run is in the Playing phase.
func (e *Engine) IsPlaying() bool {
	return e.phase == PhasePlaying && !e.destroyed
}

// Phase returns the current run phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Summary returns the end-of-run statistics for the current state.
func (e *Engine) Summary() GameOverSummary {
	st := e.scoring.State()
	return GameOverSummary{
		Score:          e.score,
		MathScore:      st.Points,
		Streak:         st.Streak,
		HighestStreak:  st.HighestStreak,
		TotalCorrect:   st.TotalCorrect,
		TotalIncorrect: st.TotalIncorrect,
		Accuracy:       st.Accuracy(),
		Reason:         e.gameOverReason,
	}
}

func (e *Engine) step(deltaMs float64) {
	f := deltaMs / e.cfg.Physics.FrameReferenceMs
	e.clock += time.Duration(deltaMs * float64(time.Millisecond))
	e.elapsedMs += deltaMs

	// 1. physics
	e.body.Integrate(deltaMs)

	// 2-3. spawn once the right edge of the playfield reaches the marker
	width := e.cfg.Playfield.Width
	if e.scrolled+width >= e.nextObstacleX {
		e.spawnObstacle(e.nextObstacleX - e.scrolled)
		e.nextObstacleX += e.nextSpacing()
	}

	// 4. scroll
	speed := e.difficulty.Speed(e.cfg.Obstacles.BaseSpeed, e.score, e.elapsedMs)
	dx := speed * f
	for _, m := range e.obstacles {
		m.Advance(dx)
	}
	e.scrolled += dx

	// 5. collision
	bounds := e.body.Bounds()
	groups := make([][]core.Rect, len(e.obstacles))
	for i, m := range e.obstacles {
		groups[i] = m.Rects()
	}
	if res := e.detector.EvaluateAll(bounds, groups); res.Hit() {
		e.endRun(res.Cause)
		return
	}

	// 6. answer selection, at most once per obstacle
	for _, m := range e.obstacles {
		if m.Answered() {
			continue
		}
		zone, ok := m.CheckAnswerSelection(bounds)
		if !ok {
			continue
		}
		m.MarkAnswered()
		e.resolveAnswer(m, zone)
	}
	e.associateClosest()

	// 7. pass scoring
	for _, m := range e.obstacles {
		if m.CheckPassed(e.body.LeadingX()) {
			e.score++
			e.cb.scoreUpdate(e.score)
		}
	}

	// 8. cull
	live := e.obstacles[:0]
	for _, m := range e.obstacles {
		if m.Offscreen() {
			e.pool.Release(m)
			continue
		}
		live = append(live, m)
	}
	clear(e.obstacles[len(live):])
	e.obstacles = live

	// 9. feedback timing and delayed effects
	e.resolver.UpdateFeedback(e.clock)
	e.sched.Advance(e.clock)
}

func (e *Engine) spawnObstacle(x float64) {
	if e.sync.Current() == nil {
		if err := e.sync.Initialize(); err != nil {
			e.logger.Warn("question source unavailable; spawning without a question", "err", err)
		}
	}

	o := e.cfg.Obstacles
	gap := e.difficulty.GapHeight(o.GapHeight, o.MinGapHeight, e.score, e.elapsedMs)
	gap = e.checkGap(gap)

	m := e.pool.Acquire(e.layout.Place(e.rng, x, gap))
	nav := m.NavigableArea()
	e.checkNavigable(nav.H, nav.W)

	m.Bind(e.sync.Current(), e.rng)
	e.obstacles = append(e.obstacles, m)
	e.associateClosest()
}

// nextSpacing draws a spacing from [base*(1-jitter), base*(1+jitter)].
func (e *Engine) nextSpacing() float64 {
	o := e.cfg.Obstacles
	lo := o.BaseSpacing * (1 - o.SpacingJitter)
	hi := o.BaseSpacing * (1 + o.SpacingJitter)
	return e.checkSpacing(lo + (hi-lo)*e.rng.Float64())
}

// closestUnanswered returns the nearest obstacle the body has yet to resolve.
func (e *Engine) closestUnanswered() *obstacle.MathObstacle {
	var best *obstacle.MathObstacle
	for _, m := range e.obstacles {
		if m.Answered() || m.Passed() {
			continue
		}
		if best == nil || m.X() < best.X() {
			best = m
		}
	}
	return best
}

// associateClosest pairs the locked question with the closest unresolved
// obstacle, rebinding that obstacle if it was spawned with an older question.
func (e *Engine) associateClosest() {
	q := e.sync.Current()
	if q == nil || !e.sync.IsLocked() {
		return
	}
	target := e.closestUnanswered()
	if target == nil {
		return
	}
	if target.QuestionID() != q.ID {
		e.logger.Debug("rebinding obstacle", "obstacle", target.ID(), "from", target.QuestionID(), "to", q.ID)
		target.Bind(q, e.rng)
	}
	if id, ok := e.sync.Associated(); ok && id == target.ID() {
		return
	}
	if err := e.sync.AssociateWithClosestObstacle(target.ID()); err != nil {
		e.logger.Warn("cannot associate obstacle", "obstacle", target.ID(), "err", err)
	}
}

func (e *Engine) resolveAnswer(m *obstacle.MathObstacle, zone obstacle.AnswerZone) {
	c := e.body.Bounds().Center()
	if zone.IsCorrect {
		e.resolver.ValidateCorrectAnswer(c.X, c.Y)
	} else {
		var answer *int
		if q := m.Question(); q != nil {
			answer = &q.CorrectAnswer
		}
		e.resolver.HandleIncorrectAnswer(c.X, c.Y, answer)
	}

	if !e.sync.HandleObstacleInteraction(m.ID()) {
		e.logger.Debug("answer on obstacle without the live question", "obstacle", m.ID())
	}

	st := e.scoring.State()
	e.cb.mathScoreUpdate(st.Points, st.Streak)
}

func (e *Engine) endRun(cause collision.Cause) {
	groundY := e.cfg.Playfield.GroundY()
	switch cause {
	case collision.CauseGround:
		e.body.Position.Y = groundY - e.body.Height
	case collision.CauseCeiling:
		e.body.Position.Y = e.cfg.Playfield.CeilingY
	}
	e.body.VelocityY = 0

	e.phase = PhaseGameOver
	e.gameOverReason = cause.String()

	c := e.body.Bounds().Center()
	effectGate{target: e.effects, settings: e.settings}.SpawnEffect(c.X, c.Y, CrashColor, CrashParticles)

	summary := e.Summary()
	e.logger.Debug("game over", "reason", summary.Reason, "score", summary.Score, "math", summary.MathScore)
	e.cb.gameOver(summary)
}

// resetRun puts every component back to the Ready state without drawing a question.
func (e *Engine) resetRun() {
	e.sched.Reset()
	for _, m := range e.obstacles {
		e.pool.Release(m)
	}
	e.obstacles = e.obstacles[:0]
	e.body.Reset()
	e.scoring.Reset()
	e.resolver.Reset()
	e.sync.Reset()

	e.phase = PhaseReady
	e.score = 0
	e.clock = 0
	e.elapsedMs = 0
	e.scrolled = 0
	e.nextObstacleX = e.cfg.Playfield.Width + e.cfg.Obstacles.FirstOffset
	e.gameOverReason = ""
	e.refreshSnapshot()
}

func (e *Engine) drawFirstQuestion() {
	if err := e.sync.Initialize(); err != nil {
		e.logger.Warn("no first question", "err", err)
	}
}

func (e *Engine) onQuestionChanged(q *questions.MathQuestion) {
	e.cb.questionUpdate(q)
}

// guard runs fn and converts a panic into an OnError report.
func (e *Engine) guard(stage string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err, isErr := r.(error)
			if !isErr {
				err = fmt.Errorf("%v", r)
			}
			err = fmt.Errorf("engine: %s: %w", stage, err)
			e.logger.Error("recovered frame fault", "stage", stage, "err", err)
			e.cb.error(err)
			ok = false
		}
	}()
	fn()
	return true
}

func (e *Engine) refreshSnapshot() {
	b := e.body.Bounds()
	e.snapshot = GameState{
		Phase:          e.phase,
		Playfield:      e.cfg.Playfield,
		Body:           BodyView{Bounds: b, VelocityY: e.body.VelocityY},
		Obstacles:      e.Obstacles(),
		Score:          e.score,
		Math:           e.scoring.State(),
		Question:       e.sync.Current(),
		Feedback:       e.resolver.Active(),
		GameOverReason: e.gameOverReason,
		Elapsed:        e.clock,
		NextObstacleX:  e.nextObstacleX,
		Scrolled:       e.scrolled,
	}
}
