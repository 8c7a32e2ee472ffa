// Package qsync keeps the displayed question bound to exactly one obstacle and
// only advances it when that obstacle has been physically resolved.
package qsync

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathflyer/internal/obstacle"
	"github.com/vovakirdan/mathflyer/internal/questions"
)

// ErrNotLocked is returned when an association is attempted without a locked question.
var ErrNotLocked = errors.New("qsync: no locked question")

// Drawer supplies questions. *questions.Pool satisfies it.
type Drawer interface {
	Draw() (questions.MathQuestion, error)
}

// Observer is notified whenever the current question changes. A nil argument
// means no question is available.
type Observer func(q *questions.MathQuestion)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for recovered draw failures.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithObserver registers the question-change observer.
func WithObserver(fn Observer) Option {
	return func(m *Manager) {
		m.observer = fn
	}
}

// Manager is the question-sync state machine:
// Uninitialized -> Locked(q) [-> associated] -> Locked(next).
type Manager struct {
	drawer   Drawer
	logger   *log.Logger
	observer Observer

	current    *questions.MathQuestion
	locked     bool
	associated obstacle.ID
	hasAssoc   bool
}

// NewManager creates an uninitialized manager.
func NewManager(d Drawer, opts ...Option) *Manager {
	m := &Manager{
		drawer: d,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetObserver replaces the observer.
func (m *Manager) SetObserver(fn Observer) {
	m.observer = fn
}

// Initialize draws the first question, locks it and notifies the observer.
// A draw failure leaves the manager without a question and is returned.
func (m *Manager) Initialize() error {
	m.clearAssociation()
	if err := m.drawAndLock(); err != nil {
		m.notify()
		return err
	}
	m.notify()
	return nil
}

// LockCurrentQuestion marks the current question as locked. It is idempotent
// and does nothing when there is no question.
func (m *Manager) LockCurrentQuestion() {
	if m.current != nil {
		m.locked = true
	}
}

// AssociateWithClosestObstacle binds the locked question to id, replacing any
// previous association.
func (m *Manager) AssociateWithClosestObstacle(id obstacle.ID) error {
	if !m.locked || m.current == nil {
		return ErrNotLocked
	}
	m.associated = id
	m.hasAssoc = true
	return nil
}

// HandleObstacleInteraction advances the question if id is the associated
// obstacle. Interactions with any other obstacle are ignored.
func (m *Manager) HandleObstacleInteraction(id obstacle.ID) bool {
	if !m.hasAssoc || m.associated != id {
		return false
	}
	m.UnlockAndAdvance()
	return true
}

// UnlockAndAdvance drops the association and locks the next question.
// Draw failures are logged and leave the manager with no question.
func (m *Manager) UnlockAndAdvance() {
	if !m.locked {
		return
	}
	m.locked = false
	m.clearAssociation()

	if err := m.drawAndLock(); err != nil {
		m.logger.Warn("question draw failed; continuing without a question", "err", err)
	}
	m.notify()
}

// Reset clears all state and notifies the observer with nil.
func (m *Manager) Reset() {
	m.current = nil
	m.locked = false
	m.clearAssociation()
	m.notify()
}

// Current returns a copy of the current question, or nil.
func (m *Manager) Current() *questions.MathQuestion {
	if m.current == nil {
		return nil
	}
	q := *m.current
	return &q
}

// IsLocked reports whether the current question is locked.
func (m *Manager) IsLocked() bool {
	return m.locked
}

// Associated returns the obstacle currently carrying the live question.
func (m *Manager) Associated() (obstacle.ID, bool) {
	return m.associated, m.hasAssoc
}

func (m *Manager) drawAndLock() error {
	m.current = nil
	m.locked = false

	if m.drawer == nil {
		return fmt.Errorf("%w: no drawer configured", questions.ErrQuestionSource)
	}
	q, err := m.drawer.Draw()
	if err != nil {
		if !errors.Is(err, questions.ErrQuestionSource) {
			err = fmt.Errorf("%w: %w", questions.ErrQuestionSource, err)
		}
		return err
	}
	m.current = &q
	m.locked = true
	return nil
}

func (m *Manager) clearAssociation() {
	m.associated = 0
	m.hasAssoc = false
}

func (m *Manager) notify() {
	if m.observer != nil {
		m.observer(m.Current())
	}
}
