package questions

import (
	"math/rand"
)

// Pool partitions a question set into available and used questions.
// Every question is dealt once before any repeats; an exhausted pool is
// reshuffled automatically on the next draw.
type Pool struct {
	all       []MathQuestion
	available []MathQuestion
	used      map[string]struct{}
	rng       *rand.Rand
	resets    int
}

// NewPool creates a pool over qs. The slice is copied.
func NewPool(qs []MathQuestion, rng *rand.Rand) (*Pool, error) {
	if len(qs) == 0 {
		return nil, ErrEmptyPool
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	p := &Pool{
		all: append([]MathQuestion(nil), qs...),
		rng: rng,
	}
	p.refill()
	return p, nil
}

// Draw picks a uniformly random available question and marks it used.
func (p *Pool) Draw() (MathQuestion, error) {
	if len(p.all) == 0 {
		return MathQuestion{}, ErrEmptyPool
	}
	if len(p.available) == 0 {
		p.Reset()
	}

	i := p.rng.Intn(len(p.available))
	q := p.available[i]
	last := len(p.available) - 1
	p.available[i] = p.available[last]
	p.available = p.available[:last]
	p.used[q.ID] = struct{}{}
	return q, nil
}

// Reset moves every question back to available and reshuffles.
func (p *Pool) Reset() {
	p.refill()
	p.resets++
}

func (p *Pool) refill() {
	p.available = append(p.available[:0], p.all...)
	p.rng.Shuffle(len(p.available), func(i, j int) {
		p.available[i], p.available[j] = p.available[j], p.available[i]
	})
	p.used = make(map[string]struct{}, len(p.all))
}

// Size returns the number of questions in the pool.
func (p *Pool) Size() int {
	return len(p.all)
}

// Available returns how many questions can be drawn before the next reset.
func (p *Pool) Available() int {
	return len(p.available)
}

// Used returns how many questions were drawn since the last reset.
func (p *Pool) Used() int {
	return len(p.used)
}

// IsUsed reports whether the question was drawn since the last reset.
func (p *Pool) IsUsed(id string) bool {
	_, ok := p.used[id]
	return ok
}

// Resets returns how many times the pool was exhausted and refilled.
func (p *Pool) Resets() int {
	return p.resets
}
