package obstacle

// Pool recycles MathObstacle objects. Every Acquire hands out a fresh ID and
// cleared one-shot states; Release drops the question binding.
type Pool struct {
	free   []*MathObstacle
	nextID ID
	allocs int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{free: make([]*MathObstacle, 0, 8)}
}

// Acquire returns a ready obstacle placed at g.
func (p *Pool) Acquire(g Geometry) *MathObstacle {
	var m *MathObstacle
	if n := len(p.free); n > 0 {
		m = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		m = &MathObstacle{}
		p.allocs++
	}

	p.nextID++
	m.Obstacle = Obstacle{id: p.nextID, geom: g, pass: PassPending}
	m.answer = AnswerPending
	return m
}

// Release returns m to the pool with its states cleared.
func (p *Pool) Release(m *MathObstacle) {
	if m == nil {
		return
	}
	m.pass = PassPending
	m.answer = AnswerPending
	m.question = nil
	m.values = [2]int{}
	p.free = append(p.free, m)
}

// Free returns how many obstacles are waiting for reuse.
func (p *Pool) Free() int {
	return len(p.free)
}

// Allocations returns how many obstacles were ever allocated.
func (p *Pool) Allocations() int {
	return p.allocs
}

// LastID returns the most recently issued ID.
func (p *Pool) LastID() ID {
	return p.nextID
}
