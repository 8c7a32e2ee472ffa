package questions

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestPool(t *testing.T, seed int64) *Pool {
	t.Helper()
	qs, err := EmbeddedSource{}.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	p, err := NewPool(qs, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewPool() failed: %v", err)
	}
	return p
}

func TestPoolDealsEveryQuestionOnce(t *testing.T) {
	p := newTestPool(t, 7)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		q, err := p.Draw()
		if err != nil {
			t.Fatalf("Draw() #%d failed: %v", i+1, err)
		}
		if seen[q.ID] {
			t.Fatalf("Draw() #%d repeated %s", i+1, q.ID)
		}
		seen[q.ID] = true

		if p.Available()+p.Used() != 200 {
			t.Fatalf("partition broken after %d draws: available=%d used=%d", i+1, p.Available(), p.Used())
		}
	}

	if len(seen) != 200 {
		t.Errorf("drew %d distinct ids, expected 200", len(seen))
	}
	if p.Available() != 0 || p.Resets() != 0 {
		t.Errorf("after 200 draws: available=%d resets=%d", p.Available(), p.Resets())
	}

	q, err := p.Draw()
	if err != nil {
		t.Fatalf("201st Draw() failed: %v", err)
	}
	if p.Resets() != 1 {
		t.Errorf("201st draw should reset the pool, resets=%d", p.Resets())
	}
	if p.Available() != 199 || p.Used() != 1 || !p.IsUsed(q.ID) {
		t.Errorf("after reset draw: available=%d used=%d", p.Available(), p.Used())
	}
}

func TestPoolDeterministicForSeed(t *testing.T) {
	a := newTestPool(t, 99)
	b := newTestPool(t, 99)
	for i := 0; i < 50; i++ {
		qa, _ := a.Draw()
		qb, _ := b.Draw()
		if qa.ID != qb.ID {
			t.Fatalf("draw %d differs: %s vs %s", i, qa.ID, qb.ID)
		}
	}
}

func TestPoolManualReset(t *testing.T) {
	p := newTestPool(t, 3)
	for i := 0; i < 10; i++ {
		p.Draw()
	}
	p.Reset()
	if p.Available() != 200 || p.Used() != 0 {
		t.Errorf("Reset() left available=%d used=%d", p.Available(), p.Used())
	}
}

func TestNewPoolEmpty(t *testing.T) {
	if _, err := NewPool(nil, nil); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("NewPool(nil) = %v, expected ErrEmptyPool", err)
	}
}

func TestPoolSingleQuestionRepeatsAfterReset(t *testing.T) {
	q := MathQuestion{ID: "only", Category: Addition, Question: "1 + 1", CorrectAnswer: 2, Difficulty: 1}
	p, err := NewPool([]MathQuestion{q}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		got, err := p.Draw()
		if err != nil || got.ID != "only" {
			t.Fatalf("Draw() = %v, %v", got, err)
		}
	}
	if p.Resets() != 2 {
		t.Errorf("Resets() = %d, expected 2", p.Resets())
	}
}
