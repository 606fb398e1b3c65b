package placement

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/whereisit/internal/core"
)

func TestGenerateNeverOverlapsExclusions(t *testing.T) {
	bounds := core.NewRect(0, 0, 1024, 768)
	size := core.Size{W: 200, H: 200}
	frame := core.NewRect(60, 300, 300, 300)

	for seed := int64(1); seed <= 200; seed++ {
		g := NewGenerator(seed, 0)

		// A second random exclusion, like another object on the field
		r := rand.New(rand.NewSource(seed))
		other := core.NewRect(r.Float64()*800, r.Float64()*500, 200, 200)
		excluded := []core.Rect{frame, other}

		p, err := g.Generate(bounds, size, excluded, 0.3)
		if err != nil {
			t.Fatalf("seed %d: Generate() error = %v", seed, err)
		}

		placed := core.RectAt(p, size)
		for _, ex := range excluded {
			if placed.Intersects(ex) {
				t.Fatalf("seed %d: placed %v overlaps %v", seed, placed, ex)
			}
		}
		if p.X < bounds.X || placed.Right() > bounds.Right() || p.Y < bounds.Y || placed.Bottom() > bounds.Bottom() {
			t.Fatalf("seed %d: placed %v outside bounds %v", seed, placed, bounds)
		}
	}
}

func TestGenerateRespectsXMinFraction(t *testing.T) {
	bounds := core.NewRect(0, 0, 100, 50)
	size := core.Size{W: 10, H: 10}

	g := NewGenerator(7, 0)
	for i := 0; i < 500; i++ {
		p, err := g.Generate(bounds, size, nil, 0.3)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if p.X < 30 || p.X > 90 {
			t.Fatalf("X = %v, expected within [30, 90]", p.X)
		}
		if p.Y < 0 || p.Y > 40 {
			t.Fatalf("Y = %v, expected within [0, 40]", p.Y)
		}
	}
}

func TestGenerateOffsetBounds(t *testing.T) {
	bounds := core.NewRect(100, 20, 50, 30)
	size := core.Size{W: 10, H: 10}

	g := NewGenerator(3, 0)
	for i := 0; i < 200; i++ {
		p, err := g.Generate(bounds, size, nil, 0.5)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if p.X < 125 || p.X > 140 || p.Y < 20 || p.Y > 40 {
			t.Fatalf("Generate() = %v, expected x in [125, 140], y in [20, 40]", p)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	bounds := core.NewRect(0, 0, 800, 600)
	size := core.Size{W: 50, H: 50}

	a := NewGenerator(42, 0)
	b := NewGenerator(42, 0)
	for i := 0; i < 20; i++ {
		pa, errA := a.Generate(bounds, size, nil, 0)
		pb, errB := b.Generate(bounds, size, nil, 0)
		if errA != nil || errB != nil {
			t.Fatalf("unexpected errors: %v, %v", errA, errB)
		}
		if pa != pb {
			t.Fatalf("draw %d: %v != %v for the same seed", i, pa, pb)
		}
	}
}

func TestGenerateObjectLargerThanBounds(t *testing.T) {
	g := NewGenerator(1, 0)

	tests := []struct {
		name string
		size core.Size
	}{
		{"too wide", core.Size{W: 101, H: 10}},
		{"too tall", core.Size{W: 10, H: 51}},
		{"negative", core.Size{W: -1, H: 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Generate(core.NewRect(0, 0, 100, 50), tc.size, nil, 0)
			if !errors.Is(err, ErrInfeasibleBounds) {
				t.Errorf("Generate() error = %v, expected ErrInfeasibleBounds", err)
			}
		})
	}
}

func TestGenerateFullyExcludedTerminates(t *testing.T) {
	g := NewGenerator(1, 50)
	bounds := core.NewRect(0, 0, 100, 100)

	_, err := g.Generate(bounds, core.Size{W: 10, H: 10}, []core.Rect{bounds}, 0)
	if !errors.Is(err, ErrInfeasibleBounds) {
		t.Errorf("Generate() error = %v, expected ErrInfeasibleBounds", err)
	}
}

func TestGenerateFallbackFindsNarrowSlot(t *testing.T) {
	// The only free slot is x == 45 exactly, which sampling never hits.
	g := NewGenerator(1, 1)
	bounds := core.NewRect(0, 0, 100, 10)
	excluded := []core.Rect{
		core.NewRect(0, 0, 45, 10),
		core.NewRect(55, 0, 45, 10),
	}

	p, err := g.Generate(bounds, core.Size{W: 10, H: 10}, excluded, 0)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if p != (core.Point{X: 45, Y: 0}) {
		t.Errorf("Generate() = %v, expected (45, 0)", p)
	}
}

func TestGenerateFallbackRelaxesXMinFraction(t *testing.T) {
	g := NewGenerator(1, 10)
	bounds := core.NewRect(0, 0, 100, 10)
	excluded := []core.Rect{core.NewRect(50, 0, 50, 10)}

	p, err := g.Generate(bounds, core.Size{W: 10, H: 10}, excluded, 0.5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if p != (core.Point{X: 0, Y: 0}) {
		t.Errorf("Generate() = %v, expected (0, 0)", p)
	}
}

func TestNewGeneratorDefaultAttempts(t *testing.T) {
	if got := NewGenerator(1, 0).MaxAttempts(); got != DefaultMaxAttempts {
		t.Errorf("MaxAttempts() = %d, expected %d", got, DefaultMaxAttempts)
	}
	if got := NewGenerator(1, 5).MaxAttempts(); got != 5 {
		t.Errorf("MaxAttempts() = %d, expected 5", got)
	}
}
