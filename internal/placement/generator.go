// Package placement picks random positions for draggable objects so that they
// never overlap reserved areas such as the target frame.
package placement

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/vovakirdan/whereisit/internal/core"
)

// DefaultMaxAttempts bounds rejection sampling before the deterministic
// fallback search kicks in.
const DefaultMaxAttempts = 1000

// ErrInfeasibleBounds is returned when the object cannot be placed inside the
// bounds without overlapping an excluded rectangle.
var ErrInfeasibleBounds = errors.New("placement: infeasible bounds")

// Generator produces random non-overlapping positions.
type Generator struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewGenerator creates a generator seeded with seed. maxAttempts <= 0 selects
// DefaultMaxAttempts.
func NewGenerator(seed int64, maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{
		rng:         rand.New(rand.NewSource(seed)),
		maxAttempts: maxAttempts,
	}
}

// MaxAttempts returns the rejection sampling cap.
func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}

// Generate returns a top-left position for an object of the given size.
//
// x is drawn from [bounds.X + xMinFraction*bounds.W, bounds.Right()-size.W]
// and y from [bounds.Y, bounds.Bottom()-size.H]. Draws that intersect any
// excluded rectangle are rejected. Once the attempt cap is hit the generator
// falls back to an exhaustive search over edge-aligned positions, so an
// ErrInfeasibleBounds result means no valid position exists.
func (g *Generator) Generate(bounds core.Rect, size core.Size, excluded []core.Rect, xMinFraction float64) (core.Point, error) {
	if size.W < 0 || size.H < 0 {
		return core.Point{}, fmt.Errorf("%w: negative object size %vx%v", ErrInfeasibleBounds, size.W, size.H)
	}
	if size.W > bounds.W || size.H > bounds.H {
		return core.Point{}, fmt.Errorf("%w: object %vx%v does not fit in %vx%v",
			ErrInfeasibleBounds, size.W, size.H, bounds.W, bounds.H)
	}

	maxX := bounds.Right() - size.W
	maxY := bounds.Bottom() - size.H
	minX := min(bounds.X+core.ClampF(xMinFraction, 0, 1)*bounds.W, maxX)
	minY := bounds.Y

	for range g.maxAttempts {
		p := core.Point{
			X: g.uniform(minX, maxX),
			Y: g.uniform(minY, maxY),
		}
		if !overlapsAny(core.RectAt(p, size), excluded) {
			return p, nil
		}
	}

	// Prefer the configured x range, then relax it to the full width.
	if p, ok := scan(minX, maxX, minY, maxY, size, excluded); ok {
		return p, nil
	}
	if p, ok := scan(bounds.X, maxX, minY, maxY, size, excluded); ok {
		return p, nil
	}
	return core.Point{}, fmt.Errorf("%w: no free %vx%v slot among %d exclusions",
		ErrInfeasibleBounds, size.W, size.H, len(excluded))
}

// uniform returns a value in [lo, hi].
func (g *Generator) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}

func overlapsAny(r core.Rect, excluded []core.Rect) bool {
	for _, ex := range excluded {
		if r.Intersects(ex) {
			return true
		}
	}
	return false
}

// scan tries every position whose left edge sits at the range start or flush
// against the right edge of an exclusion, and likewise for the top edge. Any
// free position can be slid left and up onto one of these candidates, so the
// search is exhaustive.
func scan(minX, maxX, minY, maxY float64, size core.Size, excluded []core.Rect) (core.Point, bool) {
	xs := []float64{minX}
	ys := []float64{minY}
	for _, ex := range excluded {
		if ex.Right() > minX && ex.Right() <= maxX {
			xs = append(xs, ex.Right())
		}
		if ex.Bottom() > minY && ex.Bottom() <= maxY {
			ys = append(ys, ex.Bottom())
		}
	}
	sort.Float64s(xs)
	sort.Float64s(ys)

	for _, y := range ys {
		for _, x := range xs {
			p := core.Point{X: x, Y: y}
			if !overlapsAny(core.RectAt(p, size), excluded) {
				return p, true
			}
		}
	}
	return core.Point{}, false
}
