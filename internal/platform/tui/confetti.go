package tui

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/whereisit/internal/core"
)

const confettiGravity = 18.0 // cells per second squared

var confettiRunes = []rune{'*', '+', 'o', '.', '~', '\''}

type confettiPiece struct {
	x, y   float64
	vx, vy float64
	r      rune
	color  core.Color
}

// Confetti is a burst of falling pieces drawn over the playfield.
type Confetti struct {
	rng    *rand.Rand
	pieces []confettiPiece
}

// NewConfetti creates an empty burst driven by seed.
func NewConfetti(seed int64) *Confetti {
	return &Confetti{rng: rand.New(rand.NewSource(seed))}
}

// Burst replaces the current pieces with n new ones spread across the top
// of a width x height field.
func (c *Confetti) Burst(n, width, height int) {
	c.pieces = c.pieces[:0]
	if width <= 0 || height <= 0 {
		return
	}
	for range n {
		c.pieces = append(c.pieces, confettiPiece{
			x:     c.rng.Float64() * float64(width),
			y:     -c.rng.Float64() * float64(height) / 2,
			vx:    (c.rng.Float64() - 0.5) * 6,
			vy:    2 + c.rng.Float64()*6,
			r:     confettiRunes[c.rng.Intn(len(confettiRunes))],
			color: core.ConfettiColors[c.rng.Intn(len(core.ConfettiColors))],
		})
	}
}

// Step advances the pieces by dt seconds and drops those below height.
func (c *Confetti) Step(dt float64, height int) {
	alive := c.pieces[:0]
	for _, p := range c.pieces {
		p.vy += confettiGravity * dt
		p.x += p.vx * dt
		p.y += p.vy * dt
		if p.y < float64(height) {
			alive = append(alive, p)
		}
	}
	c.pieces = alive
}

// Clear removes all pieces.
func (c *Confetti) Clear() {
	c.pieces = c.pieces[:0]
}

// Len returns the number of live pieces.
func (c *Confetti) Len() int {
	return len(c.pieces)
}

// Draw renders the visible pieces into dst.
func (c *Confetti) Draw(dst *core.Screen) {
	for _, p := range c.pieces {
		if p.y < 0 {
			continue
		}
		dst.Set(int(math.Floor(p.x)), int(math.Floor(p.y)), p.r, p.color)
	}
}
