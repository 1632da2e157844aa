package service

import "math/rand"

// Formula computes the points awarded for an admissible check-in given
// the player's arrival position at the challenge. The check-in flow
// treats it as a policy so a flat-rate or position-based formula can
// replace the dice roll without touching the validator.
type Formula interface {
	Award(position int) int
}

// Roller is the random source behind the dice formula and the winner
// draw. *math/rand.Rand satisfies it; tests inject fixed sequences.
type Roller interface {
	Intn(n int) int
	Float64() float64
}

// NewRoller returns a Roller backed by the process-wide locked source,
// safe for concurrent requests.
func NewRoller() Roller {
	return globalRoller{}
}

type globalRoller struct{}

func (globalRoller) Intn(n int) int { return rand.Intn(n) }

func (globalRoller) Float64() float64 { return rand.Float64() }

const (
	diceOffset = 5
	minAward   = 7
	maxAward   = 18
)

// DiceFormula sums two d6 rolls plus a fixed offset, giving a [7,17]
// base weighted toward 12, then applies a rare multiplier: 1% double,
// 2% 1.5x, 2% 0.5x. The final award is clamped to [7,18].
type DiceFormula struct {
	rng Roller
}

func NewDiceFormula(rng Roller) *DiceFormula {
	return &DiceFormula{rng: rng}
}

func (f *DiceFormula) Award(_ int) int {
	die1 := f.rng.Intn(6) + 1
	die2 := f.rng.Intn(6) + 1
	points := die1 + die2 + diceOffset

	switch roll := f.rng.Float64(); {
	case roll < 0.01:
		points *= 2
	case roll < 0.03:
		points = points * 3 / 2
	case roll < 0.05:
		points = points / 2
	}

	if points < minAward {
		points = minAward
	}
	if points > maxAward {
		points = maxAward
	}

	return points
}
