package service

import (
	"math/rand"

	"github.com/shreyansh232/wysa/internal"
)

// Scorer turns a finished answer set into a score in [0,100]. It must be
// total over partial input: any answer may be absent if the user skipped
// a step.
type Scorer interface {
	Score(a *internal.Assessment) int
}

// RandomScorer matches the launch behavior: a uniform draw from [30,100]
// that ignores the answers entirely. A real weighting formula can replace
// it without touching the state machine.
// TODO: replace with an answer-derived formula once product defines one.
type RandomScorer struct{}

func (RandomScorer) Score(_ *internal.Assessment) int {
	return 30 + rand.Intn(71)
}
