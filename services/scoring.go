package services

import (
	"math/rand"

	"idea-incubator-api/models"
)

// ScoreFunc assigns a business-value score in [0,100) to a newly submitted idea.
// The default is a uniform random placeholder standing in for a future scoring
// model; the number carries no meaning beyond display and sorting.
type ScoreFunc func(idea *models.Idea) int

// DefaultScorer returns a uniformly random score in [0,100).
func DefaultScorer(_ *models.Idea) int {
	return rand.Intn(100)
}
