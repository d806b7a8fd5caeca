// Package game computes the outcome of a two-thirds-of-average round.
package game

import "math"

// Entry is one player's submitted guess.
type Entry struct {
	PlayerID string
	Name     string
	Number   int
}

// Result is the outcome of a round: the group average, two thirds of it,
// and every entry whose number sits at the minimal distance from that
// target. Equidistant entries all win; there is no tie-break.
type Result struct {
	Average   float64
	TwoThirds float64
	Winners   []Entry
}

// Compute derives the round result from the submitted entries. Entries are
// assumed complete; callers gate on all numbers being present. An empty
// slice yields a zero Result.
func Compute(entries []Entry) Result {
	if len(entries) == 0 {
		return Result{}
	}

	sum := 0
	for _, entry := range entries {
		sum += entry.Number
	}
	average := float64(sum) / float64(len(entries))
	twoThirds := average * 2 / 3

	minDist := math.Inf(1)
	for _, entry := range entries {
		if dist := math.Abs(float64(entry.Number) - twoThirds); dist < minDist {
			minDist = dist
		}
	}

	winners := make([]Entry, 0, 1)
	for _, entry := range entries {
		if math.Abs(float64(entry.Number)-twoThirds) == minDist {
			winners = append(winners, entry)
		}
	}

	return Result{
		Average:   average,
		TwoThirds: twoThirds,
		Winners:   winners,
	}
}

// Distance is how far an entry's number landed from the round target.
func Distance(entry Entry, result Result) float64 {
	return math.Abs(float64(entry.Number) - result.TwoThirds)
}
