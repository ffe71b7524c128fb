package picker

import (
	"math/rand"
	"time"
)

// Race behavior constants.
const (
	// RaceTickInterval is the simulated time between race steps. The UI may
	// call Tick on any cadence; the engine converts wall time into steps.
	RaceTickInterval = 80 * time.Millisecond

	raceNearFinish  = 92.0 // progress where the sprint phase begins
	raceMaxStride   = 3.5  // open-field advance, uniform [0, 3.5)
	raceCreepStride = 0.5  // sprint-phase creep, uniform [0, 0.5)
	raceBreakChance = 0.2  // per-step chance to break the tape
	raceFinish      = 100.0
)

// Race is a progress-race simulation over a fixed candidate order. Candidates
// advance randomly each step; near the finish they slow to a creep with a
// small per-step chance of jumping to exactly 100, which keeps endings tense
// instead of a straight run-in. The first candidate to hit 100 wins and the
// simulation halts; ties are impossible because steps evaluate candidates in
// a stable order and stop handing out the tape after the first break.
type Race struct {
	rng      *rand.Rand
	ids      []string
	progress map[string]float64
	acc      time.Duration
	winnerID string
	done     bool
}

func newRace(rng *rand.Rand, candidates []Candidate) *Race {
	ids := make([]string, len(candidates))
	progress := make(map[string]float64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
		progress[c.ID] = 0
	}
	return &Race{rng: rng, ids: ids, progress: progress}
}

// Tick advances the simulation by delta of wall time, running as many fixed
// steps as fit. Returns true on the tick that produces the winner. Ticking a
// finished race mutates nothing.
func (r *Race) Tick(delta time.Duration) (finished bool) {
	if r.done {
		return false
	}
	r.acc += delta
	for r.acc >= RaceTickInterval {
		r.acc -= RaceTickInterval
		if r.step() {
			r.done = true
			return true
		}
	}
	return false
}

func (r *Race) step() (finished bool) {
	var winner string
	for _, id := range r.ids {
		p := r.progress[id]
		switch {
		case p < raceNearFinish:
			r.progress[id] = p + r.rng.Float64()*raceMaxStride
		case winner == "" && p < raceFinish:
			if r.rng.Float64() < raceBreakChance {
				r.progress[id] = raceFinish
				winner = id
			} else {
				// creep, but never drift past the tape without winning
				crept := p + r.rng.Float64()*raceCreepStride
				if crept >= raceFinish {
					crept = raceFinish - 0.01
				}
				r.progress[id] = crept
			}
		}
	}
	if winner != "" {
		r.winnerID = winner
		return true
	}
	return false
}

// Progress returns a copy of the per-candidate progress, 0..100.
func (r *Race) Progress() map[string]float64 {
	out := make(map[string]float64, len(r.progress))
	for id, p := range r.progress {
		out[id] = p
	}
	return out
}

func (r *Race) WinnerID() string { return r.winnerID }

func (r *Race) Finished() bool { return r.done }
