package picker

import (
	"errors"
	"math/rand"
	"time"
)

var (
	// ErrNotEnoughPlayers rejects games with fewer than two candidates.
	ErrNotEnoughPlayers = errors.New("need at least 2 participants")

	errNoMode = errors.New("no game mode chosen")
)

// MinCandidates is the smallest pool either game mode accepts.
const MinCandidates = 2

type Mode string

const (
	ModeWheel Mode = "wheel"
	ModeRace  Mode = "race"
)

func (m Mode) Valid() bool { return m == ModeWheel || m == ModeRace }

type Status string

const (
	StatusMenu     Status = "menu"
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Game drives one picker session through
// menu → waiting → playing → finished. Exactly one winner comes out of
// finished; "play again" (Reset) returns to menu, discarding all game state.
//
// The engine owns no timers. A UI shell calls Tick on its own animation
// cadence and renders the returned snapshot; Close dismisses the session
// for good, so a dismissed modal can never resurrect a stale winner.
type Game struct {
	rng        *rand.Rand
	candidates []Candidate

	status Status
	mode   Mode
	wheel  *Wheel
	race   *Race
	winner *Candidate
}

// NewGame starts a session at the mode menu. The RNG is injected so outcomes
// replay deterministically under a fixed seed.
func NewGame(rng *rand.Rand, candidates []Candidate) *Game {
	return &Game{rng: rng, candidates: candidates, status: StatusMenu}
}

// Choose picks a game mode. Fails with ErrNotEnoughPlayers for pools smaller
// than MinCandidates, leaving the game in the menu untouched.
func (g *Game) Choose(mode Mode) error {
	if !mode.Valid() {
		return errNoMode
	}
	if len(g.candidates) < MinCandidates {
		return ErrNotEnoughPlayers
	}
	g.mode = mode
	g.status = StatusWaiting
	g.wheel = nil
	g.race = nil
	g.winner = nil
	return nil
}

// Start launches the chosen mode. While a game is playing, Start is a no-op,
// not a queued restart.
func (g *Game) Start() error {
	switch g.status {
	case StatusPlaying:
		return nil
	case StatusWaiting:
	default:
		return errNoMode
	}

	switch g.mode {
	case ModeWheel:
		g.wheel = newWheel(g.rng, len(g.candidates))
	case ModeRace:
		g.race = newRace(g.rng, g.candidates)
	default:
		return errNoMode
	}
	g.status = StatusPlaying
	return nil
}

// Tick advances the running game by delta. On the tick that finishes the
// game, the winner becomes available; later ticks change nothing.
func (g *Game) Tick(delta time.Duration) {
	if g.status != StatusPlaying {
		return
	}
	switch g.mode {
	case ModeWheel:
		if g.wheel.Tick(delta) {
			w := g.candidates[g.wheel.WinnerIndex()]
			g.winner = &w
			g.status = StatusFinished
		}
	case ModeRace:
		if g.race.Tick(delta) {
			id := g.race.WinnerID()
			for _, c := range g.candidates {
				if c.ID == id {
					w := c
					g.winner = &w
					break
				}
			}
			g.status = StatusFinished
		}
	}
}

// Winner returns the game's single winner once finished.
func (g *Game) Winner() (Candidate, bool) {
	if g.winner == nil {
		return Candidate{}, false
	}
	return *g.winner, true
}

func (g *Game) Status() Status { return g.status }

func (g *Game) Mode() Mode { return g.mode }

// Reset implements "play again": back to the mode menu, prior game state
// discarded.
func (g *Game) Reset() {
	g.status = StatusMenu
	g.mode = ""
	g.wheel = nil
	g.race = nil
	g.winner = nil
}

// Close cancels the session. Unlike Reset, a closed game cannot choose a
// new mode; callers start over with NewGame.
func (g *Game) Close() {
	g.Reset()
	g.candidates = nil
}

// Snapshot is the render state a UI shell consumes after each Tick.
type Snapshot struct {
	Status     Status             `json:"status"`
	Mode       Mode               `json:"mode,omitempty"`
	Candidates []Candidate        `json:"candidates"`
	Rotation   float64            `json:"rotation,omitempty"` // wheel target, degrees
	Duration   time.Duration      `json:"duration,omitempty"` // wheel spin length
	Progress   map[string]float64 `json:"progress,omitempty"` // race, 0..100
	Winner     *Candidate         `json:"winner,omitempty"`
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Status:     g.status,
		Mode:       g.mode,
		Candidates: g.candidates,
		Winner:     g.winner,
	}
	if g.wheel != nil {
		snap.Rotation = g.wheel.Rotation()
		snap.Duration = WheelSpinDuration
	}
	if g.race != nil {
		snap.Progress = g.race.Progress()
	}
	return snap
}
