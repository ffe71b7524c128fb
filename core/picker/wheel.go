package picker

import (
	"math/rand"
	"time"
)

// Wheel behavior constants. The pointer sits at the top of the wheel; slices
// are laid out clockwise in candidate order.
const (
	// WheelSpinDuration is how long the wheel animates before the winner is
	// revealed. The reveal is cosmetic: the draw happens at spin start.
	WheelSpinDuration = 5 * time.Second

	wheelMinTurns    = 8.0
	wheelTurnsSpread = 5.0 // turns drawn uniformly in [8, 13)
)

// Wheel is one spin of the spinning-wheel selector. The winner index is
// latched when the spin starts; Tick only advances the clock until the
// reveal. Truncating or stretching the animation cannot change the outcome.
type Wheel struct {
	winnerIdx int
	rotation  float64 // final rotation in degrees
	elapsed   time.Duration
	done      bool
}

// newWheel draws the winner and the cosmetic rotation target. n must be >= 2
// (guarded by Game.Choose).
func newWheel(rng *rand.Rand, n int) *Wheel {
	turns := wheelMinTurns + rng.Float64()*wheelTurnsSpread
	winnerIdx := rng.Intn(n)
	slice := 360.0 / float64(n)
	// align the winning slice's angular center under the pointer
	rotation := turns*360 + 360 - float64(winnerIdx)*slice - slice/2
	return &Wheel{winnerIdx: winnerIdx, rotation: rotation}
}

// Tick advances the spin clock and reports whether the reveal is due. Ticking
// a finished wheel is inert.
func (w *Wheel) Tick(delta time.Duration) (finished bool) {
	if w.done {
		return false
	}
	w.elapsed += delta
	if w.elapsed >= WheelSpinDuration {
		w.done = true
		return true
	}
	return false
}

// WinnerIndex returns the pre-committed winner slice index.
func (w *Wheel) WinnerIndex() int { return w.winnerIdx }

// Rotation returns the target rotation in degrees the UI animates to.
func (w *Wheel) Rotation() float64 { return w.rotation }

func (w *Wheel) Finished() bool { return w.done }
