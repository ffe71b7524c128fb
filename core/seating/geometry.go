package seating

import "math"

// Render geometry. Sizes are in unscaled layout pixels; the UI multiplies by
// the returned fit scale.
const (
	cardBaseSize     = 140.0
	cellGap          = 24.0
	pairGap          = 40.0 // between the two desks of a pair
	deskGroupGap     = 40.0 // extra room after each desk pair
	blackboardHeight = 180.0
	viewportPadding  = 120.0

	maxFitScale = 1.1 // keeps cards from ballooning on small rosters
	minFitScale = 0.5 // legibility floor
	defaultZoom = 0.85
)

// GridSize returns the unscaled width and height the full chart needs,
// including the blackboard strip above the first row.
func GridSize(gc GridConfig) (w, h float64) {
	hGap := cellGap
	if gc.PairMode {
		hGap = pairGap
	}
	w = float64(gc.Cols)*cardBaseSize + float64(gc.Cols-1)*hGap
	if gc.PairMode {
		w += float64(gc.Cols) / 2 * deskGroupGap
	}
	h = float64(gc.Rows)*cardBaseSize + float64(gc.Rows-1)*cellGap + blackboardHeight
	return w, h
}

// FitScale computes the zoom that fits the whole chart inside the viewport:
// the lesser of the per-axis ratios, capped and floored, rounded to two
// decimals. Pure computation, no side effects.
func FitScale(viewportW, viewportH float64, gc GridConfig) float64 {
	needW, needH := GridSize(gc)
	availW := viewportW - viewportPadding
	availH := viewportH - viewportPadding

	scale := math.Min(availW/needW, availH/needH)
	scale = math.Min(scale, maxFitScale)
	scale = math.Round(scale*100) / 100
	return math.Max(scale, minFitScale)
}
