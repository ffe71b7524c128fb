package echoapi

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/engconnect/classtools/core/picker"
	"github.com/engconnect/classtools/core/roster"
	"github.com/engconnect/classtools/core/seating"
)

// raceFrameCap bounds the replay timeline; a race breaking the tape takes a
// few dozen steps, so hitting the cap means the engine is broken.
const raceFrameCap = 10000

type (
	pickerApi struct {
		seating *seating.Service
		roster  *roster.Service

		mu  sync.Mutex // rand.Rand is not safe for concurrent draws
		rng *rand.Rand
	}

	pickRequest struct {
		// CandidateIDs carries the teacher's explicit selection; empty means
		// every seated student.
		CandidateIDs []string `json:"candidate_ids"`
	}

	wheelResponse struct {
		Candidates []picker.Candidate `json:"candidates"`
		Winner     picker.Candidate   `json:"winner"`
		Rotation   float64            `json:"rotation"`    // degrees
		DurationMS int64              `json:"duration_ms"` // spin length
	}

	raceFrame struct {
		ElapsedMS int64              `json:"elapsed_ms"`
		Progress  map[string]float64 `json:"progress"`
	}

	raceResponse struct {
		Candidates []picker.Candidate `json:"candidates"`
		Winner     picker.Candidate   `json:"winner"`
		Frames     []raceFrame        `json:"frames"`
	}
)

func registerPickerAPI(g *echo.Group, seatingSvc *seating.Service, rosterSvc *roster.Service, rng *rand.Rand) {
	api := &pickerApi{seating: seatingSvc, roster: rosterSvc, rng: rng}

	pg := g.Group("/classes/:id/picker")
	pg.POST("/wheel", api.wheel)
	pg.POST("/race", api.race)
}

// Handlers

func (api *pickerApi) wheel(ctx echo.Context) error {
	game, err := api.newGame(ctx, picker.ModeWheel)
	if err != nil {
		return err
	}

	api.mu.Lock()
	if err = game.Start(); err != nil {
		api.mu.Unlock()
		return err
	}
	api.mu.Unlock()

	game.Tick(picker.WheelSpinDuration)
	winner, _ := game.Winner()
	snap := game.Snapshot()

	return ctx.JSON(http.StatusOK, wheelResponse{
		Candidates: snap.Candidates,
		Winner:     winner,
		Rotation:   snap.Rotation,
		DurationMS: picker.WheelSpinDuration.Milliseconds(),
	})
}

func (api *pickerApi) race(ctx echo.Context) error {
	game, err := api.newGame(ctx, picker.ModeRace)
	if err != nil {
		return err
	}

	api.mu.Lock()
	err = game.Start()
	if err != nil {
		api.mu.Unlock()
		return err
	}

	var frames []raceFrame
	var elapsed time.Duration
	for i := 0; game.Status() == picker.StatusPlaying && i < raceFrameCap; i++ {
		game.Tick(picker.RaceTickInterval)
		elapsed += picker.RaceTickInterval
		frames = append(frames, raceFrame{
			ElapsedMS: elapsed.Milliseconds(),
			Progress:  game.Snapshot().Progress,
		})
	}
	api.mu.Unlock()

	winner, ok := game.Winner()
	if !ok {
		return errors.New("race did not produce a winner")
	}

	return ctx.JSON(http.StatusOK, raceResponse{
		Candidates: game.Snapshot().Candidates,
		Winner:     winner,
		Frames:     frames,
	})
}

// newGame resolves the candidate pool and opens a game session in the
// requested mode. The minimum-pool guard lives in Game.Choose.
func (api *pickerApi) newGame(ctx echo.Context, mode picker.Mode) (*picker.Game, error) {
	if _, err := getTeacherID(ctx); err != nil {
		return nil, err
	}

	var data pickRequest
	if err := ctx.Bind(&data); err != nil {
		return nil, errors.Wrap(err, "binding to pickRequest")
	}

	classID := ctx.Param("id")
	reqCtx := ctx.Request().Context()

	if _, err := api.roster.GetClass(reqCtx, classID); err != nil {
		return nil, err
	}
	students, err := api.roster.QueryStudents(reqCtx, classID)
	if err != nil {
		return nil, err
	}
	seats, err := api.seating.Layout(reqCtx, classID)
	if err != nil {
		return nil, err
	}
	gc, err := api.seating.Config(reqCtx, classID)
	if err != nil {
		return nil, err
	}

	sel := picker.NewSelection()
	for _, id := range data.CandidateIDs {
		sel.Toggle(id)
	}

	// seats stranded outside the grid by a shrink stay stored but are not
	// candidates
	pool := picker.Pool(sel, students, seats.Within(gc))
	game := picker.NewGame(api.rng, pool)
	if err = game.Choose(mode); err != nil {
		return nil, err
	}
	return game, nil
}
