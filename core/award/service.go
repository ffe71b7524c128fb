package award

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/roster"
)

type (
	Repository interface {
		// CreateAwards persists the batch and bumps each student's running
		// total in one transaction: either every target lands or none does.
		CreateAwards(ctx context.Context, awards []Award) ([]Award, error)
		FilterAwards(ctx context.Context, filter Filter) ([]Award, error)
		// Leaderboard returns a class's students by total points descending,
		// name ascending on ties.
		Leaderboard(ctx context.Context, classID string, limit int) ([]roster.Student, error)
	}

	Service struct {
		repo    Repository
		roster  roster.Repository
		mailSvc core.EmailService
		logger  core.Logger
		conf    *core.Config
	}
)

func NewService(repo Repository, rosterRepo roster.Repository, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	return &Service{repo: repo, roster: rosterRepo, mailSvc: mailSvc, logger: logger, conf: conf}
}

// Grant applies one batch award: the identical delta and behavior tag to every
// target student, persisted atomically. It returns the refreshed students so
// callers can reconcile any optimistic totals they are showing; on error the
// store is untouched and the caller must surface the failure rather than
// present un-persisted totals as fact.
func (svc *Service) Grant(ctx context.Context, classID, teacherID string, req Request) ([]roster.Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	points := req.Points
	var bhv *roster.Behavior
	if req.BehaviorID != ManualBehaviorID {
		b, err := svc.roster.GetBehavior(ctx, req.BehaviorID)
		if err != nil {
			return nil, errors.Wrap(err, "resolving behavior")
		}
		if b.ClassID != classID {
			return nil, core.NewValidationError(roster.ErrClassMismatch, core.FieldError{
				Field: "behavior_id", Error: roster.ErrClassMismatch.Error(),
			})
		}
		points = b.Points
		bhv = &b
	}

	targets, err := svc.roster.GetStudents(ctx, req.TargetIDs)
	if err != nil {
		return nil, errors.Wrap(err, "resolving targets")
	}
	if len(targets) != len(req.TargetIDs) {
		return nil, roster.ErrNotFound
	}
	for _, std := range targets {
		if std.ClassID != classID {
			return nil, core.NewValidationError(roster.ErrClassMismatch, core.FieldError{
				Field: "target_ids", Error: "student " + std.ID + " is not in this class",
			})
		}
	}

	now := time.Now().UTC()
	awards := make([]Award, 0, len(targets))
	for _, std := range targets {
		awards = append(awards, Award{
			ClassID:    classID,
			StudentID:  std.ID,
			BehaviorID: req.BehaviorID,
			Points:     points,
			RecordedBy: teacherID,
			CreatedAt:  now,
		})
	}
	if _, err = svc.repo.CreateAwards(ctx, awards); err != nil {
		return nil, errors.Wrap(err, "persisting awards")
	}

	refreshed, err := svc.roster.GetStudents(ctx, req.TargetIDs)
	if err != nil {
		return nil, errors.Wrap(err, "refreshing totals")
	}

	svc.notifyGuardians(refreshed, points, bhv)
	return refreshed, nil
}

func (svc *Service) History(ctx context.Context, filter Filter) ([]Award, error) {
	return svc.repo.FilterAwards(ctx, filter)
}

func (svc *Service) Leaderboard(ctx context.Context, classID string, limit int) ([]roster.Student, error) {
	if _, err := svc.roster.GetClass(ctx, classID); err != nil {
		return nil, err
	}
	return svc.repo.Leaderboard(ctx, classID, limit)
}

// notifyGuardians mails a summary to each awarded student's guardian, when one
// is on file. Delivery runs in the background and never affects the award.
func (svc *Service) notifyGuardians(students []roster.Student, points int, bhv *roster.Behavior) {
	if svc.mailSvc == nil {
		return
	}
	abs := points
	if abs < 0 {
		abs = -abs
	}
	var behaviorName string
	if bhv != nil {
		behaviorName = bhv.Name
	}

	msgs := make([]*core.EmailMessage, 0, len(students))
	for _, std := range students {
		if std.GuardianEmail == "" {
			continue
		}
		msgs = append(msgs, &core.EmailMessage{
			To:           []mail.Address{{Name: std.Name, Address: std.GuardianEmail}},
			Subject:      fmt.Sprintf("Point update for %s", std.Name),
			TemplateName: "award-notice",
			TemplateData: core.ContextData{
				FrontendBaseURL: svc.conf.FrontendBaseURL,
				Data: struct {
					StudentName  string
					Points       int
					AbsPoints    int
					BehaviorName string
					TotalPoints  int
				}{std.Name, points, abs, behaviorName, std.TotalPoints},
			},
		})
	}
	if len(msgs) > 0 {
		svc.mailSvc.SendMessages(msgs...)
	}
}
