package award_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/award"
	"github.com/engconnect/classtools/core/picker"
	"github.com/engconnect/classtools/core/roster"
	emailsvc "github.com/engconnect/classtools/services/email"
	"github.com/engconnect/classtools/storage/database/inmem"
	testutil "github.com/engconnect/classtools/tests"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

var conf *core.Config

func TestMain(m *testing.M) {
	core.InitValidators()
	conf = core.NewConfig()
	core.ParseEmailTemplates(nopLogger{})
	m.Run()
}

type fixture struct {
	svc       *award.Service
	awardRepo *inmem.AwardRepository
	roster    roster.Repository
	cls       roster.Class
	students  []roster.Student
	bhv       roster.Behavior
}

func setup(t *testing.T) *fixture {
	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	rosterRepo := inmem.NewRosterRepository(db)
	awardRepo := inmem.NewAwardRepository(db)

	cls := testutil.CreateClass(t, rosterRepo, "t1", "5B", "AAAAAA")
	students := []roster.Student{
		testutil.CreateStudent(t, rosterRepo, cls.ID, "Amy", "amy.parent@example.com"),
		testutil.CreateStudent(t, rosterRepo, cls.ID, "Ben", ""),
		testutil.CreateStudent(t, rosterRepo, cls.ID, "Cy", ""),
	}
	bhv := testutil.CreateBehavior(t, rosterRepo, cls.ID, "Helping others", 3)

	svc := award.NewService(awardRepo, rosterRepo, emailsvc.NewConsoleServiceMock(conf), nopLogger{}, conf)
	return &fixture{svc: svc, awardRepo: awardRepo, roster: rosterRepo, cls: cls, students: students, bhv: bhv}
}

func ids(students []roster.Student) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = s.ID
	}
	return out
}

func Test_Service_Grant_batch(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	got, err := fix.svc.Grant(ctx, fix.cls.ID, "t1", award.Request{
		TargetIDs:  ids(fix.students),
		BehaviorID: fix.bhv.ID,
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, std := range got {
		assert.Equal(t, 3, std.TotalPoints, "every target gets the behavior's points")
	}

	history, err := fix.svc.History(ctx, award.Filter{ClassID: fix.cls.ID})
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, a := range history {
		assert.Equal(t, fix.bhv.ID, a.BehaviorID)
		assert.Equal(t, 3, a.Points)
		assert.Equal(t, "t1", a.RecordedBy)
		// one semantic action: the batch shares a timestamp
		assert.Equal(t, history[0].CreatedAt, a.CreatedAt)
	}
}

func Test_Service_Grant_behaviorPointsAuthoritative(t *testing.T) {
	fix := setup(t)

	// a stale client-supplied Points value is ignored for named behaviors
	got, err := fix.svc.Grant(context.Background(), fix.cls.ID, "t1", award.Request{
		TargetIDs:  []string{fix.students[0].ID},
		BehaviorID: fix.bhv.ID,
		Points:     999,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got[0].TotalPoints)
}

func Test_Service_Grant_quickAdjust(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	q := award.QuickAdjust{TargetIDs: []string{fix.students[0].ID}, Magnitude: 2, Penalty: true}
	require.NoError(t, q.Validate())

	got, err := fix.svc.Grant(ctx, fix.cls.ID, "t1", q.Request())
	require.NoError(t, err)
	assert.Equal(t, -2, got[0].TotalPoints)

	history, err := fix.svc.History(ctx, award.Filter{ClassID: fix.cls.ID})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].IsManual())
	assert.Equal(t, -2, history[0].Points)
}

func Test_QuickAdjust_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       award.QuickAdjust
		wantErr bool
	}{
		{name: "ok", q: award.QuickAdjust{TargetIDs: []string{"s1"}, Magnitude: 1}},
		{name: "zero magnitude", q: award.QuickAdjust{TargetIDs: []string{"s1"}}, wantErr: true},
		{name: "negative magnitude", q: award.QuickAdjust{TargetIDs: []string{"s1"}, Magnitude: -3}, wantErr: true},
		{name: "no targets", q: award.QuickAdjust{Magnitude: 1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_Service_Grant_rejectsManualZeroPoints(t *testing.T) {
	fix := setup(t)

	_, err := fix.svc.Grant(context.Background(), fix.cls.ID, "t1", award.Request{
		TargetIDs:  []string{fix.students[0].ID},
		BehaviorID: award.ManualBehaviorID,
	})
	var vErr *core.ValidationError
	require.Error(t, err)
	assert.ErrorAs(t, err, &vErr)
}

func Test_Service_Grant_rejectsForeignBehavior(t *testing.T) {
	fix := setup(t)

	other := testutil.CreateClass(t, fix.roster, "t2", "6A", "BBBBBB")
	foreign := testutil.CreateBehavior(t, fix.roster, other.ID, "Reading", 1)

	_, err := fix.svc.Grant(context.Background(), fix.cls.ID, "t1", award.Request{
		TargetIDs:  []string{fix.students[0].ID},
		BehaviorID: foreign.ID,
	})
	var vErr *core.ValidationError
	require.Error(t, err)
	assert.ErrorAs(t, err, &vErr)
}

func Test_Service_Grant_allOrNothing(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	// one unknown target poisons the whole batch
	_, err := fix.svc.Grant(ctx, fix.cls.ID, "t1", award.Request{
		TargetIDs:  append(ids(fix.students), "ghost"),
		BehaviorID: fix.bhv.ID,
	})
	assert.Equal(t, roster.ErrNotFound, errors.Cause(err))

	for _, std := range fix.students {
		got, gErr := fix.roster.GetStudent(ctx, std.ID)
		require.NoError(t, gErr)
		assert.Zero(t, got.TotalPoints, "failed batch must not move any total")
	}
	history, err := fix.svc.History(ctx, award.Filter{ClassID: fix.cls.ID})
	require.NoError(t, err)
	assert.Empty(t, history)
}

func Test_Service_Grant_persistenceFailure(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	fix.awardRepo.FailNext = errors.New("connection reset")
	_, err := fix.svc.Grant(ctx, fix.cls.ID, "t1", award.Request{
		TargetIDs:  ids(fix.students),
		BehaviorID: fix.bhv.ID,
	})
	require.Error(t, err)

	// the caller must be able to trust the store was untouched
	for _, std := range fix.students {
		got, gErr := fix.roster.GetStudent(ctx, std.ID)
		require.NoError(t, gErr)
		assert.Zero(t, got.TotalPoints)
	}
}

func Test_Service_Grant_clearsSelectionUnlessPinned(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	sel := picker.NewSelection()
	for _, id := range ids(fix.students) {
		sel.Toggle(id)
	}

	_, err := fix.svc.Grant(ctx, fix.cls.ID, "t1", award.Request{TargetIDs: sel.IDs(), BehaviorID: fix.bhv.ID})
	require.NoError(t, err)
	sel.ClearAfterAward()
	assert.Zero(t, sel.Len())

	sel.Toggle(fix.students[0].ID)
	sel.Pinned = true
	_, err = fix.svc.Grant(ctx, fix.cls.ID, "t1", award.Request{TargetIDs: sel.IDs(), BehaviorID: fix.bhv.ID})
	require.NoError(t, err)
	sel.ClearAfterAward()
	assert.Equal(t, 1, sel.Len())
}

func Test_Service_Grant_notifiesGuardians(t *testing.T) {
	fix := setup(t)

	before := len(emailsvc.SentMessages)
	_, err := fix.svc.Grant(context.Background(), fix.cls.ID, "t1", award.Request{
		TargetIDs:  ids(fix.students),
		BehaviorID: fix.bhv.ID,
	})
	require.NoError(t, err)

	// only Amy has a guardian e-mail on file
	sent := emailsvc.SentMessages[before:]
	require.Len(t, sent, 1)
	assert.Equal(t, "amy.parent@example.com", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "Amy")
	assert.Contains(t, sent[0].TextContent, "Helping others")
}

func Test_Service_Leaderboard(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	_, err := fix.svc.Grant(ctx, fix.cls.ID, "t1", award.Request{
		TargetIDs: []string{fix.students[2].ID}, BehaviorID: fix.bhv.ID,
	})
	require.NoError(t, err)
	_, err = fix.svc.Grant(ctx, fix.cls.ID, "t1", award.Request{
		TargetIDs: []string{fix.students[0].ID, fix.students[1].ID}, BehaviorID: fix.bhv.ID,
	})
	require.NoError(t, err)

	board, err := fix.svc.Leaderboard(ctx, fix.cls.ID, 0)
	require.NoError(t, err)
	require.Len(t, board, 3)
	// all tied on 3 points: name ascending breaks the tie
	assert.Equal(t, []string{"Amy", "Ben", "Cy"}, []string{board[0].Name, board[1].Name, board[2].Name})

	board, err = fix.svc.Leaderboard(ctx, fix.cls.ID, 2)
	require.NoError(t, err)
	assert.Len(t, board, 2)
}
