package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engconnect/classtools/core/award"
	"github.com/engconnect/classtools/core/roster"
	testutil "github.com/engconnect/classtools/tests"
)

func Test_awardApi_grant(t *testing.T) {
	env := setupServer(t)
	cls := testutil.CreateClass(t, env.rosterRepo, testTeacherID, "5B", "AAAAAA")
	amy := testutil.CreateStudent(t, env.rosterRepo, cls.ID, "Amy", "")
	ben := testutil.CreateStudent(t, env.rosterRepo, cls.ID, "Ben", "")
	bhv := testutil.CreateBehavior(t, env.rosterRepo, cls.ID, "Helping others", 3)

	body := marshallObj(t, award.Request{TargetIDs: []string{amy.ID, ben.ID}, BehaviorID: bhv.ID})
	req, rec := newRequest(http.MethodPost, "/v1/classes/"+cls.ID+"/awards", body)
	env.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		Students []roster.Student `json:"students"`
	}
	decodeBody(t, rec, &res)
	require.Len(t, res.Students, 2)
	for _, std := range res.Students {
		assert.Equal(t, 3, std.TotalPoints)
	}
}

func Test_awardApi_grant_badRequests(t *testing.T) {
	env := setupServer(t)
	cls := testutil.CreateClass(t, env.rosterRepo, testTeacherID, "5B", "AAAAAA")
	amy := testutil.CreateStudent(t, env.rosterRepo, cls.ID, "Amy", "")

	tests := []struct {
		name     string
		body     []byte
		wantCode int
	}{
		{
			name:     "no targets",
			body:     []byte(`{"target_ids": [], "behavior_id": "manual", "points": 1}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "manual with zero points",
			body:     marshallObj(t, award.Request{TargetIDs: []string{amy.ID}, BehaviorID: award.ManualBehaviorID}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown behavior",
			body:     marshallObj(t, award.Request{TargetIDs: []string{amy.ID}, BehaviorID: "nope"}),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknown target",
			body:     marshallObj(t, award.Request{TargetIDs: []string{"ghost"}, BehaviorID: award.ManualBehaviorID, Points: 1}),
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/classes/"+cls.ID+"/awards", tt.body)
			env.server.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func Test_awardApi_history(t *testing.T) {
	env := setupServer(t)
	cls := testutil.CreateClass(t, env.rosterRepo, testTeacherID, "5B", "AAAAAA")
	amy := testutil.CreateStudent(t, env.rosterRepo, cls.ID, "Amy", "")
	ben := testutil.CreateStudent(t, env.rosterRepo, cls.ID, "Ben", "")
	bhv := testutil.CreateBehavior(t, env.rosterRepo, cls.ID, "Helping others", 3)

	grant := func(targets []string, behaviorID string, points int) {
		body := marshallObj(t, award.Request{TargetIDs: targets, BehaviorID: behaviorID, Points: points})
		req, rec := newRequest(http.MethodPost, "/v1/classes/"+cls.ID+"/awards", body)
		env.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	grant([]string{amy.ID, ben.ID}, bhv.ID, 0)
	grant([]string{amy.ID}, award.ManualBehaviorID, -1)

	var awards []award.Award
	get := func(query string) []award.Award {
		req, rec := newRequest(http.MethodGet, "/v1/classes/"+cls.ID+"/awards"+query)
		env.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		awards = awards[:0]
		decodeBody(t, rec, &awards)
		return awards
	}

	assert.Len(t, get(""), 3)
	assert.Len(t, get("?student_id="+ben.ID), 1)
	assert.Len(t, get("?behavior_id="+award.ManualBehaviorID), 1)
	assert.Len(t, get("?limit=2"), 2)

	byPoints := get("?ordering=points")
	require.Len(t, byPoints, 3)
	assert.Equal(t, -1, byPoints[0].Points)
	assert.Equal(t, 3, byPoints[2].Points)
}

func Test_awardApi_leaderboard(t *testing.T) {
	env := setupServer(t)
	cls := testutil.CreateClass(t, env.rosterRepo, testTeacherID, "5B", "AAAAAA")
	amy := testutil.CreateStudent(t, env.rosterRepo, cls.ID, "Amy", "")
	ben := testutil.CreateStudent(t, env.rosterRepo, cls.ID, "Ben", "")

	body := marshallObj(t, award.Request{TargetIDs: []string{ben.ID}, BehaviorID: award.ManualBehaviorID, Points: 5})
	req, rec := newRequest(http.MethodPost, "/v1/classes/"+cls.ID+"/awards", body)
	env.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req, rec = newRequest(http.MethodGet, "/v1/classes/"+cls.ID+"/leaderboard")
	env.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var board []roster.Student
	decodeBody(t, rec, &board)
	require.Len(t, board, 2)
	assert.Equal(t, ben.ID, board[0].ID)
	assert.Equal(t, amy.ID, board[1].ID)
}
