package echoapi

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/award"
	"github.com/engconnect/classtools/core/roster"
	"github.com/engconnect/classtools/core/seating"
	"github.com/engconnect/classtools/storage/database/inmem"
)

const testTeacherID = "t1"

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type testEnv struct {
	server     *Server
	rosterRepo roster.Repository
	awardRepo  *inmem.AwardRepository
	seatingSvc *seating.Service
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("setupServer() failed: %v", err)
	}
	conf := &core.Config{
		TestMode: true,
		Env:      "TEST",
		AppName:  "ClassTools",
		Server:   core.ServerConfig{Host: "localhost:0", ShutdownTimeout: time.Second},
	}
	rosterRepo := inmem.NewRosterRepository(db)
	awardRepo := inmem.NewAwardRepository(db)
	seatingSvc := seating.NewService(inmem.NewSeatingRepository(db), rosterRepo)

	server := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         nopLogger{},
		RosterSvc:      roster.NewService(rosterRepo),
		SeatingSvc:     seatingSvc,
		AwardSvc:       award.NewService(awardRepo, rosterRepo, nil, nopLogger{}, conf),
		Rand:           rand.New(rand.NewSource(1)),
		DisableReqLogs: true,
	})
	return &testEnv{server: server, rosterRepo: rosterRepo, awardRepo: awardRepo, seatingSvc: seatingSvc}
}

func newAuthRequest(method, path, teacherID string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if teacherID != "" {
		req.Header.Set(teacherIDHeader, teacherID)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, testTeacherID, data...)
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}
