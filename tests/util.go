package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/engconnect/classtools/core/roster"
)

func CreateClass(t *testing.T, repo roster.Repository, ownerID, name, code string) roster.Class {
	t.Helper()
	now := time.Now().UTC()
	cls, err := repo.CreateClass(context.Background(), roster.Class{
		OwnerID:   ownerID,
		Name:      name,
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

func CreateStudent(t *testing.T, repo roster.Repository, classID, name, guardianEmail string) roster.Student {
	t.Helper()
	now := time.Now().UTC()
	std, err := repo.CreateStudent(context.Background(), roster.Student{
		ClassID:       classID,
		Name:          name,
		GuardianEmail: guardianEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateBehavior(t *testing.T, repo roster.Repository, classID, name string, points int) roster.Behavior {
	t.Helper()
	now := time.Now().UTC()
	bhv, err := repo.CreateBehavior(context.Background(), roster.Behavior{
		ClassID:   classID,
		Name:      name,
		Points:    points,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBehavior() failed: %v", err)
	}
	return bhv
}
