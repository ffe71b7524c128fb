package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/roster"
	"github.com/engconnect/classtools/storage/database/inmem"
	testutil "github.com/engconnect/classtools/tests"
)

func TestMain(m *testing.M) {
	core.InitValidators()
	m.Run()
}

func setup(t *testing.T) (*commandLine, roster.Repository) {
	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := inmem.NewRosterRepository(db)
	return &commandLine{rosterSvc: roster.NewService(repo)}, repo
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_usage(t *testing.T) {
	cli, _ := setup(t)

	tests := []cliTest{
		{name: "no subcommand", args: []string{}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"lol"}, wantErr: errHelp},
		{name: "migrate: no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "addclass: no flags", args: []string{"addclass"}, wantErr: errHelp},
		{name: "addclass: missing name", args: []string{"addclass", "-teacher", "t1"}, wantErr: errHelp},
		{name: "importroster: missing file", args: []string{"importroster", "-class", "c1"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	origRun := gooseRunFunc
	defer func() { gooseRunFunc = origRun }()
	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s needs a VERSION", command)
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to needs a VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			if tt.wantErrStr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrStr, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_commandLine_addClass(t *testing.T) {
	cli, repo := setup(t)

	require.NoError(t, cli.run([]string{"admin", "addclass", "-teacher", "t1", "-name", "5B"}))

	classes, err := repo.QueryClassesByOwner(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "5B", classes[0].Name)
	assert.Len(t, classes[0].Code, 6)
}

func Test_commandLine_importRoster(t *testing.T) {
	cli, repo := setup(t)
	cls := testutil.CreateClass(t, repo, "t1", "5B", "AAAAAA")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Name", "Guardian Email", "Avatar"}, // header
		{"Amy", "MOM@example.com", ""},
		{"Ben", "", ""},
		{"", "orphan@example.com", ""}, // no name: skipped
	}
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}
	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	logger = log.New(io.Discard, "", 0)
	require.NoError(t, cli.importRoster(cls.ID, path))

	students, err := repo.QueryStudentsByClass(context.Background(), cls.ID)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Amy", students[0].Name)
	assert.Equal(t, "mom@example.com", students[0].GuardianEmail, "guardian e-mails are lowercased")
	assert.Equal(t, "Ben", students[1].Name)
}
