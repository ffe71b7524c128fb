package main

import (
	"database/sql"

	"github.com/pressly/goose/v3"

	appfs "github.com/engconnect/classtools/fs"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	goose.SetBaseFS(appfs.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.gooseDB(), "migrations", arguments...)
}

func (cli *commandLine) gooseDB() *sql.DB {
	if cli.db == nil {
		return nil
	}
	return cli.db.DB
}
