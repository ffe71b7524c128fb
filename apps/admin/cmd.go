package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/engconnect/classtools/core/roster"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db        *sqlx.DB
	rosterSvc *roster.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run DB migrations (up, down, status, ...)")
	fmt.Println("  addclass -teacher TEACHER_ID -name NAME - create a class with a fresh join code")
	fmt.Println("  importroster -class CLASS_ID -file FILE.xlsx - bulk-enroll students from a spreadsheet")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addClassCmd := flag.NewFlagSet("addclass", flag.ExitOnError)
	addClassTeacher := addClassCmd.String("teacher", "", "The owning teacher's ID.")
	addClassName := addClassCmd.String("name", "", "The class display name.")

	importCmd := flag.NewFlagSet("importroster", flag.ExitOnError)
	importClass := importCmd.String("class", "", "The target class ID.")
	importFile := importCmd.String("file", "", "Path to the roster spreadsheet (.xlsx).")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addclass":
		if err := addClassCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addClassTeacher == "" || *addClassName == "" {
			addClassCmd.Usage()
			return errHelp
		}
		return cli.addClass(*addClassTeacher, *addClassName)
	case "importroster":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importClass == "" || *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importRoster(*importClass, *importFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
