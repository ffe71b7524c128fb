package main

import (
	"context"
	"fmt"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/roster"
)

func (cli *commandLine) addClass(teacherID, name string) error {
	ctx := context.Background()
	nc := roster.NewClass{Name: core.CleanString(name)}
	if err := nc.Validate(); err != nil {
		return err
	}

	cls, err := cli.rosterSvc.CreateClass(ctx, teacherID, nc)
	if err != nil {
		return err
	}
	fmt.Printf("class %q created; join code: %s\n", cls.Name, cls.Code)
	return nil
}
