package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/roster"
)

// importRoster bulk-enrolls students from a spreadsheet. Expected columns:
// A name, B guardian email (optional), C avatar URL (optional); the first row
// is a header. Rows without a name are skipped.
func (cli *commandLine) importRoster(classID, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return errors.Wrap(err, "opening spreadsheet")
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			logger.Printf("closing spreadsheet: %v", cErr)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return errors.New("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return errors.Wrapf(err, "reading sheet %q", sheetName)
	}

	ctx := context.Background()
	var imported, skipped int
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		ns := roster.NewStudent{}
		if len(row) > 0 {
			ns.Name = core.CleanString(row[0])
		}
		if len(row) > 1 {
			ns.GuardianEmail = core.CleanString(row[1], true /* lower */)
		}
		if len(row) > 2 {
			ns.AvatarURL = core.CleanString(row[2])
		}
		if ns.Name == "" {
			skipped++
			continue
		}
		if err = ns.Validate(); err != nil {
			logger.Printf("skipping row %d: %v", i+1, err)
			skipped++
			continue
		}
		if _, err = cli.rosterSvc.Enroll(ctx, classID, ns); err != nil {
			return errors.Wrapf(err, "enrolling %q (row %d)", ns.Name, i+1)
		}
		imported++
	}

	fmt.Printf("imported %d student(s), skipped %d row(s)\n", imported, skipped)
	return nil
}
