package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) normalizeCourses() error {
	n, err := cli.regSvc.NormalizeCourses(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d registration(s) normalized\n", n)
	return nil
}

func (cli *commandLine) audit() error {
	report, err := cli.auditor.Run(context.Background())
	if err != nil {
		return err
	}
	for _, reg := range report.OrphanRegistrations {
		fmt.Fprintf(cli.out, "registration %s (%s): missing campus %s\n", reg.ID, reg.RegistrationNo, reg.CampusID)
	}
	for _, adm := range report.OrphanAdmins {
		fmt.Fprintf(cli.out, "campus admin %s (%s): missing campus %s\n", adm.ID, adm.Email, adm.CampusID)
	}
	if !report.IsClean() {
		return errAuditFailing
	}
	fmt.Fprintln(cli.out, "no dangling references")
	return nil
}
