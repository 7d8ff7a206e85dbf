package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/alfurqan/campusreg/core/campusadmin"
	"github.com/alfurqan/campusreg/core/registration"
	"github.com/alfurqan/campusreg/services/jobs"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp         = errors.New("help provided")
	errNoDatabase   = errors.New("migrate needs the postgres storage backend")
	errAuditFailing = errors.New("audit found dangling references")
)

type commandLine struct {
	db       *sql.DB // nil on the in-memory backend
	adminSvc *campusadmin.Service
	regSvc   *registration.Service
	auditor  *jobs.Auditor
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run goose migrations (up, down, status, version, ...)")
	fmt.Fprintln(cli.out, "  resetpassword -email EMAIL - reset a campus admin's password")
	fmt.Fprintln(cli.out, "  normalizecourses - replace course ids stored as course names")
	fmt.Fprintln(cli.out, "  audit - list records referencing deleted campuses")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordCmd.SetOutput(cli.out)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The campus admin's email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, string(pwd))

	case "normalizecourses":
		return cli.normalizeCourses()

	case "audit":
		return cli.audit()

	default:
		cli.printUsage()
		return errHelp
	}
}
