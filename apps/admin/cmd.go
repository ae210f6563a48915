package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/ericnguyen1274/Customer---App/core/account"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/customer"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	sqlDB     *sql.DB // nil unless the store is SQL backed
	out       io.Writer
	customers *customer.Service
	catalog   *catalog.Service
	purchases *purchase.Service
	accounts  *account.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose migration command (postgres only)")
	fmt.Fprintln(cli.out, "  seed -file FILE.xlsx - import categories, teachers and courses from a workbook")
	fmt.Fprintln(cli.out, "  export-payments -customer ID -file FILE.xlsx - export a customer's payments")
	fmt.Fprintln(cli.out, "  addcustomer -name NAME -email EMAIL -phone PHONE - register a customer")
	fmt.Fprintln(cli.out, "  resetpassword -email EMAIL - reset an account's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedFile := seedCmd.String("file", "", "The catalog workbook (sheets Categories, Teachers, Courses).")

	exportCmd := flag.NewFlagSet("export-payments", flag.ContinueOnError)
	exportCustomer := exportCmd.String("customer", "", "The customer id.")
	exportFile := exportCmd.String("file", "", "The workbook to write.")

	addCustomerCmd := flag.NewFlagSet("addcustomer", flag.ContinueOnError)
	addCustomerName := addCustomerCmd.String("name", "", "The customer's name.")
	addCustomerEmail := addCustomerCmd.String("email", "", "The customer's email.")
	addCustomerPhone := addCustomerCmd.String("phone", "", "The customer's phone number.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The account's email. The password will be prompted next.")

	for _, fs := range []*flag.FlagSet{seedCmd, exportCmd, addCustomerCmd, resetPasswordCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedFile == "" {
			seedCmd.Usage()
			return errHelp
		}
		return cli.seed(*seedFile)
	case "export-payments":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		customerID, err := strconv.Atoi(*exportCustomer)
		if err != nil || customerID <= 0 || *exportFile == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.exportPayments(customerID, *exportFile)
	case "addcustomer":
		if err := addCustomerCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.addCustomer(*addCustomerName, *addCustomerEmail, *addCustomerPhone)
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
	default:
		cli.printUsage()
		return errHelp
	}
}
