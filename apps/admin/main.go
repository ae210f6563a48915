package main

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/account"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/customer"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
	emailsvc "github.com/ericnguyen1274/Customer---App/services/email"
	logsvc "github.com/ericnguyen1274/Customer---App/services/logger"
	"github.com/ericnguyen1274/Customer---App/storage/database"
	"github.com/ericnguyen1274/Customer---App/storage/database/docrepos"
	pgdb "github.com/ericnguyen1274/Customer---App/storage/database/postgres"
	"github.com/ericnguyen1274/Customer---App/storage/sequence"
)

func main() {
	conf := core.NewConfig()
	stdLogger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)

	// set up DB
	ctx := context.Background()
	db, err := database.Open(ctx, conf)
	errAndDie(logger, err)
	defer db.Close(ctx)

	cli, err := newCommandLine(conf, db, logger)
	errAndDie(logger, err)
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			stdLogger.Printf("\nerror: %+v\n", err)
		}
		_ = db.Close(ctx)
		os.Exit(1)
	}
}

func newCommandLine(conf *core.Config, db core.DB, logger core.Logger) (*commandLine, error) {
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	customer.InitValidators(validate, translator)
	account.InitValidators(validate, translator)
	account.LoadCommonPasswords(logger)

	seq, err := sequence.Open(context.Background(), conf, db)
	if err != nil {
		return nil, errors.Wrap(err, "setting up sequencer")
	}

	purchaseRepo := docrepos.NewPurchaseRepository(db)
	purchaseSvc, err := purchase.NewService(purchaseRepo, seq, conf, logger, core.NopMetrics{})
	if err != nil {
		return nil, errors.Wrap(err, "setting up purchases")
	}

	cli := &commandLine{
		out:       os.Stdout,
		customers: customer.NewService(docrepos.NewCustomerRepository(db), seq, validate, logger),
		catalog: catalog.NewService(
			docrepos.NewCourseRepository(db),
			docrepos.NewCategoryRepository(db),
			docrepos.NewTeacherRepository(db),
			purchaseRepo,
			validate,
		),
		purchases: purchaseSvc,
		accounts:  account.NewService(docrepos.NewUserRepository(db), emailsvc.NewConsoleService(conf), validate, conf),
	}
	if pg, ok := db.(*pgdb.DB); ok {
		cli.sqlDB = pg.SQL()
	}
	return cli, nil
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
