package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/account"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/session"
	"github.com/ericnguyen1274/Customer---App/storage/database/docrepos"
	inmemdb "github.com/ericnguyen1274/Customer---App/storage/database/inmem"
	testutil "github.com/ericnguyen1274/Customer---App/tests"
)

func setup(t *testing.T) (*commandLine, *inmemdb.DB) {
	db := testutil.PrepareDB(t)
	cli, err := newCommandLine(core.NewTestConfig(), db, new(testutil.Logger))
	if err != nil {
		t.Fatalf("newCommandLine() failed: %v", err)
	}
	cli.out = io.Discard
	return cli, db
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	if err := cli.run([]string{"admin", "migrate", "up"}); err != errNoMigrations {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errNoMigrations)
	}
	cli.sqlDB = new(sql.DB)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		if _, err := fs.Stat(fsys, dir+"/00001_documents.sql"); err != nil {
			return err
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "payments_index", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, db := setup(t)
	usrRepo := docrepos.NewUserRepository(db)

	usr := testutil.CreateUser(t, db, "uid-1", "Asha Rao", "asha@test.cd", "Initial-Pass42")

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "Lotus#Pose77x"}, wantErr: account.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", usr.Email}, extra: extra{pwd: "Lotus#Pose77x"}},
		{name: "reset (case insensitive email)", args: []string{"resetpassword", "-email", "ASHA@test.cd"}, extra: extra{pwd: "Tree&Pose2026y"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			before, err := usrRepo.GetUser(context.Background(), usr.UID)
			if err != nil {
				t.Fatalf("GetUser() failed, %v", err)
			}
			err = cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUser(context.Background(), usr.UID)
				if err != nil {
					t.Fatalf("GetUser() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, before.PasswordHash) {
					t.Error("failed to update new password")
				}
				if err := refreshedUsr.CheckPassword(tt.extra.(extra).pwd); err != nil {
					t.Errorf("CheckPassword() failed: %v", err)
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addCustomer(t *testing.T) {
	cli, db := setup(t)

	err := cli.run([]string{"admin", "addcustomer", "-name", "Mina", "-email", "mina@test.cd", "-phone", "+243 555 0101"})
	require.NoError(t, err)

	cust, err := docrepos.NewCustomerRepository(db).GetCustomerByEmail(context.Background(), "mina@test.cd")
	require.NoError(t, err)
	assert.Equal(t, 1, cust.ID())
	assert.Equal(t, "+243 555 0101", cust.Phone)

	// a registered customer can sign in right away
	sess, err := session.NewAuthenticator(docrepos.NewCustomerRepository(db), new(testutil.Logger), core.NopMetrics{}).
		SignIn(context.Background(), "mina@test.cd", "+243 555 0101")
	require.NoError(t, err)
	assert.True(t, sess.IsIdentified())

	err = cli.run([]string{"admin", "addcustomer", "-name", "Mina", "-email", "mina@test.cd", "-phone", "+243 555 0101"})
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)

	err = cli.run([]string{"admin", "addcustomer", "-name", "Nobody"})
	assert.ErrorAs(t, err, &vErr)
}

func writeCatalogWorkbook(t *testing.T, path string) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]interface{}{
		sheetCategories: {
			{"categoryId", "name", "categoryName"},
			{1, "hatha", "Hatha Yoga"},
			{2, "vinyasa", ""},
		},
		sheetTeachers: {
			{"teacherId", "name", "bio"},
			{1, "Priya", "Hatha teacher"},
		},
		sheetCourses: {
			{"courseId", "name", "description", "price", "duration", "capacity", "dayOfWeek", "time", "categoryId", "teacherId", "level"},
			{1, "Morning Flow", "Wake up", 1500, 60, 12, "Monday", "07:00 AM", 2, 1, "Beginner"},
			{2, "Deep Stretch", "", 2000, 90, 10, "Friday", "06:30 PM", 1, 1, ""},
			{},
		},
	}
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			row := row
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func Test_commandLine_seed(t *testing.T) {
	cli, _ := setup(t)
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	writeCatalogWorkbook(t, path)

	tests := []cliTest{
		{name: "no args", args: []string{"seed"}, wantErr: errHelp},
		{name: "missing file", args: []string{"seed", "-file", filepath.Join(t.TempDir(), "nope.xlsx")}, wantErrStr: "opening workbook"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrStr)
			}
		})
	}

	require.NoError(t, cli.run([]string{"admin", "seed", "-file", path}))

	ctx := context.Background()
	cats, err := cli.catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
	assert.Equal(t, "Hatha Yoga", catalog.ResolveCategoryName(cats, 1))
	assert.Equal(t, "vinyasa", catalog.ResolveCategoryName(cats, 2))

	teachers, err := cli.catalog.Teachers(ctx)
	require.NoError(t, err)
	assert.Len(t, teachers, 1)

	courses, err := cli.catalog.Search(ctx, "stretch")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 2000, courses[0].Price.Int())
	assert.Equal(t, 90, courses[0].Duration.Int())
	assert.Equal(t, catalog.DefaultCourseDescription, courses[0].Description)

	beginners, err := cli.catalog.CoursesByLevel(ctx, "beginner")
	require.NoError(t, err)
	require.Len(t, beginners, 1)
	assert.Equal(t, "Morning Flow", beginners[0].Name)
}

func Test_commandLine_exportPayments(t *testing.T) {
	cli, db := setup(t)
	testutil.CreateCustomer(t, db, 7, "seven@test.cd", "555-0107")
	course := testutil.CreateCourse(t, db, 3, "Power Yoga", 1999, 1)

	sess := session.Identify(session.Identity{ID: "7"})
	for i := 0; i < 2; i++ {
		_, err := cli.purchases.Purchase(context.Background(), sess, course)
		require.NoError(t, err)
	}

	tests := []cliTest{
		{name: "no args", args: []string{"export-payments"}, wantErr: errHelp},
		{name: "bad customer", args: []string{"export-payments", "-customer", "lol", "-file", "x.xlsx"}, wantErr: errHelp},
		{name: "no file", args: []string{"export-payments", "-customer", "7"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	path := filepath.Join(t.TempDir(), "payments.xlsx")
	require.NoError(t, cli.run([]string{"admin", "export-payments", "-customer", "7", "-file", path}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetPayments)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"paymentId", "customerId", "amount", "date"}, rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, "7", row[1])
		assert.Equal(t, "1999", row[2])
		assert.Equal(t, core.Today(), row[3])
	}
}
