package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/account"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/customer"
	"github.com/ericnguyen1274/Customer---App/storage/database/docrepos"
	inmemdb "github.com/ericnguyen1274/Customer---App/storage/database/inmem"
)

// NewValidator returns a validator with every domain rule registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	customer.InitValidators(validate, translator)
	account.InitValidators(validate, translator)
	return validate, translator
}

// PrepareDB returns an empty in-memory store.
func PrepareDB(t *testing.T) *inmemdb.DB {
	t.Helper()
	return inmemdb.Open()
}

// Logger records entries instead of printing them.
type Logger struct {
	mu      sync.Mutex
	Entries []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, fmt.Sprintf("%s: %s %v", level, msg, args))
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }

func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Entries)
}

func CreateCustomer(t *testing.T, db core.DocStore, id int, email, phone string) customer.Customer {
	t.Helper()
	cust, err := docrepos.NewCustomerRepository(db).
		CreateCustomerWithID(context.Background(), customer.NewTestCustomer(id, email, phone))
	if err != nil {
		t.Fatalf("CreateCustomer() failed: %v", err)
	}
	return cust
}

func CreateCategory(t *testing.T, db core.DocStore, id int, name string) catalog.Category {
	t.Helper()
	cat, err := docrepos.NewCategoryRepository(db).
		CreateCategory(context.Background(), catalog.Category{CategoryID: core.FlexInt(id), Name: name})
	if err != nil {
		t.Fatalf("CreateCategory() failed: %v", err)
	}
	return cat
}

func CreateTeacher(t *testing.T, db core.DocStore, id int, name, bio string) catalog.Teacher {
	t.Helper()
	teacher, err := docrepos.NewTeacherRepository(db).
		CreateTeacher(context.Background(), catalog.Teacher{TeacherID: core.FlexInt(id), Name: name, Bio: bio})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return teacher
}

func CreateCourse(t *testing.T, db core.DocStore, id int, name string, price, categoryID int) catalog.Course {
	t.Helper()
	course, err := docrepos.NewCourseRepository(db).CreateCourse(context.Background(), catalog.Course{
		CourseID:    core.FlexInt(id),
		Name:        name,
		Description: name + " description",
		Price:       core.FlexInt(price),
		Duration:    60,
		Capacity:    20,
		DayOfWeek:   "Monday",
		Time:        "09:00 AM",
		CategoryID:  core.FlexInt(categoryID),
		TeacherID:   1,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return course
}

func CreateUser(t *testing.T, db core.DocStore, uid, name, email, pwd string) account.User {
	t.Helper()
	usr := account.User{
		UID:         uid,
		Email:       email,
		FullName:    name,
		DisplayName: name,
		IsActive:    true,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := docrepos.NewUserRepository(db).CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
