package catalog

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
)

var (
	// errors
	ErrCourseNotFound   = errors.New("course not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTeacherNotFound  = errors.New("teacher not found")
)

type (
	CourseRepository interface {
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourse(ctx context.Context, docID string) (Course, error)
		CreateCourse(ctx context.Context, course Course) (Course, error)
		QueryCoursesByLevel(ctx context.Context, level string) ([]Course, error)
	}

	CategoryRepository interface {
		QueryAllCategories(ctx context.Context) ([]Category, error)
		GetCategory(ctx context.Context, docID string) (Category, error)
		GetCategoryByID(ctx context.Context, categoryID int) (Category, error)
		CreateCategory(ctx context.Context, cat Category) (Category, error)
		UpdateCategory(ctx context.Context, cat Category) (Category, error)
		DeleteCategory(ctx context.Context, docID string) error
	}

	TeacherRepository interface {
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacher(ctx context.Context, docID string) (Teacher, error)
		CreateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		UpdateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		DeleteTeacher(ctx context.Context, docID string) error
	}

	// PurchasedLister returns the ids of the courses a customer purchased.
	PurchasedLister interface {
		QueryPurchasedCourseIDs(ctx context.Context, customerID int) ([]int, error)
	}

	Service struct {
		courses    CourseRepository
		categories CategoryRepository
		teachers   TeacherRepository
		purchased  PurchasedLister
		validate   *validator.Validate
	}
)

func NewService(
	courses CourseRepository,
	categories CategoryRepository,
	teachers TeacherRepository,
	purchased PurchasedLister,
	validate *validator.Validate,
) *Service {
	return &Service{
		courses:    courses,
		categories: categories,
		teachers:   teachers,
		purchased:  purchased,
		validate:   validate,
	}
}

// Courses

func (svc *Service) Courses(ctx context.Context) ([]Course, error) {
	courses, err := svc.courses.QueryAllCourses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return normalizeCourses(courses), nil
}

func (svc *Service) Course(ctx context.Context, docID string) (Course, error) {
	course, err := svc.courses.GetCourse(ctx, docID)
	if err != nil {
		return Course{}, err
	}
	return course.Normalize(), nil
}

func (svc *Service) CoursesByLevel(ctx context.Context, level string) ([]Course, error) {
	courses, err := svc.courses.QueryCoursesByLevel(ctx, core.CleanString(level, true /* lower */))
	if err != nil {
		return nil, errors.Wrap(err, "querying courses by level")
	}
	return normalizeCourses(courses), nil
}

// Search returns the courses whose name or description contains term, ignoring case.
func (svc *Service) Search(ctx context.Context, term string) ([]Course, error) {
	courses, err := svc.courses.QueryAllCourses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	term = core.CleanString(term)
	found := make([]Course, 0, len(courses))
	for _, c := range courses {
		if term == "" || matchesTerm(c, term) {
			found = append(found, c.Normalize())
		}
	}
	return found, nil
}

// AvailableCourses returns every course the customer has not purchased.
func (svc *Service) AvailableCourses(ctx context.Context, customerID int) ([]Course, error) {
	courses, err := svc.courses.QueryAllCourses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	ids, err := svc.purchased.QueryPurchasedCourseIDs(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying purchased course ids")
	}
	available := make([]Course, 0, len(courses))
	for _, c := range courses {
		if !containsInt(ids, c.CourseID.Int()) {
			available = append(available, c.Normalize())
		}
	}
	return available, nil
}

// PurchasedCourses returns the courses the customer has purchased.
func (svc *Service) PurchasedCourses(ctx context.Context, customerID int) ([]Course, error) {
	ids, err := svc.purchased.QueryPurchasedCourseIDs(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying purchased course ids")
	}
	courses, err := svc.courses.QueryAllCourses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	purchased := make([]Course, 0, len(ids))
	for _, c := range courses {
		if containsInt(ids, c.CourseID.Int()) {
			purchased = append(purchased, c.Normalize())
		}
	}
	return purchased, nil
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	now := core.NowFunc().UTC()
	course := Course{
		CourseID:    core.FlexInt(nc.CourseID),
		Name:        nc.Name,
		Description: nc.Description,
		Price:       core.FlexInt(nc.Price),
		Duration:    core.FlexInt(nc.Duration),
		Capacity:    core.FlexInt(nc.Capacity),
		DayOfWeek:   nc.DayOfWeek,
		Time:        nc.Time,
		CategoryID:  core.FlexInt(nc.CategoryID),
		TeacherID:   core.FlexInt(nc.TeacherID),
		Level:       nc.Level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.courses.CreateCourse(ctx, course)
}

// Categories

func (svc *Service) Categories(ctx context.Context) ([]Category, error) {
	cats, err := svc.categories.QueryAllCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	for i := range cats {
		cats[i] = cats[i].Normalize()
	}
	return cats, nil
}

func (svc *Service) Category(ctx context.Context, docID string) (Category, error) {
	return svc.categories.GetCategory(ctx, docID)
}

func (svc *Service) CategoryByID(ctx context.Context, categoryID int) (Category, error) {
	return svc.categories.GetCategoryByID(ctx, categoryID)
}

func (svc *Service) CreateCategory(ctx context.Context, nc NewCategory) (Category, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Category{}, err
	}
	return svc.categories.CreateCategory(ctx, Category{
		CategoryID:   core.FlexInt(nc.CategoryID),
		Name:         nc.Name,
		CategoryName: nc.CategoryName,
	})
}

func (svc *Service) UpdateCategory(ctx context.Context, docID string, uc UpdateCategory) (Category, error) {
	cat, err := svc.categories.GetCategory(ctx, docID)
	if err != nil {
		return Category{}, err
	}
	if name := core.CleanString(uc.Name); name != "" {
		cat.Name = name
	}
	if name := core.CleanString(uc.CategoryName); name != "" {
		cat.CategoryName = name
	}
	return svc.categories.UpdateCategory(ctx, cat)
}

func (svc *Service) DeleteCategory(ctx context.Context, docID string) error {
	return svc.categories.DeleteCategory(ctx, docID)
}

// Teachers

func (svc *Service) Teachers(ctx context.Context) ([]Teacher, error) {
	teachers, err := svc.teachers.QueryAllTeachers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	for i := range teachers {
		teachers[i] = teachers[i].Normalize()
	}
	return teachers, nil
}

func (svc *Service) Teacher(ctx context.Context, docID string) (Teacher, error) {
	t, err := svc.teachers.GetTeacher(ctx, docID)
	if err != nil {
		return Teacher{}, err
	}
	return t.Normalize(), nil
}

func (svc *Service) CreateTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	if err := nt.Validate(svc.validate); err != nil {
		return Teacher{}, err
	}
	return svc.teachers.CreateTeacher(ctx, Teacher{
		TeacherID: core.FlexInt(nt.TeacherID),
		Name:      nt.Name,
		Bio:       nt.Bio,
	})
}

func (svc *Service) UpdateTeacher(ctx context.Context, docID string, ut UpdateTeacher) (Teacher, error) {
	t, err := svc.teachers.GetTeacher(ctx, docID)
	if err != nil {
		return Teacher{}, err
	}
	if name := core.CleanString(ut.Name); name != "" {
		t.Name = name
	}
	if bio := core.CleanString(ut.Bio); bio != "" {
		t.Bio = bio
	}
	return svc.teachers.UpdateTeacher(ctx, t)
}

func (svc *Service) DeleteTeacher(ctx context.Context, docID string) error {
	return svc.teachers.DeleteTeacher(ctx, docID)
}

func normalizeCourses(courses []Course) []Course {
	for i := range courses {
		courses[i] = courses[i].Normalize()
	}
	return courses
}
