package docrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
)

type (
	courseRepository struct {
		db core.DocStore
	}
	categoryRepository struct {
		db core.DocStore
	}
	teacherRepository struct {
		db core.DocStore
	}
)

var (
	_ catalog.CourseRepository   = (*courseRepository)(nil)
	_ catalog.CategoryRepository = (*categoryRepository)(nil)
	_ catalog.TeacherRepository  = (*teacherRepository)(nil)
)

func NewCourseRepository(db core.DocStore) catalog.CourseRepository {
	return &courseRepository{db: db}
}

func NewCategoryRepository(db core.DocStore) catalog.CategoryRepository {
	return &categoryRepository{db: db}
}

func NewTeacherRepository(db core.DocStore) catalog.TeacherRepository {
	return &teacherRepository{db: db}
}

// Courses

func decodeCourse(snap core.Snapshot) (catalog.Course, error) {
	var c catalog.Course
	if err := snap.DataTo(&c); err != nil {
		return catalog.Course{}, err
	}
	c.DocID = snap.ID()
	return c, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]catalog.Course, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionCourses)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return decodeAll(core.CollectionCourses, snaps, decodeCourse)
}

func (repo *courseRepository) GetCourse(ctx context.Context, docID string) (catalog.Course, error) {
	snap, err := repo.db.Get(ctx, core.CollectionCourses, docID)
	if err != nil {
		return catalog.Course{}, notFound(errors.Wrap(err, "getting course"), catalog.ErrCourseNotFound)
	}
	return decodeCourse(snap)
}

func (repo *courseRepository) CreateCourse(ctx context.Context, course catalog.Course) (catalog.Course, error) {
	course.DocID = ""
	id, err := repo.db.Add(ctx, core.CollectionCourses, course)
	if err != nil {
		return catalog.Course{}, errors.Wrap(err, "adding course")
	}
	course.DocID = id
	return course, nil
}

func (repo *courseRepository) QueryCoursesByLevel(ctx context.Context, level string) ([]catalog.Course, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionCourses, core.Where("level", level))
	if err != nil {
		return nil, errors.Wrap(err, "querying courses by level")
	}
	return decodeAll(core.CollectionCourses, snaps, decodeCourse)
}

// Categories

func decodeCategory(snap core.Snapshot) (catalog.Category, error) {
	var c catalog.Category
	if err := snap.DataTo(&c); err != nil {
		return catalog.Category{}, err
	}
	c.DocID = snap.ID()
	return c, nil
}

func (repo *categoryRepository) QueryAllCategories(ctx context.Context) ([]catalog.Category, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionCategories)
	if err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	return decodeAll(core.CollectionCategories, snaps, decodeCategory)
}

func (repo *categoryRepository) GetCategory(ctx context.Context, docID string) (catalog.Category, error) {
	snap, err := repo.db.Get(ctx, core.CollectionCategories, docID)
	if err != nil {
		return catalog.Category{}, notFound(errors.Wrap(err, "getting category"), catalog.ErrCategoryNotFound)
	}
	return decodeCategory(snap)
}

func (repo *categoryRepository) GetCategoryByID(ctx context.Context, categoryID int) (catalog.Category, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionCategories, core.Where("categoryId", categoryID))
	if err != nil {
		return catalog.Category{}, errors.Wrap(err, "querying categories by id")
	}
	if len(snaps) == 0 {
		return catalog.Category{}, catalog.ErrCategoryNotFound
	}
	return decodeCategory(snaps[0])
}

func (repo *categoryRepository) CreateCategory(ctx context.Context, cat catalog.Category) (catalog.Category, error) {
	cat.DocID = ""
	id, err := repo.db.Add(ctx, core.CollectionCategories, cat)
	if err != nil {
		return catalog.Category{}, errors.Wrap(err, "adding category")
	}
	cat.DocID = id
	return cat, nil
}

func (repo *categoryRepository) UpdateCategory(ctx context.Context, cat catalog.Category) (catalog.Category, error) {
	err := repo.db.Update(ctx, core.CollectionCategories, cat.DocID, map[string]interface{}{
		"categoryId":   cat.CategoryID,
		"name":         cat.Name,
		"categoryName": cat.CategoryName,
	})
	if err != nil {
		return catalog.Category{}, notFound(errors.Wrap(err, "updating category"), catalog.ErrCategoryNotFound)
	}
	return cat, nil
}

func (repo *categoryRepository) DeleteCategory(ctx context.Context, docID string) error {
	return errors.Wrap(repo.db.Delete(ctx, core.CollectionCategories, docID), "deleting category")
}

// Teachers

func decodeTeacher(snap core.Snapshot) (catalog.Teacher, error) {
	var t catalog.Teacher
	if err := snap.DataTo(&t); err != nil {
		return catalog.Teacher{}, err
	}
	t.DocID = snap.ID()
	return t, nil
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]catalog.Teacher, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionTeachers)
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	return decodeAll(core.CollectionTeachers, snaps, decodeTeacher)
}

func (repo *teacherRepository) GetTeacher(ctx context.Context, docID string) (catalog.Teacher, error) {
	snap, err := repo.db.Get(ctx, core.CollectionTeachers, docID)
	if err != nil {
		return catalog.Teacher{}, notFound(errors.Wrap(err, "getting teacher"), catalog.ErrTeacherNotFound)
	}
	return decodeTeacher(snap)
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, t catalog.Teacher) (catalog.Teacher, error) {
	t.DocID = ""
	id, err := repo.db.Add(ctx, core.CollectionTeachers, t)
	if err != nil {
		return catalog.Teacher{}, errors.Wrap(err, "adding teacher")
	}
	t.DocID = id
	return t, nil
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, t catalog.Teacher) (catalog.Teacher, error) {
	err := repo.db.Update(ctx, core.CollectionTeachers, t.DocID, map[string]interface{}{
		"teacherId": t.TeacherID,
		"name":      t.Name,
		"bio":       t.Bio,
	})
	if err != nil {
		return catalog.Teacher{}, notFound(errors.Wrap(err, "updating teacher"), catalog.ErrTeacherNotFound)
	}
	return t, nil
}

func (repo *teacherRepository) DeleteTeacher(ctx context.Context, docID string) error {
	return errors.Wrap(repo.db.Delete(ctx, core.CollectionTeachers, docID), "deleting teacher")
}
