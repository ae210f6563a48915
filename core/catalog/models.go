package catalog

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ericnguyen1274/Customer---App/core"
)

// Defaults applied to incomplete documents.
const (
	DefaultCourseName        = "Yoga Course"
	DefaultCourseDescription = "Learn yoga techniques and improve your wellness."
	DefaultDayOfWeek         = "Monday"
	DefaultTime              = "09:00 AM"
	DefaultTeacherName       = "Unknown Teacher"
	DefaultTeacherBio        = "No bio available"
	UnknownCategory          = "Unknown Category"
)

type Course struct {
	DocID       string       `json:"id,omitempty" bson:"-"`
	CourseID    core.FlexInt `json:"courseId" bson:"courseId"`
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description" bson:"description"`
	Price       core.FlexInt `json:"price" bson:"price"`
	Duration    core.FlexInt `json:"duration" bson:"duration"` // minutes
	Capacity    core.FlexInt `json:"capacity" bson:"capacity"`
	DayOfWeek   string       `json:"dayOfWeek" bson:"dayOfWeek"`
	Time        string       `json:"time" bson:"time"`
	CategoryID  core.FlexInt `json:"categoryId" bson:"categoryId"`
	TeacherID   core.FlexInt `json:"teacherId" bson:"teacherId"`
	Level       string       `json:"level,omitempty" bson:"level,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"` // UTC
}

func (c Course) GetName() string { return c.Name }

// Normalize fills the display defaults of missing fields.
func (c Course) Normalize() Course {
	if c.Name == "" {
		c.Name = DefaultCourseName
	}
	if c.Description == "" {
		c.Description = DefaultCourseDescription
	}
	if c.DayOfWeek == "" {
		c.DayOfWeek = DefaultDayOfWeek
	}
	if c.Time == "" {
		c.Time = DefaultTime
	}
	return c
}

type Category struct {
	DocID        string       `json:"id,omitempty" bson:"-"`
	CategoryID   core.FlexInt `json:"categoryId" bson:"categoryId"`
	Name         string       `json:"name" bson:"name"`
	CategoryName string       `json:"categoryName,omitempty" bson:"categoryName,omitempty"`
}

func (c Category) GetName() string { return c.Name }

// DisplayName prefers categoryName over name.
func (c Category) DisplayName() string {
	switch {
	case c.CategoryName != "":
		return c.CategoryName
	case c.Name != "":
		return c.Name
	}
	return UnknownCategory
}

// Normalize fills name and categoryName so that both are always displayable.
func (c Category) Normalize() Category {
	c.CategoryName = c.DisplayName()
	if c.Name == "" {
		c.Name = UnknownCategory
	}
	return c
}

type Teacher struct {
	DocID     string       `json:"id,omitempty" bson:"-"`
	TeacherID core.FlexInt `json:"teacherId" bson:"teacherId"`
	Name      string       `json:"name" bson:"name"`
	Bio       string       `json:"bio" bson:"bio"`
}

func (t Teacher) GetName() string { return t.Name }

func (t Teacher) Normalize() Teacher {
	if t.Name == "" {
		t.Name = DefaultTeacherName
	}
	if t.Bio == "" {
		t.Bio = DefaultTeacherBio
	}
	return t
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	CourseID    int    `json:"courseId" validate:"gte=0"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" validate:"gte=0"`
	Duration    int    `json:"duration" validate:"gt=0"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	DayOfWeek   string `json:"dayOfWeek" validate:"omitempty,weekday"`
	Time        string `json:"time" validate:"omitempty,clock"`
	CategoryID  int    `json:"categoryId" validate:"gte=0"`
	TeacherID   int    `json:"teacherId" validate:"gte=0"`
	Level       string `json:"level"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	nc.DayOfWeek = core.CleanString(nc.DayOfWeek)
	nc.Time = core.CleanString(nc.Time)
	nc.Level = core.CleanString(nc.Level, true /* lower */)
	return validate.Struct(nc)
}

// NewCategory contains information needed to create a new Category.
type NewCategory struct {
	CategoryID   int    `json:"categoryId" validate:"gt=0"`
	Name         string `json:"name" validate:"required"`
	CategoryName string `json:"categoryName"`
}

func (nc *NewCategory) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.CategoryName = core.CleanString(nc.CategoryName)
	return validate.Struct(nc)
}

// UpdateCategory defines what may be changed on a Category; empty fields are kept.
type UpdateCategory struct {
	Name         string `json:"name"`
	CategoryName string `json:"categoryName"`
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	TeacherID int    `json:"teacherId" validate:"gt=0"`
	Name      string `json:"name" validate:"required"`
	Bio       string `json:"bio"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Bio = core.CleanString(nt.Bio)
	return validate.Struct(nt)
}

// UpdateTeacher defines what may be changed on a Teacher; empty fields are kept.
type UpdateTeacher struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}
