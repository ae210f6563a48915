package enrollment

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
)

// Statuses
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusDropped   = "dropped"
)

var (
	// errors
	ErrNotFound         = errors.New("enrollment not found")
	ErrProgressNotFound = errors.New("progress not found")
)

type (
	Enrollment struct {
		ID         string       `json:"id,omitempty" bson:"-"`
		UserID     string       `json:"userId" bson:"userId"`
		CourseID   core.FlexInt `json:"courseId" bson:"courseId"`
		EnrolledAt time.Time    `json:"enrolledAt" bson:"enrolledAt"` // UTC
		Status     string       `json:"status" bson:"status"`
		Progress   core.FlexInt `json:"progress" bson:"progress"` // 0..100
		UpdatedAt  time.Time    `json:"updatedAt" bson:"updatedAt"` // UTC
	}

	Progress struct {
		ID        string       `json:"id,omitempty" bson:"-"`
		UserID    string       `json:"userId" bson:"userId"`
		CourseID  core.FlexInt `json:"courseId" bson:"courseId"`
		Lesson    string       `json:"lesson" bson:"lesson"`
		Percent   core.FlexInt `json:"percent" bson:"percent"`
		Notes     string       `json:"notes" bson:"notes"`
		Timestamp time.Time    `json:"timestamp" bson:"timestamp"` // UTC
	}

	NewEnrollment struct {
		UserID   string `json:"userId" validate:"required"`
		CourseID int    `json:"courseId" validate:"gt=0"`
	}

	UpdateProgress struct {
		Progress int `json:"progress" validate:"gte=0,lte=100"`
	}

	NewProgress struct {
		UserID   string `json:"userId" validate:"required"`
		CourseID int    `json:"courseId" validate:"gt=0"`
		Lesson   string `json:"lesson"`
		Percent  int    `json:"percent" validate:"gte=0,lte=100"`
		Notes    string `json:"notes"`
	}

	Repository interface {
		CreateEnrollment(ctx context.Context, e Enrollment) (Enrollment, error)
		GetEnrollment(ctx context.Context, enrollmentID string) (Enrollment, error)
		QueryActiveEnrollments(ctx context.Context, userID string) ([]Enrollment, error)
		// UpdateProgress sets the progress of an enrollment, completing it at 100.
		UpdateProgress(ctx context.Context, enrollmentID string, progress int, status string, at time.Time) error
		CreateProgress(ctx context.Context, p Progress) (Progress, error)
		QueryProgress(ctx context.Context, userID string, courseID int) ([]Progress, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Enroll starts an active enrollment with no progress.
func (svc *Service) Enroll(ctx context.Context, ne NewEnrollment) (Enrollment, error) {
	ne.UserID = core.CleanString(ne.UserID)
	if err := svc.validate.Struct(ne); err != nil {
		return Enrollment{}, err
	}
	now := core.NowFunc().UTC()
	e, err := svc.repo.CreateEnrollment(ctx, Enrollment{
		UserID:     ne.UserID,
		CourseID:   core.FlexInt(ne.CourseID),
		EnrolledAt: now,
		Status:     StatusActive,
		Progress:   0,
		UpdatedAt:  now,
	})
	return e, errors.Wrap(err, "creating enrollment")
}

func (svc *Service) ActiveEnrollments(ctx context.Context, userID string) ([]Enrollment, error) {
	enrollments, err := svc.repo.QueryActiveEnrollments(ctx, core.CleanString(userID))
	return enrollments, errors.Wrap(err, "querying active enrollments")
}

// UpdateProgress sets the progress of one of userID's enrollments; enrollments of other
// users are reported as ErrNotFound.
func (svc *Service) UpdateProgress(ctx context.Context, userID, enrollmentID string, up UpdateProgress) error {
	if err := svc.validate.Struct(up); err != nil {
		return err
	}
	e, err := svc.repo.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if e.UserID != core.CleanString(userID) {
		return ErrNotFound
	}
	status := StatusActive
	if up.Progress == 100 {
		status = StatusCompleted
	}
	return svc.repo.UpdateProgress(ctx, enrollmentID, up.Progress, status, core.NowFunc().UTC())
}

func (svc *Service) SaveProgress(ctx context.Context, np NewProgress) (Progress, error) {
	np.UserID = core.CleanString(np.UserID)
	np.Lesson = core.CleanString(np.Lesson)
	np.Notes = core.CleanString(np.Notes)
	if err := svc.validate.Struct(np); err != nil {
		return Progress{}, err
	}
	p, err := svc.repo.CreateProgress(ctx, Progress{
		UserID:    np.UserID,
		CourseID:  core.FlexInt(np.CourseID),
		Lesson:    np.Lesson,
		Percent:   core.FlexInt(np.Percent),
		Notes:     np.Notes,
		Timestamp: core.NowFunc().UTC(),
	})
	return p, errors.Wrap(err, "creating progress")
}

// LatestProgress returns the most recent progress of a user on a course.
func (svc *Service) LatestProgress(ctx context.Context, userID string, courseID int) (Progress, error) {
	entries, err := svc.repo.QueryProgress(ctx, core.CleanString(userID), courseID)
	if err != nil {
		return Progress{}, errors.Wrap(err, "querying progress")
	}
	if len(entries) == 0 {
		return Progress{}, ErrProgressNotFound
	}
	latest := entries[0]
	for _, p := range entries[1:] {
		if p.Timestamp.After(latest.Timestamp) {
			latest = p
		}
	}
	return latest, nil
}
