package docrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/enrollment"
)

type enrollmentRepository struct {
	db core.DocStore
}

var _ enrollment.Repository = (*enrollmentRepository)(nil)

func NewEnrollmentRepository(db core.DocStore) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	e.ID = ""
	id, err := repo.db.Add(ctx, core.CollectionEnrollments, e)
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "adding enrollment")
	}
	e.ID = id
	return e, nil
}

func (repo *enrollmentRepository) GetEnrollment(ctx context.Context, enrollmentID string) (enrollment.Enrollment, error) {
	snap, err := repo.db.Get(ctx, core.CollectionEnrollments, enrollmentID)
	if err != nil {
		return enrollment.Enrollment{}, notFound(errors.Wrap(err, "getting enrollment"), enrollment.ErrNotFound)
	}
	return decodeEnrollment(snap)
}

func decodeEnrollment(snap core.Snapshot) (enrollment.Enrollment, error) {
	var e enrollment.Enrollment
	if err := snap.DataTo(&e); err != nil {
		return enrollment.Enrollment{}, err
	}
	e.ID = snap.ID()
	return e, nil
}

func (repo *enrollmentRepository) QueryActiveEnrollments(ctx context.Context, userID string) ([]enrollment.Enrollment, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionEnrollments,
		core.Where("userId", userID),
		core.Where("status", enrollment.StatusActive),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	return decodeAll(core.CollectionEnrollments, snaps, decodeEnrollment)
}

func (repo *enrollmentRepository) UpdateProgress(ctx context.Context, enrollmentID string, progress int, status string, at time.Time) error {
	err := repo.db.Update(ctx, core.CollectionEnrollments, enrollmentID, map[string]interface{}{
		"progress":  progress,
		"status":    status,
		"updatedAt": at,
	})
	return notFound(errors.Wrap(err, "updating enrollment"), enrollment.ErrNotFound)
}

func (repo *enrollmentRepository) CreateProgress(ctx context.Context, p enrollment.Progress) (enrollment.Progress, error) {
	p.ID = ""
	id, err := repo.db.Add(ctx, core.CollectionProgress, p)
	if err != nil {
		return enrollment.Progress{}, errors.Wrap(err, "adding progress")
	}
	p.ID = id
	return p, nil
}

func (repo *enrollmentRepository) QueryProgress(ctx context.Context, userID string, courseID int) ([]enrollment.Progress, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionProgress,
		core.Where("userId", userID),
		core.Where("courseId", courseID),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying progress")
	}
	return decodeAll(core.CollectionProgress, snaps, func(snap core.Snapshot) (enrollment.Progress, error) {
		var p enrollment.Progress
		if err := snap.DataTo(&p); err != nil {
			return enrollment.Progress{}, err
		}
		p.ID = snap.ID()
		return p, nil
	})
}
