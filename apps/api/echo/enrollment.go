package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/enrollment"
)

var errCourseIDParam = core.NewValidationError(errors.New("invalid course_id"),
	core.FieldError{Field: "course_id", Error: "course_id must be a positive number"})

type enrollmentApi struct {
	svc *enrollment.Service
}

// registerEnrollmentAPI mounts the enrollment routes; they all act on the session's own user.
func registerEnrollmentAPI(g *echo.Group, auth *auth, svc *enrollment.Service) {
	api := enrollmentApi{svc: svc}

	eg := g.Group("/enrollments", auth.required())
	eg.POST("", api.enroll)
	eg.GET("", api.queryActive)
	eg.PUT("/:id/progress", api.updateProgress)

	pg := g.Group("/progress", auth.required())
	pg.POST("", api.saveProgress)
	pg.GET("", api.latestProgress)
}

// Handlers

func (api *enrollmentApi) enroll(ctx echo.Context) error {
	var data enrollment.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	data.UserID = contextSession(ctx).Identity.ID
	e, err := api.svc.Enroll(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *enrollmentApi) queryActive(ctx echo.Context) error {
	enrollments, err := api.svc.ActiveEnrollments(ctx.Request().Context(), contextSession(ctx).Identity.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *enrollmentApi) updateProgress(ctx echo.Context) error {
	var data enrollment.UpdateProgress
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProgress")
	}
	if err := api.svc.UpdateProgress(ctx.Request().Context(), contextSession(ctx).Identity.ID, ctx.Param("id"), data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *enrollmentApi) saveProgress(ctx echo.Context) error {
	var data enrollment.NewProgress
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProgress")
	}
	data.UserID = contextSession(ctx).Identity.ID
	p, err := api.svc.SaveProgress(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *enrollmentApi) latestProgress(ctx echo.Context) error {
	courseID, err := strconv.Atoi(ctx.QueryParam("course_id"))
	if err != nil || courseID <= 0 {
		return errCourseIDParam
	}
	p, err := api.svc.LatestProgress(ctx.Request().Context(), contextSession(ctx).Identity.ID, courseID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}
