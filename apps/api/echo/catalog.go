package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
	"github.com/ericnguyen1274/Customer---App/core/view"
)

type PurchaseResponse struct {
	Receipt purchase.Receipt  `json:"receipt"`
	Home    view.HomeSnapshot `json:"home"`
}

type catalogApi struct {
	catalog   *catalog.Service
	purchases *purchase.Service
	conf      *core.Config
	logger    core.Logger
	metrics   core.Metrics
}

func registerCatalogAPI(g *echo.Group, auth *auth, deps ServerDeps) {
	api := catalogApi{
		catalog:   deps.CatalogSvc,
		purchases: deps.PurchaseSvc,
		conf:      deps.Conf,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
	}

	g.GET("/home", api.home)
	g.GET("/categories", api.queryCategories)
	g.GET("/teachers", api.queryTeachers)

	cg := g.Group("/courses")
	cg.GET("", api.queryCourses)
	cg.GET("/search", api.searchCourses)
	cg.GET("/:id", api.retrieveCourse)
	cg.POST("/:id/purchase", api.purchase, auth.required())
}

// newHome returns the view model of one request; views hold per-client state.
func (api *catalogApi) newHome() *view.Home {
	return view.NewHome(api.catalog, api.purchases, api.conf, api.logger, api.metrics)
}

// Handlers

func (api *catalogApi) home(ctx echo.Context) error {
	tab, err := view.ParseTab(ctx.QueryParam("tab"))
	if err != nil {
		return err
	}
	h := api.newHome()
	h.SetTab(tab)
	h.SetSearch(ctx.QueryParam("search"))

	snap, err := h.Load(ctx.Request().Context(), contextSession(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *catalogApi) queryCourses(ctx echo.Context) error {
	var (
		courses []catalog.Course
		err     error
	)
	if level := ctx.QueryParam("level"); level != "" {
		courses, err = api.catalog.CoursesByLevel(ctx.Request().Context(), level)
	} else {
		courses, err = api.catalog.Courses(ctx.Request().Context())
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) searchCourses(ctx echo.Context) error {
	courses, err := api.catalog.Search(ctx.Request().Context(), ctx.QueryParam("q"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) retrieveCourse(ctx echo.Context) error {
	course, err := api.catalog.Course(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *catalogApi) queryCategories(ctx echo.Context) error {
	cats, err := api.catalog.Categories(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (api *catalogApi) queryTeachers(ctx echo.Context) error {
	teachers, err := api.catalog.Teachers(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *catalogApi) purchase(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	course, err := api.catalog.Course(reqCtx, ctx.Param("id"))
	if err != nil {
		return err
	}
	receipt, snap, err := api.newHome().Purchase(reqCtx, contextSession(ctx), course)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, PurchaseResponse{Receipt: receipt, Home: snap})
}
