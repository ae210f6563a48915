package view

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
	"github.com/ericnguyen1274/Customer---App/core/session"
)

type Tab string

const (
	TabMarket  Tab = "market"  // available courses
	TabMy      Tab = "my"      // purchased courses
	TabTeacher Tab = "teacher" // teachers
)

// datasets, as reported to metrics
const (
	datasetCategories = "categories"
	datasetCourses    = "courses"
	datasetPurchased  = "purchased"
	datasetTeachers   = "teachers"
	datasetPayments   = "payments"
)

var ErrInvalidTab = errors.New("invalid tab")

// ParseTab defaults to TabMarket.
func ParseTab(s string) (Tab, error) {
	switch tab := Tab(core.CleanString(s, true /* lower */)); tab {
	case "":
		return TabMarket, nil
	case TabMarket, TabMy, TabTeacher:
		return tab, nil
	}
	return "", ErrInvalidTab
}

type (
	// CatalogReader is what the Home view reads from.
	CatalogReader interface {
		Categories(ctx context.Context) ([]catalog.Category, error)
		Courses(ctx context.Context) ([]catalog.Course, error)
		AvailableCourses(ctx context.Context, customerID int) ([]catalog.Course, error)
		PurchasedCourses(ctx context.Context, customerID int) ([]catalog.Course, error)
		Teachers(ctx context.Context) ([]catalog.Teacher, error)
	}

	Purchaser interface {
		Purchase(ctx context.Context, sess session.Session, course catalog.Course) (purchase.Receipt, error)
	}

	// CourseItem is a course as displayed, annotated with its category.
	CourseItem struct {
		catalog.Course
		CategoryName  string `json:"categoryName"`
		PriceLabel    string `json:"priceLabel"`
		DurationLabel string `json:"durationLabel"`
		Purchased     bool   `json:"purchased"`
	}

	HomeSnapshot struct {
		Tab        Tab                        `json:"tab"`
		Search     string                     `json:"search"`
		Categories Dataset[catalog.Category]  `json:"categories"`
		Courses    Dataset[CourseItem]        `json:"courses"`   // available
		MyCourses  Dataset[CourseItem]        `json:"myCourses"` // purchased
		Teachers   Dataset[catalog.Teacher]   `json:"teachers"`
		// the active tab's list narrowed to the search
		CourseResults  []CourseItem      `json:"courseResults,omitempty"`
		TeacherResults []catalog.Teacher `json:"teacherResults,omitempty"`
	}

	homeState struct {
		categories Dataset[catalog.Category]
		available  Dataset[catalog.Course]
		purchased  Dataset[catalog.Course]
		teachers   Dataset[catalog.Teacher]
	}

	// Home is the view model of the catalog screen of one client.
	Home struct {
		catalog      CatalogReader
		purchases    Purchaser
		logger       core.Logger
		metrics      core.Metrics
		placeholders bool

		gen   generation
		mu    sync.RWMutex
		state homeState
		tab   Tab
		query string
	}
)

func NewHome(cat CatalogReader, purchases Purchaser, conf *core.Config, logger core.Logger, metrics core.Metrics) *Home {
	return &Home{
		catalog:      cat,
		purchases:    purchases,
		logger:       logger,
		metrics:      metrics,
		placeholders: conf.View.Placeholders,
		tab:          TabMarket,
		state: homeState{
			categories: loading[catalog.Category](),
			available:  loading[catalog.Course](),
			purchased:  loading[catalog.Course](),
			teachers:   loading[catalog.Teacher](),
		},
	}
}

// Load fetches categories, courses, purchased courses and teachers one after the other.
// Each fetch fails on its own and degrades only its dataset. When a newer Load started
// meanwhile, the results are discarded and ErrStale is returned.
func (h *Home) Load(ctx context.Context, sess session.Session) (HomeSnapshot, error) {
	token := h.gen.next()
	start := time.Now()

	var st homeState
	customerID, identified := sess.CustomerID()

	if cats, err := h.catalog.Categories(ctx); err != nil {
		h.degrade(datasetCategories, err, sess)
		st.categories = degraded(pick(h.placeholders, placeholderCategories))
	} else {
		st.categories = loaded(cats)
	}

	var courses []catalog.Course
	var err error
	if identified {
		courses, err = h.catalog.AvailableCourses(ctx, customerID)
	} else {
		courses, err = h.catalog.Courses(ctx)
	}
	if err != nil {
		h.degrade(datasetCourses, err, sess)
		st.available = degraded(pick(h.placeholders, placeholderCourses))
	} else {
		st.available = loaded(courses)
	}

	if !identified {
		st.purchased = loaded[catalog.Course](nil)
	} else if purchased, err := h.catalog.PurchasedCourses(ctx, customerID); err != nil {
		h.degrade(datasetPurchased, err, sess)
		st.purchased = degraded[catalog.Course](nil)
	} else {
		st.purchased = loaded(purchased)
	}

	if teachers, err := h.catalog.Teachers(ctx); err != nil {
		h.degrade(datasetTeachers, err, sess)
		st.teachers = degraded(pick(h.placeholders, placeholderTeachers))
	} else {
		st.teachers = loaded(teachers)
	}

	if err := h.gen.commit(token, func() {
		h.mu.Lock()
		h.state = st
		h.mu.Unlock()
	}); err != nil {
		return HomeSnapshot{}, err
	}
	h.metrics.ObserveViewLoad("home", time.Since(start))
	return h.Snapshot(), nil
}

// Refresh is Load.
func (h *Home) Refresh(ctx context.Context, sess session.Session) (HomeSnapshot, error) {
	return h.Load(ctx, sess)
}

func (h *Home) degrade(dataset string, err error, sess session.Session) {
	h.metrics.ViewDegraded(dataset)
	h.logger.Error("loading "+dataset, err, sess.Identity)
}

func (h *Home) SetTab(tab Tab) {
	h.mu.Lock()
	h.tab = tab
	h.mu.Unlock()
}

func (h *Home) SetSearch(query string) {
	h.mu.Lock()
	h.query = query
	h.mu.Unlock()
}

// Snapshot renders the current state. Courses are annotated with the categories
// loaded at render time.
func (h *Home) Snapshot() HomeSnapshot {
	h.mu.RLock()
	st, tab, query := h.state, h.tab, h.query
	h.mu.RUnlock()

	snap := HomeSnapshot{
		Tab:        tab,
		Search:     query,
		Categories: st.categories,
		Courses:    renderCourses(st.available, st.categories.Items, false),
		MyCourses:  renderCourses(st.purchased, st.categories.Items, true),
		Teachers:   st.teachers,
	}
	switch tab {
	case TabMy:
		snap.CourseResults = catalog.FilterByName(snap.MyCourses.Items, query)
	case TabTeacher:
		snap.TeacherResults = catalog.FilterByName(snap.Teachers.Items, query)
	default:
		snap.CourseResults = catalog.FilterByName(snap.Courses.Items, query)
	}
	return snap
}

func renderCourses(ds Dataset[catalog.Course], categories []catalog.Category, purchased bool) Dataset[CourseItem] {
	items := make([]CourseItem, 0, len(ds.Items))
	for _, c := range ds.Items {
		items = append(items, renderCourse(c, categories, purchased))
	}
	return Dataset[CourseItem]{State: ds.State, Items: items, Placeholder: ds.Placeholder}
}

func renderCourse(c catalog.Course, categories []catalog.Category, purchased bool) CourseItem {
	c = c.Normalize()
	if purchased {
		c.Price = 0
	}
	return CourseItem{
		Course:        c,
		CategoryName:  catalog.ResolveCategoryName(categories, c.CategoryID.Int()),
		PriceLabel:    FormatPrice(c.Price.Int()),
		DurationLabel: FormatDuration(c.Duration.Int()),
		Purchased:     purchased,
	}
}

// Purchase buys course for sess and reloads the lists.
func (h *Home) Purchase(ctx context.Context, sess session.Session, course catalog.Course) (purchase.Receipt, HomeSnapshot, error) {
	receipt, err := h.purchases.Purchase(ctx, sess, course)
	if err != nil {
		return purchase.Receipt{}, h.Snapshot(), err
	}
	snap, err := h.Refresh(ctx, sess)
	if err == ErrStale {
		return receipt, h.Snapshot(), nil
	}
	return receipt, snap, err
}
