package api

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"laptops/internal/engine"
	"laptops/internal/metrics"
	"laptops/internal/models"
)

const (
	modeFast   = "fast"
	modeLinear = "linear"
)

type Handler struct {
	inv     atomic.Pointer[engine.Inventory]
	metrics *metrics.Metrics
}

// NewHandler accepts a nil inventory; until SetInventory is called every
// query answers 503.
func NewHandler(inv *engine.Inventory, m *metrics.Metrics) *Handler {
	h := &Handler{metrics: m}
	if inv != nil {
		h.SetInventory(inv)
	}
	return h
}

// SetInventory publishes a loaded inventory to the live API.
func (h *Handler) SetInventory(inv *engine.Inventory) {
	h.inv.Store(inv)
	if h.metrics != nil {
		h.metrics.InventoryRecords.Set(float64(inv.Len()))
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	if h.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))
	}

	api := e.Group("/api", h.requireInventory)
	api.GET("/header", h.GetHeader)
	api.GET("/laptops", h.FindBySpecifications)
	api.GET("/laptops/:id", h.GetLaptop)
	api.GET("/promotions/:amount", h.CheckPromotion)
	api.GET("/budget/best", h.BestWithinBudget)
	api.GET("/budget/range", h.WithinBudgetRange)
}

// --- MIDDLEWARE ---

func (h *Handler) requireInventory(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.inv.Load() == nil {
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "inventory is loading"})
		}
		return next(c)
	}
}

// CountRequests feeds http_requests_total.
func CountRequests(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
			return err
		}
	}
}

// --- HANDLERS ---

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func paginate(data []*models.Laptop, limit, offset int) []*models.Laptop {
	if offset >= len(data) {
		return []*models.Laptop{}
	}
	// offset+limit can overflow for huge limits; compare against what is left
	if limit > len(data)-offset {
		limit = len(data) - offset
	}
	return data[offset : offset+limit]
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msg})
}

func queryMode(c echo.Context) (string, bool) {
	switch mode := c.QueryParam("mode"); mode {
	case "", modeFast:
		return modeFast, true
	case modeLinear:
		return modeLinear, true
	default:
		return mode, false
	}
}

func (h *Handler) observe(op string, start time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveQuery(op, time.Since(start))
	}
}

func (h *Handler) Health(c echo.Context) error {
	inv := h.inv.Load()
	if inv == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"status": "up", "records": inv.Len()})
}

func (h *Handler) GetHeader(c echo.Context) error {
	return c.JSON(http.StatusOK, h.inv.Load().Header())
}

// GET /api/laptops/:id?mode=fast|linear
func (h *Handler) GetLaptop(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be an integer")
	}
	mode, ok := queryMode(c)
	if !ok {
		return badRequest(c, "unknown mode "+strconv.Quote(mode))
	}

	inv := h.inv.Load()
	start := time.Now()
	var l *models.Laptop
	var found bool
	if mode == modeLinear {
		l, found = inv.GetByID(id)
		h.observe(metrics.OpGetByID, start)
	} else {
		l, found = inv.GetByIDFast(id)
		h.observe(metrics.OpGetByIDFast, start)
	}

	if !found {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "laptop " + strconv.Itoa(id) + " not found"})
	}
	return c.JSON(http.StatusOK, models.LookupResult{Mode: mode, Laptop: l})
}

// GET /api/promotions/:amount?mode=fast|linear
func (h *Handler) CheckPromotion(c echo.Context) error {
	amount, err := strconv.Atoi(c.Param("amount"))
	if err != nil {
		return badRequest(c, "amount must be an integer")
	}
	mode, ok := queryMode(c)
	if !ok {
		return badRequest(c, "unknown mode "+strconv.Quote(mode))
	}

	inv := h.inv.Load()
	start := time.Now()
	var eligible bool
	if mode == modeLinear {
		eligible = inv.HasPromotionPrice(amount)
		h.observe(metrics.OpHasPromotion, start)
	} else {
		eligible = inv.HasPromotionPriceFast(amount)
		h.observe(metrics.OpHasPromotionFast, start)
	}

	return c.JSON(http.StatusOK, models.PromotionResult{Amount: amount, Mode: mode, Eligible: eligible})
}

// GET /api/budget/best?budget=N
func (h *Handler) BestWithinBudget(c echo.Context) error {
	budget, err := strconv.Atoi(c.QueryParam("budget"))
	if err != nil {
		return badRequest(c, "budget must be an integer")
	}

	start := time.Now()
	best, n := h.inv.Load().BestWithinBudget(budget)
	h.observe(metrics.OpBestWithinBudget, start)

	return c.JSON(http.StatusOK, models.BudgetResult{Budget: budget, Affordable: n, Laptop: best})
}

// GET /api/budget/range?min=&max=&limit=&offset=
func (h *Handler) WithinBudgetRange(c echo.Context) error {
	lo, err := strconv.Atoi(c.QueryParam("min"))
	if err != nil {
		return badRequest(c, "min must be an integer")
	}
	hi, err := strconv.Atoi(c.QueryParam("max"))
	if err != nil {
		return badRequest(c, "max must be an integer")
	}

	start := time.Now()
	data := h.inv.Load().WithinBudgetRange(lo, hi)
	h.observe(metrics.OpWithinBudgetRange, start)

	limit, offset := getPaginationParams(c, len(data))
	return c.JSON(http.StatusOK, models.RangeResult{
		Min:   lo,
		Max:   hi,
		Count: len(data),
		Data:  paginate(data, limit, offset),
	})
}

// GET /api/laptops?cpu=&ram=&storage=&graphics=&limit=&offset=
func (h *Handler) FindBySpecifications(c echo.Context) error {
	raw := make(map[string]string)
	for k, v := range c.QueryParams() {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	criteria := models.ParseCriteria(raw)

	start := time.Now()
	data := h.inv.Load().FindBySpecifications(criteria)
	h.observe(metrics.OpFindBySpecification, start)

	total := len(data)
	limit, offset := getPaginationParams(c, total)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   paginate(data, limit, offset),
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
