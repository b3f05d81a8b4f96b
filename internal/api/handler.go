package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-quake-dashboard/internal/config"
	"github.com/mr1hm/go-quake-dashboard/internal/ingestion"
	"github.com/mr1hm/go-quake-dashboard/internal/models"
	"github.com/mr1hm/go-quake-dashboard/internal/observability"
	"github.com/mr1hm/go-quake-dashboard/internal/query"
)

const maxTopN = 1000

// Handler serves the dashboard queries over one loaded dataset. The table
// is read-only, so concurrent requests share it without locking.
type Handler struct {
	dataset *ingestion.Dataset
	cfg     config.DashboardConfig
	metrics *observability.Metrics
}

func NewHandler(dataset *ingestion.Dataset, cfg config.DashboardConfig, metrics *observability.Metrics) *Handler {
	return &Handler{
		dataset: dataset,
		cfg:     cfg,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	api.GET("/dataset", h.getDataset)
	api.GET("/stats", h.getStats)
	api.GET("/events", h.getEvents)
	api.GET("/frequency/yearly", h.getYearlyFrequency)
	api.GET("/top", h.getTop)
	api.GET("/histogram", h.getHistogram)
	api.GET("/options", h.getOptions)
	api.GET("/dashboard", h.getDashboard)

	r.GET("/charts/magnitude.png", h.magnitudeChart)
	r.GET("/charts/yearly.png", h.yearlyChart)

	r.GET("/export/events.csv", h.exportCSV)
	r.GET("/export/events.xlsx", h.exportXLSX)
}

func (h *Handler) table() *models.EventTable {
	return h.dataset.Table
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getDataset(c *gin.Context) {
	t := h.table()
	resp := gin.H{
		"source":    h.dataset.Source,
		"rows":      t.Len(),
		"skipped":   h.dataset.Skipped,
		"loaded_at": h.dataset.LoadedAt.UTC().Format(time.RFC3339),
	}
	if lo, hi, ok := t.YearRange(); ok {
		resp["years"] = gin.H{"min": lo, "max": hi}
	}
	if lo, hi, ok := t.MagnitudeRange(); ok {
		resp["magnitude"] = gin.H{"min": lo, "max": hi}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getStats(c *gin.Context) {
	defer h.metrics.ObserveQuery("stats", time.Now())

	year, err := queryInt(c, "year", query.LatestYear(h.table()))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, query.SummaryStats(h.table(), year))
}

func (h *Handler) getEvents(c *gin.Context) {
	defer h.metrics.ObserveQuery("events", time.Now())

	p, err := parseEventsParams(c, h.table())
	if err != nil {
		badRequest(c, err)
		return
	}

	coords := query.FilterEvents(h.table(), p.Month, p.Year, p.MinMagnitude, p.Region)
	body, err := pointsGeoJSON(coords)
	if err != nil {
		internalError(c, "failed to encode events", err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

func (h *Handler) getYearlyFrequency(c *gin.Context) {
	defer h.metrics.ObserveQuery("yearly", time.Now())

	table, err := h.regionTable(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, query.YearlyFrequency(table))
}

func (h *Handler) getTop(c *gin.Context) {
	defer h.metrics.ObserveQuery("top", time.Now())

	p, err := parseTopParams(c, h.table(), h.cfg.DefaultTopN)
	if err != nil {
		badRequest(c, err)
		return
	}

	events := query.TopNByMagnitude(h.table(), p.StartMonth, p.StartYear, p.EndMonth, p.EndYear, p.N)
	if c.Query("format") == "geojson" {
		body, err := eventsGeoJSON(events)
		if err != nil {
			internalError(c, "failed to encode events", err)
			return
		}
		c.Data(http.StatusOK, "application/geo+json", body)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) getHistogram(c *gin.Context) {
	defer h.metrics.ObserveQuery("histogram", time.Now())

	table, err := h.regionTable(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	bins, err := queryInt(c, "bins", h.cfg.HistogramBins)
	if err != nil {
		badRequest(c, err)
		return
	}
	if bins < 1 || bins > 500 {
		badRequest(c, &paramError{"bins", "must be between 1 and 500"})
		return
	}
	c.JSON(http.StatusOK, query.MagnitudeHistogram(table, bins))
}

func (h *Handler) getOptions(c *gin.Context) {
	defer h.metrics.ObserveQuery("options", time.Now())

	table, err := h.regionTable(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, query.SelectorOptions(table))
}

// getDashboard answers every panel query for one set of selections.
func (h *Handler) getDashboard(c *gin.Context) {
	defer h.metrics.ObserveQuery("dashboard", time.Now())

	t := h.table()
	year, err := queryInt(c, "stats_year", query.LatestYear(t))
	if err != nil {
		badRequest(c, err)
		return
	}
	ep, err := parseEventsParams(c, t)
	if err != nil {
		badRequest(c, err)
		return
	}
	tp, err := parseTopParams(c, t, h.cfg.DefaultTopN)
	if err != nil {
		badRequest(c, err)
		return
	}

	yearlyScope := t
	if ep.Region != nil {
		yearlyScope = ep.Region.Apply(t)
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":  query.SummaryStats(t, year),
		"events": query.FilterEvents(t, ep.Month, ep.Year, ep.MinMagnitude, ep.Region),
		"yearly": query.YearlyFrequency(yearlyScope),
		"top":    query.TopNByMagnitude(t, tp.StartMonth, tp.StartYear, tp.EndMonth, tp.EndYear, tp.N),
	})
}

func (h *Handler) regionTable(c *gin.Context) (*models.EventTable, error) {
	region, err := queryRegion(c)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return h.table(), nil
	}
	return region.Apply(h.table()), nil
}

func badRequest(c *gin.Context, err error) {
	var pe *paramError
	if !errors.As(err, &pe) {
		internalError(c, "request failed", err)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func internalError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
