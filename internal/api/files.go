package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-quake-dashboard/internal/charts"
	"github.com/mr1hm/go-quake-dashboard/internal/export"
	"github.com/mr1hm/go-quake-dashboard/internal/query"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) magnitudeChart(c *gin.Context) {
	table, err := h.regionTable(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	var buf bytes.Buffer
	if err := charts.MagnitudeHistogram(&buf, table, h.cfg.HistogramBins); err != nil {
		h.chartError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// yearlyChart draws bars for the whole table and a line for a region,
// unless style overrides it.
func (h *Handler) yearlyChart(c *gin.Context) {
	region, err := queryRegion(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	table, title, style := h.table(), "Earthquakes per Year", "bar"
	if region != nil {
		table = region.Apply(table)
		title, style = "Number of Earthquakes per Year in "+region.DisplayName(), "line"
	}
	if s := c.Query("style"); s != "" {
		style = s
	}

	counts := query.YearlyFrequency(table)
	var buf bytes.Buffer
	switch style {
	case "bar":
		err = charts.YearlyBars(&buf, counts, title)
	case "line":
		err = charts.YearlyLine(&buf, counts, title)
	default:
		badRequest(c, &paramError{"style", "must be bar or line"})
		return
	}
	if err != nil {
		h.chartError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) chartError(c *gin.Context, err error) {
	if errors.Is(err, charts.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	internalError(c, "failed to render chart", err)
}

func (h *Handler) exportCSV(c *gin.Context) {
	table, err := h.regionTable(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		internalError(c, "failed to export csv", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="earthquakes.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) exportXLSX(c *gin.Context) {
	table, err := h.regionTable(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, table); err != nil {
		internalError(c, "failed to export xlsx", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="earthquakes.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
