package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/sjperalta/marketplace-admin-api/internal/services"
)

type StatsHandler struct {
	resolver  *services.StatsResolver
	exportSvc *services.ExportService
}

func NewStatsHandler(resolver *services.StatsResolver, exportSvc *services.ExportService) *StatsHandler {
	return &StatsHandler{resolver: resolver, exportSvc: exportSvc}
}

func parseTimeframe(c *gin.Context) (models.Timeframe, error) {
	return models.ParseTimeframe(c.DefaultQuery("timeframe", string(models.TimeframeToday)))
}

// @Summary Get Seller Stats
// @Description Returns the effective stats a seller dashboard shows, with the source of every field
// @Tags Stats
// @Produce json
// @Param seller_id path string true "Seller ID"
// @Param timeframe query string false "today, last7Days, last30Days or allTime" default(today)
// @Success 200 {object} models.EffectiveStats
// @Security BearerAuth
// @Router /sellers/{seller_id}/stats [get]
func (h *StatsHandler) Show(c *gin.Context) {
	timeframe, err := parseTimeframe(c)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.resolver.Resolve(c.Request.Context(), c.Param("seller_id"), timeframe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Preview Seller Stats
// @Description Resolves every timeframe as the seller would see it
// @Tags Stats
// @Produce json
// @Param seller_id path string true "Seller ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /sellers/{seller_id}/stats/preview [get]
func (h *StatsHandler) Preview(c *gin.Context) {
	sellerID := c.Param("seller_id")

	all, err := h.resolver.ResolveAll(c.Request.Context(), sellerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seller_id": sellerID, "timeframes": all})
}

// @Summary Export Seller Stats
// @Description Downloads the effective stats as csv, xlsx or pdf
// @Tags Stats
// @Produce application/octet-stream
// @Param seller_id path string true "Seller ID"
// @Param timeframe query string false "Timeframe" default(today)
// @Param format query string true "Report format (csv, xlsx, pdf)"
// @Security BearerAuth
// @Router /sellers/{seller_id}/stats/export [get]
func (h *StatsHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" && format != "pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format (csv, xlsx, pdf)"})
		return
	}

	timeframe, err := parseTimeframe(c)
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := h.exportSvc.Export(c.Request.Context(), c.Param("seller_id"), timeframe, format)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}
