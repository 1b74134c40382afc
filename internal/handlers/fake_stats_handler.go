package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sjperalta/marketplace-admin-api/internal/middleware"
	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/sjperalta/marketplace-admin-api/internal/services"
)

type FakeStatsHandler struct {
	fakeStatsService *services.FakeStatsService
}

func NewFakeStatsHandler(fakeStatsService *services.FakeStatsService) *FakeStatsHandler {
	return &FakeStatsHandler{fakeStatsService: fakeStatsService}
}

// UpsertFakeStatsRequest is accepted flat or nested under "fake_stats"
type UpsertFakeStatsRequest struct {
	Timeframe string                     `json:"timeframe" binding:"required,oneof=today last7Days last30Days allTime"`
	Stats     map[string]json.RawMessage `json:"stats" binding:"required"`
}

func actorFromContext(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:    middleware.GetUserID(c),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func recordResponses(records []models.OverrideRecord) []models.OverrideRecordResponse {
	out := make([]models.OverrideRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, records[i].ToResponse())
	}
	return out
}

// @Summary List Fake Stats
// @Description Returns every override record configured for the seller
// @Tags FakeStats
// @Produce json
// @Param seller_id path string true "Seller ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /sellers/{seller_id}/fake-stats [get]
func (h *FakeStatsHandler) Index(c *gin.Context) {
	sellerID := c.Param("seller_id")

	records, err := h.fakeStatsService.Get(c.Request.Context(), sellerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"seller_id": sellerID, "fake_stats": recordResponses(records)})
}

// @Summary Upsert Fake Stats
// @Description Merges override values into the seller's record for a timeframe
// @Tags FakeStats
// @Accept json
// @Produce json
// @Param seller_id path string true "Seller ID"
// @Param request body UpsertFakeStatsRequest true "Timeframe and stats"
// @Success 200 {object} models.OverrideRecordResponse
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /sellers/{seller_id}/fake-stats [post]
func (h *FakeStatsHandler) Upsert(c *gin.Context) {
	var req UpsertFakeStatsRequest
	if err := BindNestedOrFlat(c, "fake_stats", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		if fields := bindingFieldErrors(err); len(fields) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Decode values one by one so a bad value is reported with the rest
	fields := make(map[string]float64, len(req.Stats))
	var typeErrs []models.FieldError
	for name, raw := range req.Stats {
		var v float64
		if string(raw) == "null" || json.Unmarshal(raw, &v) != nil {
			typeErrs = append(typeErrs, models.FieldError{Field: models.StatField(name), Message: "must be a number"})
			continue
		}
		fields[name] = v
	}
	if len(typeErrs) > 0 {
		_, rest := h.fakeStatsService.ValidateFields(fields)
		respondError(c, services.NewValidationError(append(typeErrs, rest...)))
		return
	}

	record, err := h.fakeStatsService.Upsert(
		c.Request.Context(),
		actorFromContext(c),
		c.Param("seller_id"),
		models.Timeframe(req.Timeframe),
		fields,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record.ToResponse())
}

// @Summary Reset Fake Stats
// @Description Deletes every override for the seller so real data is shown again
// @Tags FakeStats
// @Produce json
// @Param seller_id path string true "Seller ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /sellers/{seller_id}/fake-stats [delete]
func (h *FakeStatsHandler) Reset(c *gin.Context) {
	if err := h.fakeStatsService.Reset(c.Request.Context(), actorFromContext(c), c.Param("seller_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Overrides reset, real data restored"})
}
