package handler

import (
	"net/http"

	"drivebuddy-admin/internal/usecase/telemetry"
	"drivebuddy-admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TelemetryHandler struct {
	service *telemetry.Service
}

func NewTelemetryHandler(service *telemetry.Service) *TelemetryHandler {
	return &TelemetryHandler{service: service}
}

func (h *TelemetryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/telemetry/:period", h.GetSummary)
}

// GetSummary serves one period of chart data, e.g.
// GET /telemetry/week?date=2024-02-14&offset=-1&surface=chart&seq=7
func (h *TelemetryHandler) GetSummary(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req telemetry.SummaryRequest
	if err := c.ShouldBindUri(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid period")
		return
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.GetSummary(c.Request.Context(), sess, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Telemetry retrieved successfully", resp)
}
