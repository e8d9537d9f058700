package handler

import (
	"fmt"
	"net/http"
	"time"

	"drivebuddy-admin/internal/usecase/roster"
	"drivebuddy-admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RosterHandler struct {
	service *roster.Service
}

func NewRosterHandler(service *roster.Service) *RosterHandler {
	return &RosterHandler{service: service}
}

func (h *RosterHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/roster")
	{
		group.GET("", h.GetRoster)
		group.GET("/export", h.ExportRoster)
	}
}

func (h *RosterHandler) GetRoster(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req roster.RosterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.GetRoster(c.Request.Context(), sess, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Roster retrieved successfully", resp)
}

func (h *RosterHandler) ExportRoster(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	data, err := h.service.Export(c.Request.Context(), sess)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("roster-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
