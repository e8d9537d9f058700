package handler

import (
	"net/http"

	"drivebuddy-admin/internal/usecase/driver"
	"drivebuddy-admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	service *driver.Service
}

func NewDriverHandler(service *driver.Service) *DriverHandler {
	return &DriverHandler{service: service}
}

func (h *DriverHandler) RegisterRoutes(router *gin.RouterGroup) {
	drivers := router.Group("/drivers")
	{
		drivers.GET("", h.ListDrivers)
		drivers.GET("/:id", h.GetDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)
	}
}

func (h *DriverHandler) ListDrivers(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	resp, err := h.service.ListDrivers(c.Request.Context(), sess)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Drivers retrieved successfully", resp)
}

func (h *DriverHandler) GetDriver(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	resp, err := h.service.GetDriver(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Driver retrieved successfully", resp)
}

func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req driver.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateDriver(c.Request.Context(), sess, c.Param("id"), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Driver updated successfully", resp)
}

func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDriver(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Driver deleted successfully", nil)
}
