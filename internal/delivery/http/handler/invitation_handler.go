package handler

import (
	"net/http"

	"drivebuddy-admin/internal/usecase/invitation"
	"drivebuddy-admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	service *invitation.Service
}

func NewInvitationHandler(service *invitation.Service) *InvitationHandler {
	return &InvitationHandler{service: service}
}

func (h *InvitationHandler) RegisterRoutes(router *gin.RouterGroup) {
	invitations := router.Group("/invitations")
	{
		invitations.POST("", h.IssueInvitation)
		invitations.GET("", h.ListInvitations)
		invitations.GET("/metrics", h.GetMetrics)
		invitations.GET("/code/:code", h.GetInvitationByCode)
		invitations.DELETE("/:id", h.CancelInvitation)
	}
}

func (h *InvitationHandler) IssueInvitation(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req invitation.IssueInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.IssueInvitation(c.Request.Context(), sess, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Invitation sent", resp)
}

func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	resp, err := h.service.ListInvitations(c.Request.Context(), sess)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invitations retrieved successfully", resp)
}

func (h *InvitationHandler) GetInvitationByCode(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	resp, err := h.service.GetInvitationByCode(c.Request.Context(), sess, c.Param("code"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invitation retrieved successfully", resp)
}

func (h *InvitationHandler) CancelInvitation(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.service.CancelInvitation(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invitation cancelled", nil)
}

func (h *InvitationHandler) GetMetrics(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	metrics, err := h.service.Metrics(sess)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Invitation metrics", metrics)
}
