package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/service"
)

type ClaimHandler struct {
	service service.ClaimService
	log     *logger.Logger
}

func NewClaimHandler(service service.ClaimService, log *logger.Logger) *ClaimHandler {
	return &ClaimHandler{service: service, log: log}
}

func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClaim(ctx, &req)
	if err != nil {
		h.log.Errorw("failed to create claim", "policy_id", req.PolicyID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ClaimHandler) TransitionClaim(c *gin.Context) {
	var req dto.TransitionClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.ClaimID = c.Param("id")

	resp, err := h.service.TransitionClaim(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClaimHandler) AssignExpert(c *gin.Context) {
	var req dto.AssignExpertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.ClaimID = c.Param("id")

	resp, err := h.service.AssignExpert(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClaimHandler) AddMessage(c *gin.Context) {
	var req dto.AddClaimMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.ClaimID = c.Param("id")

	resp, err := h.service.AddClaimMessage(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClaimHandler) AddAttachment(c *gin.Context) {
	var req dto.AddClaimAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.ClaimID = c.Param("id")

	resp, err := h.service.AddClaimAttachment(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClaimHandler) GetClaim(c *gin.Context) {
	resp, err := h.service.GetClaim(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClaimHandler) ListClaims(c *gin.Context) {
	ctx := c.Request.Context()

	if policyID := c.Query("policy_id"); policyID != "" {
		resp, err := h.service.ListClaimsByPolicy(ctx, policyID)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	resp, err := h.service.ListClaimsByOwner(ctx, c.Query("owner_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
