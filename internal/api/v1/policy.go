package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/service"
)

type PolicyHandler struct {
	service service.PolicyService
	log     *logger.Logger
}

func NewPolicyHandler(service service.PolicyService, log *logger.Logger) *PolicyHandler {
	return &PolicyHandler{service: service, log: log}
}

func (h *PolicyHandler) IssuePolicy(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.IssuePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.IssuePolicy(ctx, &req)
	if err != nil {
		h.log.Errorw("failed to issue policy", "quote_id", req.QuoteID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PolicyHandler) RenewPolicy(c *gin.Context) {
	resp, err := h.service.RenewPolicy(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PolicyHandler) CancelPolicy(c *gin.Context) {
	var req dto.CancelPolicyRequest
	// the body only carries the optional note; cancelling with no body
	// at all is fine
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.PolicyID = c.Param("id")

	resp, err := h.service.CancelPolicy(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	resp, err := h.service.GetPolicy(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	resp, err := h.service.ListPolicies(c.Request.Context(), c.Query("owner_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
