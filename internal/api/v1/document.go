package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/service"
	"github.com/assurly/assurly/internal/types"
)

type DocumentHandler struct {
	service service.DocumentService
	log     *logger.Logger
}

func NewDocumentHandler(service service.DocumentService, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{service: service, log: log}
}

func (h *DocumentHandler) RegenerateDocuments(c *gin.Context) {
	ctx := c.Request.Context()
	policyID := c.Param("id")

	docs, err := h.service.RegenerateDocuments(ctx, policyID)
	if err != nil {
		h.log.Errorw("failed to regenerate documents", "policy_id", policyID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, docs)
}

type supplementaryDocumentRequest struct {
	Kind types.DocumentKind `json:"kind" binding:"required"`
	Note string             `json:"note"`
}

func (h *DocumentHandler) IssueSupplementaryDocument(c *gin.Context) {
	var req supplementaryDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	doc, err := h.service.IssueSupplementaryDocument(c.Request.Context(), c.Param("id"), req.Kind, req.Note)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	resp, err := h.service.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	resp, err := h.service.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
