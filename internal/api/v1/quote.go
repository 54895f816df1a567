package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/service"
)

type QuoteHandler struct {
	service service.QuoteService
	log     *logger.Logger
}

func NewQuoteHandler(service service.QuoteService, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{service: service, log: log}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateQuote(ctx, &req)
	if err != nil {
		h.log.Errorw("failed to create quote", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	resp, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	resp, err := h.service.ListQuotes(c.Request.Context(), c.Query("owner_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuoteHandler) ExpireQuote(c *gin.Context) {
	resp, err := h.service.ExpireQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
