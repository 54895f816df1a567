package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/service"
)

type VehicleHandler struct {
	service service.VehicleService
	log     *logger.Logger
}

func NewVehicleHandler(service service.VehicleService, log *logger.Logger) *VehicleHandler {
	return &VehicleHandler{service: service, log: log}
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateVehicle(ctx, &req)
	if err != nil {
		h.log.Errorw("failed to create vehicle", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	resp, err := h.service.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	resp, err := h.service.ListVehicles(c.Request.Context(), c.Query("owner_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
