package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/service"
)

// SweepHandler exposes the daily invariant sweep to the scheduler.
// The endpoint is idempotent: re-running a sweep never double-expires
// a policy or re-sends an expiry notification.
type SweepHandler struct {
	logger       *logger.Logger
	sweepService service.SweepService
}

func NewSweepHandler(logger *logger.Logger, sweepService service.SweepService) *SweepHandler {
	return &SweepHandler{
		logger:       logger,
		sweepService: sweepService,
	}
}

// RunDailySweep triggers the three sub-sweeps and reports the outcome.
// Partial failures are returned in the body with a 200; the scheduler
// alerts on the errors field, not the status code.
func (h *SweepHandler) RunDailySweep(c *gin.Context) {
	h.logger.Infow("daily sweep triggered", "at", time.Now().UTC().Format(time.RFC3339))

	result := h.sweepService.RunDailySweep(c.Request.Context())

	c.JSON(http.StatusOK, result)
}
