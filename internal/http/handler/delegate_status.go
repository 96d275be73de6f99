package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gandalf.app/compiler/core/config"
	"gandalf.app/compiler/internal/delegate"
	"gandalf.app/compiler/internal/http/dto"
)

type DelegateStatusHandler struct {
	router *delegate.Router
	cfg    config.DelegateConfig
}

func NewDelegateStatusHandler(router *delegate.Router, cfg config.DelegateConfig) *DelegateStatusHandler {
	return &DelegateStatusHandler{router: router, cfg: cfg}
}

// Status handles GET /api/v1/delegate/status. The optional complexity query
// parameter (1..5) shows how routing shifts for harder requests.
func (h *DelegateStatusHandler) Status(c *gin.Context) {
	if !h.cfg.Enabled() {
		c.JSON(http.StatusOK, dto.DelegateStatusResponse{Enabled: false})
		return
	}

	complexity := 3
	if raw := c.Query("complexity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "complexity must be an integer in [1, 5]"})
			return
		}
		complexity = parsed
	}

	plan := make(map[string]string)
	for stage, tier := range h.router.Plan(complexity) {
		plan[string(stage)] = string(tier)
	}

	c.JSON(http.StatusOK, dto.DelegateStatusResponse{
		Enabled: true,
		Models: map[string]string{
			string(delegate.TierFast):     h.cfg.FastModel,
			string(delegate.TierBalanced): h.cfg.BalancedModel,
			string(delegate.TierDeep):     h.cfg.DeepModel,
		},
		Plan: plan,
	})
}
