package handlers

import (
	"github.com/gin-gonic/gin"

	domainStats "github.com/BruksfildServices01/barbershop-booking/internal/domain/stats"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/stats"
)

type BarberHandler struct {
	featured *barber.SetFeatured
	active   *barber.SetActive
	stats    *stats.GetBarberStats
	clock    timezone.Clock
}

func NewBarberHandler(
	featured *barber.SetFeatured,
	active *barber.SetActive,
	stats *stats.GetBarberStats,
	clock timezone.Clock,
) *BarberHandler {
	return &BarberHandler{
		featured: featured,
		active:   active,
		stats:    stats,
		clock:    clock,
	}
}

type SetFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ======================================================
// FEATURED / ACTIVE (admin)
// ======================================================

func (h *BarberHandler) SetFeatured(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, bindError(err))
		return
	}

	b, err := h.featured.Execute(c.Request.Context(), a, id, *req.Featured)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BarberHandler) SetActive(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, bindError(err))
		return
	}

	b, err := h.active.Execute(c.Request.Context(), a, id, *req.Active)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// STATS
// ======================================================

// Stats takes inclusive from/to dates and defaults to the current month.
func (h *BarberHandler) Stats(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	now := h.clock.Now()
	from, to := timezone.MonthRange(now.Year(), now.Month(), h.clock.Location())

	if raw := c.Query("from"); raw != "" {
		if from, err = parseDateIn(h.clock, raw); err != nil {
			httperr.FromError(c, err)
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		day, err := parseDateIn(h.clock, raw)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		to = day.AddDate(0, 0, 1)
	}

	out, err := h.stats.Execute(c.Request.Context(), a, id, domainStats.Window{From: from, To: to})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}

