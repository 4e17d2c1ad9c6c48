package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader audit.Reader
	clock  timezone.Clock
}

func NewAuditLogsHandler(reader audit.Reader, clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, clock: clock}
}

// List pages through the audit trail, newest first. from/to are inclusive dates.
func (h *AuditLogsHandler) List(c *gin.Context) {
	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q.Limit = limit
	q.Offset = (page - 1) * limit

	if raw := c.Query("from"); raw != "" {
		from, err := parseDateIn(h.clock, raw)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		q.From = from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := parseDateIn(h.clock, raw)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		q.To = to.AddDate(0, 0, 1)
	}

	logs, total, err := h.reader.ListAuditLogs(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
