package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/barber"
)

type WorkingHoursHandler struct {
	get    *barber.GetWorkingHours
	update *barber.UpdateWorkingHours
}

func NewWorkingHoursHandler(get *barber.GetWorkingHours, update *barber.UpdateWorkingHours) *WorkingHoursHandler {
	return &WorkingHoursHandler{get: get, update: update}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	hours, err := h.get.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)

	barberID, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, bindError(err))
		return
	}

	rows := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		rows = append(rows, models.WorkingHours{
			BarberID:   barberID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	saved, err := h.update.Execute(c.Request.Context(), a, barberID, rows)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, saved)
}
