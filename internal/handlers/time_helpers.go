package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

var (
	errInvalidID      = apperr.Validation("invalid_id", "id must be a uuid")
	errInvalidDate    = apperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	errInvalidInstant = apperr.Validation("invalid_datetime", "start must be RFC3339 or YYYY-MM-DD HH:MM")
	errInvalidMonth   = apperr.Validation("invalid_month", "year and month are required, month 1-12")
	errInvalidRequest = apperr.Validation("invalid_request", "request body is invalid")
)

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errInvalidID.WithDetails(map[string]any{"param": name})
	}
	return id, nil
}

func optionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errInvalidID
	}
	return &id, nil
}

// parseDateIn resolves a calendar date in the shop's timezone.
func parseDateIn(clock timezone.Clock, raw string) (time.Time, error) {
	d, err := timezone.ParseDate(raw, clock.Location())
	if err != nil {
		return time.Time{}, errInvalidDate.WithDetails(map[string]any{"value": raw})
	}
	return d, nil
}

func parseInstantIn(clock timezone.Clock, raw string) (time.Time, error) {
	t, err := timezone.ParseInstant(raw, clock.Location())
	if err != nil {
		return time.Time{}, errInvalidInstant.WithDetails(map[string]any{"value": raw})
	}
	return t, nil
}

func parseYearMonth(yearRaw, monthRaw string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearRaw)
	if err != nil || year < 1 {
		return 0, 0, errInvalidMonth
	}
	month, err := strconv.Atoi(monthRaw)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errInvalidMonth
	}
	return year, time.Month(month), nil
}

func bindError(err error) error {
	return errInvalidRequest.WithDetails(map[string]any{"reason": err.Error()})
}
