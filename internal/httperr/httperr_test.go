package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

func TestStatusFor(t *testing.T) {
	tests := map[apperr.Kind]int{
		apperr.KindInvalidTransition:    http.StatusConflict,
		apperr.KindMissingPaymentMethod: http.StatusUnprocessableEntity,
		apperr.KindSlotConflict:         http.StatusConflict,
		apperr.KindQuotaExceeded:        http.StatusConflict,
		apperr.KindNotFound:             http.StatusNotFound,
		apperr.KindForbidden:            http.StatusForbidden,
		apperr.KindValidation:           http.StatusBadRequest,
		apperr.KindUnavailable:          http.StatusServiceUnavailable,
		apperr.KindInternal:             http.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, httperr.StatusFor(kind), kind)
	}
}

func render(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	httperr.FromError(c, err)
	return w
}

func TestFromError_CarriesDetails(t *testing.T) {
	err := apperr.New(apperr.KindInvalidTransition, "invalid_transition", "nope").
		WithDetails(map[string]any{"from": "completed", "to": "cancelled"})

	w := render(err)
	assert.Equal(t, http.StatusConflict, w.Code)

	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_transition", body.Code)
	assert.Equal(t, "completed", body.Details["from"])
}

func TestFromError_UnknownIsInternal(t *testing.T) {
	w := render(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
