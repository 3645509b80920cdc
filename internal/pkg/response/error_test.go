package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	notFound := apperror.New(http.StatusNotFound, "booking not found")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"app error", notFound, http.StatusNotFound, `{"error":"booking not found"}`},
		{"wrapped app error", fmt.Errorf("get booking: %w", notFound), http.StatusNotFound, `{"error":"booking not found"}`},
		{"app error with new message", apperror.Wrap(notFound, http.StatusBadRequest, "bad id"), http.StatusBadRequest, `{"error":"bad id"}`},
		{"storage error is opaque", errors.New("pq: relation bookings does not exist"), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"server app error is opaque", apperror.New(http.StatusServiceUnavailable, "pool exhausted"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/v1/bookings/1", nil)

			Error(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
