package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/locale"
	"github.com/nekogravitycat/salon-booking-backend/internal/worker"
)

const (
	workerID = "a3d5e7f9-1b2c-4d6e-8f0a-2b4c6d8e0f11"
	salonID  = "6f1c2a8e-2f0b-4d8e-9a57-1b7f4c0e9a01"
)

type fakeService struct {
	w       *worker.Worker
	list    []*worker.Worker
	err     error
	lastReq worker.CreateRequest
}

func (f *fakeService) Create(_ context.Context, req worker.CreateRequest) (*worker.Worker, error) {
	f.lastReq = req
	return f.w, f.err
}

func (f *fakeService) GetByID(_ context.Context, _ string) (*worker.Worker, error) {
	return f.w, f.err
}

func (f *fakeService) ListBySalon(_ context.Context, _ string) ([]*worker.Worker, error) {
	return f.list, f.err
}

func executeRequest(svc worker.Service, lang, method, path string, body any) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, lang))

	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var maria = &worker.Worker{
	ID: workerID, SalonID: salonID, Name: "Maria", Surname: "Popescu", Email: "maria@example.com",
	Services: []string{"Tuns"},
	Availability: []worker.AvailabilityWindow{
		{Weekday: time.Sunday, From: worker.Clock{Hour: 10}, To: worker.Clock{Hour: 12}},
	},
}

func TestGet_LocalizesDayNames(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{locale.Romanian, "Duminică"},
		{locale.English, "Sunday"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			w := executeRequest(&fakeService{w: maria}, tt.lang, http.MethodGet, "/v1/workers/"+workerID, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var body WorkerResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Len(t, body.Availability, 1)
			assert.Equal(t, 0, body.Availability[0].Weekday)
			assert.Equal(t, tt.want, body.Availability[0].Day)
			assert.Equal(t, "10:00", body.Availability[0].From)
		})
	}
}

func TestGet_Errors(t *testing.T) {
	w := executeRequest(&fakeService{}, locale.Romanian, http.MethodGet, "/v1/workers/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = executeRequest(&fakeService{err: worker.ErrNotFound}, locale.Romanian, http.MethodGet, "/v1/workers/"+workerID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreate(t *testing.T) {
	sunday := 0
	payload := map[string]any{
		"salon_id": salonID,
		"name":     "Maria",
		"surname":  "Popescu",
		"email":    "maria@example.com",
		"services": []string{"Tuns"},
		"availability": []map[string]any{
			{"weekday": sunday, "from": "10:00", "to": "12:00"},
		},
	}

	svc := &fakeService{w: maria}
	w := executeRequest(svc, locale.Romanian, http.MethodPost, "/v1/workers", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.lastReq.Availability, 1)
	assert.Equal(t, worker.WindowInput{Weekday: 0, From: "10:00", To: "12:00"}, svc.lastReq.Availability[0])

	t.Run("weekday out of range", func(t *testing.T) {
		bad := map[string]any{
			"salon_id": salonID, "name": "Maria", "surname": "Popescu", "email": "maria@example.com",
			"services":     []string{"Tuns"},
			"availability": []map[string]any{{"weekday": 7, "from": "10:00", "to": "12:00"}},
		}
		w := executeRequest(&fakeService{w: maria}, locale.Romanian, http.MethodPost, "/v1/workers", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := executeRequest(&fakeService{err: worker.ErrEmailAlreadyUsed}, locale.Romanian, http.MethodPost, "/v1/workers", payload)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestListBySalon(t *testing.T) {
	w := executeRequest(&fakeService{list: []*worker.Worker{maria}}, locale.Romanian, http.MethodGet, "/v1/salons/"+salonID+"/workers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []WorkerResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Popescu", body.Items[0].Surname)
}
