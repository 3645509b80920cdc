package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/salon-booking-backend/internal/salon"
)

type fakeService struct {
	salons     []*salon.Salon
	total      int
	err        error
	lastFilter salon.Filter
}

func (f *fakeService) Create(_ context.Context, req salon.CreateRequest) (*salon.Salon, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &salon.Salon{ID: "6f1c2a8e-2f0b-4d8e-9a57-1b7f4c0e9a01", Name: req.Name, Address: req.Address}, nil
}

func (f *fakeService) GetByID(_ context.Context, id string) (*salon.Salon, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &salon.Salon{ID: id, Name: "Salon Ana"}, nil
}

func (f *fakeService) List(_ context.Context, filter salon.Filter) ([]*salon.Salon, int, error) {
	f.lastFilter = filter
	return f.salons, f.total, f.err
}

func executeRequest(svc salon.Service, method, path string, body any) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))

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

func TestList(t *testing.T) {
	svc := &fakeService{salons: []*salon.Salon{{ID: "1", Name: "Salon Ana"}}, total: 11}

	w := executeRequest(svc, http.MethodGet, "/v1/salons?page=2&page_size=5&name=ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, salon.Filter{Name: "ana", Page: 2, PageSize: 5}, svc.lastFilter)

	var body struct {
		Items    []SalonResponse `json:"items"`
		Page     int             `json:"page"`
		PageSize int             `json:"page_size"`
		Total    int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 11, body.Total)

	t.Run("defaults", func(t *testing.T) {
		svc := &fakeService{}
		w := executeRequest(svc, http.MethodGet, "/v1/salons", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, salon.Filter{Page: 1, PageSize: 20}, svc.lastFilter)
		assert.JSONEq(t, `{"items":[],"page":1,"page_size":20,"total":0}`, w.Body.String())
	})

	t.Run("page size too large", func(t *testing.T) {
		w := executeRequest(&fakeService{}, http.MethodGet, "/v1/salons?page_size=1000", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateAndGet(t *testing.T) {
	w := executeRequest(&fakeService{}, http.MethodPost, "/v1/salons", map[string]string{"name": "Salon Ana", "address": "Str. Florilor 1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = executeRequest(&fakeService{}, http.MethodPost, "/v1/salons", map[string]string{"address": "nowhere"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = executeRequest(&fakeService{err: salon.ErrNotFound}, http.MethodGet, "/v1/salons/6f1c2a8e-2f0b-4d8e-9a57-1b7f4c0e9a01", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = executeRequest(&fakeService{}, http.MethodGet, "/v1/salons/42", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
