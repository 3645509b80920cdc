package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/salon-booking-backend/internal/worker"
)

type Handler struct {
	service worker.Service
	lang    string
}

// NewHandler creates a worker handler. lang selects the language of day names.
func NewHandler(service worker.Service, lang string) *Handler {
	return &Handler{service: service, lang: lang}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateWorkerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	windows := make([]worker.WindowInput, len(body.Availability))
	for i, a := range body.Availability {
		windows[i] = worker.WindowInput{Weekday: *a.Weekday, From: a.From, To: a.To}
	}

	w, err := h.service.Create(c.Request.Context(), worker.CreateRequest{
		SalonID:      body.SalonID,
		Name:         body.Name,
		Surname:      body.Surname,
		Email:        body.Email,
		PhoneNumber:  body.PhoneNumber,
		Services:     body.Services,
		Availability: windows,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewWorkerResponse(w, h.lang))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid worker id", err)
		return
	}

	w, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWorkerResponse(w, h.lang))
}

// ListBySalon lists the workers of the salon in the path.
func (h *Handler) ListBySalon(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid salon id", err)
		return
	}

	workers, err := h.service.ListBySalon(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		items[i] = NewWorkerResponse(w, h.lang)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
