package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/salon-booking-backend/internal/booking"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
	lang    string
}

func NewHandler(service booking.Service, lang string) *Handler {
	return &Handler{service: service, lang: lang}
}

// AvailableSlots lists the free hourly slots of a worker on a day for a service.
func (h *Handler) AvailableSlots(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid worker id", err)
		return
	}
	var q AvailableSlotsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "date and service are required", err)
		return
	}

	res, err := h.service.ListAvailableSlots(c.Request.Context(), uri.ID, q.Date, q.Service)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAvailableSlotsResponse(res, h.lang))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	v, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:      body.UserID,
		SalonID:     body.SalonID,
		WorkerID:    body.WorkerID,
		Service:     body.Service,
		Date:        body.Date,
		TimeSlot:    body.TimeSlot,
		ClientName:  body.ClientName,
		ClientEmail: body.ClientEmail,
		ClientPhone: body.ClientPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSummaryResponse(v))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Complete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := h.service.Complete(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListByUser(c *gin.Context) {
	views, ok := h.list(c, booking.ScopeUser)
	if !ok {
		return
	}
	items := make([]UserBookingResponse, len(views))
	for i, v := range views {
		items[i] = NewUserBookingResponse(v)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) ListBySalon(c *gin.Context) {
	views, ok := h.list(c, booking.ScopeSalon)
	if !ok {
		return
	}
	items := make([]SalonBookingResponse, len(views))
	for i, v := range views {
		items[i] = NewSalonBookingResponse(v)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) ListByWorker(c *gin.Context) {
	views, ok := h.list(c, booking.ScopeWorker)
	if !ok {
		return
	}
	items := make([]BookingResponse, len(views))
	for i, v := range views {
		items[i] = NewBookingResponse(v.Booking)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) list(c *gin.Context, kind booking.ScopeKind) ([]*booking.View, bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid "+string(kind)+" id", err)
		return nil, false
	}

	views, err := h.service.List(c.Request.Context(), booking.Scope{Kind: kind, ID: uri.ID})
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return views, true
}
