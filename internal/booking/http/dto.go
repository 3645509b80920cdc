package http

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/booking"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/locale"
	salonHttp "github.com/nekogravitycat/salon-booking-backend/internal/salon/http"
	workerHttp "github.com/nekogravitycat/salon-booking-backend/internal/worker/http"
)

type AvailableSlotsRequest struct {
	Date    string `form:"date" binding:"required"`
	Service string `form:"service" binding:"required"`
}

type AvailableSlotsResponse struct {
	Worker         *workerHttp.WorkerTag `json:"worker"`
	Date           string                `json:"date"`
	Weekday        int                   `json:"weekday"`
	DayOfWeek      string                `json:"day_of_week"`
	Available      bool                  `json:"available"`
	Message        string                `json:"message,omitempty"`
	AvailableSlots []string              `json:"available_slots"`
}

func NewAvailableSlotsResponse(r *booking.AvailableSlots, lang string) AvailableSlotsResponse {
	return AvailableSlotsResponse{
		Worker:         workerHttp.NewWorkerTag(r.Worker),
		Date:           r.Date.Format(booking.DateLayout),
		Weekday:        int(r.Weekday),
		DayOfWeek:      locale.DayName(lang, r.Weekday),
		Available:      r.Available,
		Message:        r.Reason,
		AvailableSlots: r.Slots,
	}
}

// CreateBookingRequest leaves presence checks to the service, which reports
// every missing field in one error.
type CreateBookingRequest struct {
	UserID      string `json:"user_id"`
	SalonID     string `json:"salon_id"`
	WorkerID    string `json:"worker_id"`
	Service     string `json:"service" binding:"max=200"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	ClientName  string `json:"client_name" binding:"max=200"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	ClientPhone string `json:"client_phone" binding:"max=32"`
}

type ClientResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingResponse is the raw booking record.
type BookingResponse struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"user_id"`
	SalonID   string         `json:"salon_id"`
	WorkerID  string         `json:"worker_id"`
	Service   string         `json:"service"`
	Date      string         `json:"date"`
	TimeSlot  string         `json:"time_slot"`
	Status    string         `json:"status"`
	Client    ClientResponse `json:"client"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		SalonID:   b.SalonID,
		WorkerID:  b.WorkerID,
		Service:   b.Service,
		Date:      b.Date.Format(booking.DateLayout),
		TimeSlot:  b.TimeSlot,
		Status:    string(b.Status),
		Client:    ClientResponse{Name: b.Client.Name, Email: b.Client.Email, Phone: b.Client.Phone},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// SummaryResponse is returned after a booking is created.
type SummaryResponse struct {
	ID       string                `json:"id"`
	Date     string                `json:"date"`
	TimeSlot string                `json:"time_slot"`
	Status   string                `json:"status"`
	Service  string                `json:"service"`
	Worker   *workerHttp.WorkerTag `json:"worker"`
	Salon    *salonHttp.SalonTag   `json:"salon"`
}

func NewSummaryResponse(v *booking.View) SummaryResponse {
	return SummaryResponse{
		ID:       v.Booking.ID,
		Date:     v.Booking.Date.Format(booking.DateLayout),
		TimeSlot: v.Booking.TimeSlot,
		Status:   string(v.Booking.Status),
		Service:  v.Booking.Service,
		Worker:   workerHttp.NewWorkerTag(v.Worker),
		Salon:    salonHttp.NewSalonTag(v.Salon),
	}
}

// UserBookingResponse is a booking as seen by the client who made it.
type UserBookingResponse struct {
	ID        string                `json:"id"`
	Date      string                `json:"date"`
	TimeSlot  string                `json:"time_slot"`
	Status    string                `json:"status"`
	Service   string                `json:"service"`
	Worker    *workerHttp.WorkerTag `json:"worker"`
	Salon     *salonHttp.SalonTag   `json:"salon"`
	CreatedAt time.Time             `json:"created_at"`
}

func NewUserBookingResponse(v *booking.View) UserBookingResponse {
	return UserBookingResponse{
		ID:        v.Booking.ID,
		Date:      v.Booking.Date.Format(booking.DateLayout),
		TimeSlot:  v.Booking.TimeSlot,
		Status:    string(v.Booking.Status),
		Service:   v.Booking.Service,
		Worker:    workerHttp.NewWorkerTag(v.Worker),
		Salon:     salonHttp.NewSalonTag(v.Salon),
		CreatedAt: v.Booking.CreatedAt,
	}
}

// SalonBookingResponse is a booking as seen by the salon: client contact and worker.
type SalonBookingResponse struct {
	ID        string                `json:"id"`
	Date      string                `json:"date"`
	TimeSlot  string                `json:"time_slot"`
	Status    string                `json:"status"`
	Service   string                `json:"service"`
	Client    ClientResponse        `json:"client"`
	Worker    *workerHttp.WorkerTag `json:"worker"`
	CreatedAt time.Time             `json:"created_at"`
}

func NewSalonBookingResponse(v *booking.View) SalonBookingResponse {
	b := v.Booking
	return SalonBookingResponse{
		ID:        b.ID,
		Date:      b.Date.Format(booking.DateLayout),
		TimeSlot:  b.TimeSlot,
		Status:    string(b.Status),
		Service:   b.Service,
		Client:    ClientResponse{Name: b.Client.Name, Email: b.Client.Email, Phone: b.Client.Phone},
		Worker:    workerHttp.NewWorkerTag(v.Worker),
		CreatedAt: b.CreatedAt,
	}
}
