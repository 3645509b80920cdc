package http

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/locale"
	"github.com/nekogravitycat/salon-booking-backend/internal/worker"
)

type WindowResponse struct {
	Weekday int    `json:"weekday"`
	Day     string `json:"day"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type WorkerResponse struct {
	ID           string           `json:"id"`
	SalonID      string           `json:"salon_id"`
	Name         string           `json:"name"`
	Surname      string           `json:"surname"`
	Email        string           `json:"email"`
	PhoneNumber  string           `json:"phone_number"`
	Services     []string         `json:"services"`
	Availability []WindowResponse `json:"availability"`
	CreatedAt    time.Time        `json:"created_at"`
}

// WorkerTag is a brief representation of a worker embedded in booking views.
type WorkerTag struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

func NewWorkerResponse(w *worker.Worker, lang string) WorkerResponse {
	windows := make([]WindowResponse, len(w.Availability))
	for i, a := range w.Availability {
		windows[i] = WindowResponse{
			Weekday: int(a.Weekday),
			Day:     locale.DayName(lang, a.Weekday),
			From:    a.From.String(),
			To:      a.To.String(),
		}
	}
	services := w.Services
	if services == nil {
		services = []string{}
	}

	return WorkerResponse{
		ID:           w.ID,
		SalonID:      w.SalonID,
		Name:         w.Name,
		Surname:      w.Surname,
		Email:        w.Email,
		PhoneNumber:  w.PhoneNumber,
		Services:     services,
		Availability: windows,
		CreatedAt:    w.CreatedAt,
	}
}

func NewWorkerTag(w *worker.Worker) *WorkerTag {
	if w == nil {
		return nil
	}
	return &WorkerTag{ID: w.ID, Name: w.Name, Surname: w.Surname}
}

type WindowRequest struct {
	// Pointer so that Sunday (0) passes the required check.
	Weekday *int   `json:"weekday" binding:"required,min=0,max=6"`
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
}

type CreateWorkerRequest struct {
	SalonID      string          `json:"salon_id" binding:"required,uuid"`
	Name         string          `json:"name" binding:"required,max=100"`
	Surname      string          `json:"surname" binding:"required,max=100"`
	Email        string          `json:"email" binding:"required,email"`
	PhoneNumber  string          `json:"phone_number" binding:"max=32"`
	Services     []string        `json:"services" binding:"required,min=1,dive,required"`
	Availability []WindowRequest `json:"availability" binding:"max=7,dive"`
}
