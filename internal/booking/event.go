package booking

import "time"

// Routing keys of booking events.
const (
	EventCreated   = "booking.created"
	EventCancelled = "booking.cancelled"
	EventCompleted = "booking.completed"
)

// Event is the message published after a booking changes.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     *string   `json:"user_id,omitempty"`
	SalonID    string    `json:"salon_id"`
	WorkerID   string    `json:"worker_id"`
	Service    string    `json:"service"`
	Date       string    `json:"date"`
	TimeSlot   string    `json:"time_slot"`
	Status     Status    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, b *Booking, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  b.ID,
		UserID:     b.UserID,
		SalonID:    b.SalonID,
		WorkerID:   b.WorkerID,
		Service:    b.Service,
		Date:       b.Date.Format(DateLayout),
		TimeSlot:   b.TimeSlot,
		Status:     b.Status,
		OccurredAt: at.UTC(),
	}
}
