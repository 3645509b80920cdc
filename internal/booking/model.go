package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrWorkerNotFound      = apperror.New(http.StatusNotFound, "worker not found")
	ErrSalonNotFound       = apperror.New(http.StatusNotFound, "salon not found")
	ErrServiceNotOffered   = apperror.New(http.StatusBadRequest, "worker does not provide this service")
	ErrWorkerSalonMismatch = apperror.New(http.StatusBadRequest, "worker does not belong to this salon")
	ErrSlotAlreadyBooked   = apperror.New(http.StatusConflict, "time slot already booked")
	ErrValidation          = apperror.New(http.StatusBadRequest, "missing required fields")
	ErrInvalidID           = apperror.New(http.StatusBadRequest, "invalid id format")
	ErrInvalidDate         = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrInvalidTimeSlot     = apperror.New(http.StatusBadRequest, "invalid time slot, expected HH:00")
	ErrDateInPast          = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrOutsideAvailability = apperror.New(http.StatusBadRequest, "time slot is outside the worker's availability")
	ErrInvalidTransition   = apperror.New(http.StatusConflict, "booking status does not allow this operation")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// CanTransition reports whether a booking in status s may move to next.
// pending -> confirmed -> completed; any non-cancelled status may be cancelled.
func (s Status) CanTransition(next Status) bool {
	switch next {
	case StatusConfirmed:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusConfirmed
	case StatusCancelled:
		return s != StatusCancelled
	}
	return false
}

// Client is the contact snapshot captured when the booking is made.
type Client struct {
	Name  string
	Email string
	Phone string
}

type Booking struct {
	ID        string
	UserID    *string
	SalonID   string
	WorkerID  string
	Service   string
	Date      time.Time // calendar day, midnight UTC
	TimeSlot  string    // HH:00
	Status    Status
	Client    Client
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusFilter narrows ledger queries by status. Empty fields match everything.
type StatusFilter struct {
	Only    []Status
	Exclude []Status
}

// Active matches bookings that hold their slot.
var Active = StatusFilter{Exclude: []Status{StatusCancelled}}

type Filter struct {
	UserID   string
	SalonID  string
	WorkerID string
	Status   StatusFilter
}

type ScopeKind string

const (
	ScopeUser   ScopeKind = "user"
	ScopeSalon  ScopeKind = "salon"
	ScopeWorker ScopeKind = "worker"
)

// Scope selects whose bookings are listed.
type Scope struct {
	Kind ScopeKind
	ID   string
}

// Date layout used for calendar days on the wire and in events.
const DateLayout = "2006-01-02"
