package worker

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "worker not found")
	ErrSalonNotFound       = apperror.New(http.StatusNotFound, "salon not found")
	ErrEmailAlreadyUsed    = apperror.New(http.StatusConflict, "email already used by another worker")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name and surname are required")
	ErrServicesRequired    = apperror.New(http.StatusBadRequest, "at least one service is required")
	ErrInvalidAvailability = apperror.New(http.StatusBadRequest, "invalid availability")
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Before reports whether c is strictly earlier in the day than o.
func (c Clock) Before(o Clock) bool {
	if c.Hour != o.Hour {
		return c.Hour < o.Hour
	}
	return c.Minute < o.Minute
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AvailabilityWindow is the working interval of a worker on one weekday.
type AvailabilityWindow struct {
	Weekday time.Weekday `json:"weekday"`
	From    Clock        `json:"from"`
	To      Clock        `json:"to"`
}

// Worker is a person in a salon who provides services.
// JSON tags are used for the cache encoding.
type Worker struct {
	ID           string               `json:"id"`
	SalonID      string               `json:"salon_id"`
	Name         string               `json:"name"`
	Surname      string               `json:"surname"`
	Email        string               `json:"email"`
	PhoneNumber  string               `json:"phone_number"`
	Services     []string             `json:"services"`
	Availability []AvailabilityWindow `json:"availability"`
	CreatedAt    time.Time            `json:"created_at"`
}

// Offers reports whether the worker provides service.
func (w *Worker) Offers(service string) bool {
	for _, s := range w.Services {
		if s == service {
			return true
		}
	}
	return false
}

// ValidateAvailability checks weekday range, From < To and at most one window per weekday.
func ValidateAvailability(windows []AvailabilityWindow) error {
	var seen [7]bool
	for _, w := range windows {
		if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
			return apperror.Wrap(ErrInvalidAvailability, http.StatusBadRequest,
				fmt.Sprintf("invalid weekday %d", w.Weekday))
		}
		if seen[w.Weekday] {
			return apperror.Wrap(ErrInvalidAvailability, http.StatusBadRequest,
				fmt.Sprintf("duplicate window for weekday %d", w.Weekday))
		}
		seen[w.Weekday] = true
		if !w.From.Before(w.To) {
			return apperror.Wrap(ErrInvalidAvailability, http.StatusBadRequest,
				fmt.Sprintf("window start %s must be before end %s", w.From, w.To))
		}
	}
	return nil
}
