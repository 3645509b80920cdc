package worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/salon-booking-backend/internal/salon"
)

// WindowInput is an availability window as received from a client.
type WindowInput struct {
	Weekday int
	From    string
	To      string
}

// CreateRequest carries data to create a worker.
type CreateRequest struct {
	SalonID      string
	Name         string
	Surname      string
	Email        string
	PhoneNumber  string
	Services     []string
	Availability []WindowInput
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Worker, error)
	GetByID(ctx context.Context, id string) (*Worker, error)
	ListBySalon(ctx context.Context, salonID string) ([]*Worker, error)
}

// SalonLookup is the part of the salon module a worker depends on.
type SalonLookup interface {
	GetByID(ctx context.Context, id string) (*salon.Salon, error)
}

type service struct {
	repo   Repository
	salons SalonLookup
}

func NewService(repo Repository, salons SalonLookup) Service {
	return &service{repo: repo, salons: salons}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Worker, error) {
	name := strings.TrimSpace(req.Name)
	surname := strings.TrimSpace(req.Surname)
	if name == "" || surname == "" {
		return nil, ErrNameRequired
	}

	services := normalizeServices(req.Services)
	if len(services) == 0 {
		return nil, ErrServicesRequired
	}

	windows, err := parseWindows(req.Availability)
	if err != nil {
		return nil, err
	}
	if err := ValidateAvailability(windows); err != nil {
		return nil, err
	}

	if err := s.ensureSalon(ctx, req.SalonID); err != nil {
		return nil, err
	}

	w := &Worker{
		SalonID:      req.SalonID,
		Name:         name,
		Surname:      surname,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Services:     services,
		Availability: windows,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Worker, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListBySalon(ctx context.Context, salonID string) ([]*Worker, error) {
	if err := s.ensureSalon(ctx, salonID); err != nil {
		return nil, err
	}
	return s.repo.ListBySalon(ctx, salonID)
}

func (s *service) ensureSalon(ctx context.Context, salonID string) error {
	if _, err := s.salons.GetByID(ctx, salonID); err != nil {
		if errors.Is(err, salon.ErrNotFound) {
			return ErrSalonNotFound
		}
		return err
	}
	return nil
}

// normalizeServices trims names and drops blanks and duplicates, keeping order.
func normalizeServices(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func parseWindows(in []WindowInput) ([]AvailabilityWindow, error) {
	windows := make([]AvailabilityWindow, 0, len(in))
	for _, w := range in {
		from, err := ParseClock(w.From)
		if err != nil {
			return nil, apperror.Wrap(ErrInvalidAvailability, http.StatusBadRequest,
				fmt.Sprintf("invalid start time %q, expected HH:MM", w.From))
		}
		to, err := ParseClock(w.To)
		if err != nil {
			return nil, apperror.Wrap(ErrInvalidAvailability, http.StatusBadRequest,
				fmt.Sprintf("invalid end time %q, expected HH:MM", w.To))
		}
		windows = append(windows, AvailabilityWindow{Weekday: time.Weekday(w.Weekday), From: from, To: to})
	}
	return windows, nil
}
