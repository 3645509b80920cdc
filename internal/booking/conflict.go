package booking

import (
	"context"
	"time"
)

// SlotReader is the ledger query the conflict check needs.
type SlotReader interface {
	FindByWorkerAndDateRange(ctx context.Context, workerID string, start, end time.Time, filter StatusFilter) ([]*Booking, error)
}

// FreeSlots returns the candidates not held by an active booking of the
// worker on date. Order of candidates is preserved.
func FreeSlots(ctx context.Context, r SlotReader, workerID string, date time.Time, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return []string{}, nil
	}

	booked, err := r.FindByWorkerAndDateRange(ctx, workerID, date, date.AddDate(0, 0, 1), Active)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b.TimeSlot] = struct{}{}
	}

	free := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free, nil
}
