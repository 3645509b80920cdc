package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/salon-booking-backend/internal/salon"
	"github.com/nekogravitycat/salon-booking-backend/internal/worker"
)

// memLedger is an in-memory Repository that enforces the same
// one-active-booking-per-slot rule as the database index.
type memLedger struct {
	mu      sync.Mutex
	rows    []*Booking
	findErr error
	finds   int
}

func (m *memLedger) Insert(_ context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rows {
		if r.WorkerID == b.WorkerID && r.Date.Equal(b.Date) && r.TimeSlot == b.TimeSlot && r.Status != StatusCancelled {
			return ErrSlotAlreadyBooked
		}
	}
	if b.Status == "" {
		b.Status = StatusConfirmed
	}
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memLedger) GetByID(_ context.Context, id string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memLedger) FindByWorkerAndDateRange(_ context.Context, workerID string, start, end time.Time, filter StatusFilter) ([]*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	if m.findErr != nil {
		return nil, m.findErr
	}

	var out []*Booking
	for _, r := range m.rows {
		if r.WorkerID != workerID || r.Date.Before(start) || !r.Date.Before(end) || !filter.matches(r.Status) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memLedger) List(_ context.Context, f Filter) ([]*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Booking
	for _, r := range m.rows {
		if (f.UserID != "" && (r.UserID == nil || *r.UserID != f.UserID)) ||
			(f.SalonID != "" && r.SalonID != f.SalonID) ||
			(f.WorkerID != "" && r.WorkerID != f.WorkerID) ||
			!f.Status.matches(r.Status) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	return out, nil
}

func (m *memLedger) Cancel(_ context.Context, id string) (*Booking, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID != id {
			continue
		}
		changed := r.Status != StatusCancelled
		if changed {
			r.Status = StatusCancelled
			r.UpdatedAt = time.Now()
		}
		cp := *r
		return &cp, changed, nil
	}
	return nil, false, ErrNotFound
}

func (m *memLedger) Complete(_ context.Context, id string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID != id {
			continue
		}
		if r.Status != StatusConfirmed {
			return nil, ErrInvalidTransition
		}
		r.Status = StatusCompleted
		cp := *r
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *memLedger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (f StatusFilter) matches(s Status) bool {
	if len(f.Only) > 0 {
		found := false
		for _, o := range f.Only {
			if o == s {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	for _, e := range f.Exclude {
		if e == s {
			return false
		}
	}
	return true
}

type fakeWorkers struct {
	mu    sync.Mutex
	byID  map[string]*worker.Worker
	calls int
}

func (f *fakeWorkers) GetByID(_ context.Context, id string) (*worker.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	w, ok := f.byID[id]
	if !ok {
		return nil, worker.ErrNotFound
	}
	return w, nil
}

type fakeSalons struct {
	mu    sync.Mutex
	byID  map[string]*salon.Salon
	calls int
}

func (f *fakeSalons) GetByID(_ context.Context, id string) (*salon.Salon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	s, ok := f.byID[id]
	if !ok {
		return nil, salon.ErrNotFound
	}
	return s, nil
}

type publishedEvent struct {
	key   string
	event Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	ev, _ := v.(Event)
	p.events = append(p.events, publishedEvent{key: key, event: ev})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, len(p.events))
	for i, e := range p.events {
		keys[i] = e.key
	}
	return keys
}
