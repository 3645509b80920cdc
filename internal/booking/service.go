package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/locale"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/mq"
	"github.com/nekogravitycat/salon-booking-backend/internal/salon"
	"github.com/nekogravitycat/salon-booking-backend/internal/worker"
)

// CreateRequest carries the raw booking input. Required fields are checked
// by the service so that every missing one can be reported at once.
type CreateRequest struct {
	UserID      string
	SalonID     string
	WorkerID    string
	Service     string
	Date        string
	TimeSlot    string
	ClientName  string
	ClientEmail string
	ClientPhone string
}

// AvailableSlots is the result of a slot search for one worker and day.
type AvailableSlots struct {
	Worker    *worker.Worker
	Date      time.Time
	Weekday   time.Weekday
	Available bool   // false when the worker has no window that weekday
	Reason    string // localized explanation when Available is false
	Slots     []string
}

// View is a booking together with the directory records it refers to.
// Worker or Salon is nil when not requested or no longer present.
type View struct {
	Booking *Booking
	Worker  *worker.Worker
	Salon   *salon.Salon
}

type Service interface {
	ListAvailableSlots(ctx context.Context, workerID, date, service string) (*AvailableSlots, error)
	Create(ctx context.Context, req CreateRequest) (*View, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
	Complete(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, scope Scope) ([]*View, error)
}

// WorkerDirectory resolves workers.
type WorkerDirectory interface {
	GetByID(ctx context.Context, id string) (*worker.Worker, error)
}

// SalonDirectory resolves salons.
type SalonDirectory interface {
	GetByID(ctx context.Context, id string) (*salon.Salon, error)
}

// Options tunes calendar handling of the service.
type Options struct {
	Location *time.Location   // timezone deciding what "today" is
	Lang     string           // language of user-facing day names
	Now      func() time.Time // clock, defaults to time.Now

	// EnforceCalendar hides slots that have already started from listings
	// and rejects bookings in the past or outside the worker's window.
	EnforceCalendar bool
}

type service struct {
	repo    Repository
	workers WorkerDirectory
	salons  SalonDirectory
	events  mq.Publisher
	logger  *zap.Logger
	loc     *time.Location
	lang    string
	now     func() time.Time
	strict  bool
}

func NewService(repo Repository, workers WorkerDirectory, salons SalonDirectory, events mq.Publisher, logger *zap.Logger, opts Options) Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Lang == "" {
		opts.Lang = locale.Romanian
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if events == nil {
		events = mq.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:    repo,
		workers: workers,
		salons:  salons,
		events:  events,
		logger:  logger,
		loc:     opts.Location,
		lang:    opts.Lang,
		now:     opts.Now,
		strict:  opts.EnforceCalendar,
	}
}

func (s *service) ListAvailableSlots(ctx context.Context, workerID, date, serviceName string) (*AvailableSlots, error) {
	serviceName = strings.TrimSpace(serviceName)
	if missing := missingFields(map[string]string{"date": date, "service": serviceName}, "date", "service"); len(missing) > 0 {
		return nil, validationError(missing)
	}
	workerID, err := parseID("worker_id", workerID)
	if err != nil {
		return nil, err
	}
	day, err := ParseDate(date, s.loc)
	if err != nil {
		return nil, err
	}

	w, err := s.resolveWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if !w.Offers(serviceName) {
		return nil, serviceNotOffered(serviceName)
	}

	result := &AvailableSlots{Worker: w, Date: day, Weekday: day.Weekday(), Slots: []string{}}

	window, ok := WindowFor(w.Availability, day)
	if !ok {
		result.Reason = locale.NotAvailableMessage(s.lang, day.Weekday())
		return result, nil
	}
	result.Available = true

	candidates := window.Slots()
	if s.strict {
		candidates = s.notStarted(day, candidates)
	}
	free, err := FreeSlots(ctx, s.repo, w.ID, day, candidates)
	if err != nil {
		return nil, err
	}
	result.Slots = free
	return result, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	req = trimRequest(req)

	// 1. Required fields
	fields := map[string]string{
		"salon_id":     req.SalonID,
		"worker_id":    req.WorkerID,
		"service":      req.Service,
		"date":         req.Date,
		"time_slot":    req.TimeSlot,
		"client_name":  req.ClientName,
		"client_email": req.ClientEmail,
		"client_phone": req.ClientPhone,
	}
	if missing := missingFields(fields,
		"salon_id", "worker_id", "service", "date", "time_slot",
		"client_name", "client_email", "client_phone",
	); len(missing) > 0 {
		return nil, validationError(missing)
	}

	// 2. Formats
	var err error
	if req.UserID != "" {
		if req.UserID, err = parseID("user_id", req.UserID); err != nil {
			return nil, err
		}
	}
	if req.SalonID, err = parseID("salon_id", req.SalonID); err != nil {
		return nil, err
	}
	if req.WorkerID, err = parseID("worker_id", req.WorkerID); err != nil {
		return nil, err
	}
	day, err := ParseDate(req.Date, s.loc)
	if err != nil {
		return nil, err
	}
	hour, err := ParseTimeSlot(req.TimeSlot)
	if err != nil {
		return nil, err
	}

	// 3. Referenced records
	w, err := s.resolveWorker(ctx, req.WorkerID)
	if err != nil {
		return nil, err
	}
	sal, err := s.resolveSalon(ctx, req.SalonID)
	if err != nil {
		return nil, err
	}

	// 4. Association
	if w.SalonID != sal.ID {
		return nil, ErrWorkerSalonMismatch
	}

	// 5. Service
	if !w.Offers(req.Service) {
		return nil, serviceNotOffered(req.Service)
	}

	// 6. Calendar, when enforced
	if s.strict {
		if err := s.checkCalendar(w, day, hour); err != nil {
			return nil, err
		}
	}

	// 7. Conditional insert; the ledger rejects an occupied slot atomically.
	b := &Booking{
		SalonID:  sal.ID,
		WorkerID: w.ID,
		Service:  req.Service,
		Date:     day,
		TimeSlot: FormatSlot(hour),
		Status:   StatusConfirmed,
		Client: Client{
			Name:  req.ClientName,
			Email: req.ClientEmail,
			Phone: req.ClientPhone,
		},
	}
	if req.UserID != "" {
		userID := req.UserID
		b.UserID = &userID
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		if errors.Is(err, ErrSlotAlreadyBooked) {
			s.logger.Debug("slot already booked",
				zap.String("worker_id", b.WorkerID),
				zap.String("date", b.Date.Format(DateLayout)),
				zap.String("time_slot", b.TimeSlot),
			)
		}
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("worker_id", b.WorkerID),
		zap.String("date", b.Date.Format(DateLayout)),
		zap.String("time_slot", b.TimeSlot),
	)
	s.publish(ctx, EventCreated, b)

	return &View{Booking: b, Worker: w, Salon: sal}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	id, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Cancel releases the booking's slot. Cancelling twice is a no-op success.
func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	id, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	b, changed, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking cancelled", zap.String("booking_id", b.ID))
		s.publish(ctx, EventCancelled, b)
	}
	return b, nil
}

func (s *service) Complete(ctx context.Context, id string) (*Booking, error) {
	id, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransition(StatusCompleted) {
		return nil, ErrInvalidTransition
	}

	// The update re-checks the status.
	b, err := s.repo.Complete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("booking completed", zap.String("booking_id", b.ID))
	s.publish(ctx, EventCompleted, b)
	return b, nil
}

// List returns the bookings of a user, salon or worker, newest day first.
// User listings carry worker and salon, salon listings carry the worker,
// worker listings are returned bare.
func (s *service) List(ctx context.Context, scope Scope) ([]*View, error) {
	id, err := parseID(string(scope.Kind)+"_id", scope.ID)
	if err != nil {
		return nil, err
	}

	var filter Filter
	withWorker, withSalon := false, false
	switch scope.Kind {
	case ScopeUser:
		filter.UserID = id
		withWorker, withSalon = true, true
	case ScopeSalon:
		filter.SalonID = id
		withWorker = true
	case ScopeWorker:
		filter.WorkerID = id
	default:
		return nil, fmt.Errorf("unknown booking scope %q", scope.Kind)
	}

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	workers := map[string]*worker.Worker{}
	salons := map[string]*salon.Salon{}

	views := make([]*View, 0, len(bookings))
	for _, b := range bookings {
		v := &View{Booking: b}
		if withWorker {
			w, ok := workers[b.WorkerID]
			if !ok {
				if w, err = s.lookupWorker(ctx, b.WorkerID); err != nil {
					return nil, err
				}
				workers[b.WorkerID] = w
			}
			v.Worker = w
		}
		if withSalon {
			sal, ok := salons[b.SalonID]
			if !ok {
				if sal, err = s.lookupSalon(ctx, b.SalonID); err != nil {
					return nil, err
				}
				salons[b.SalonID] = sal
			}
			v.Salon = sal
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *service) resolveWorker(ctx context.Context, id string) (*worker.Worker, error) {
	w, err := s.workers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *service) resolveSalon(ctx context.Context, id string) (*salon.Salon, error) {
	sal, err := s.salons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, salon.ErrNotFound) {
			return nil, ErrSalonNotFound
		}
		return nil, err
	}
	return sal, nil
}

// lookupWorker is resolveWorker for display: a missing record yields nil.
func (s *service) lookupWorker(ctx context.Context, id string) (*worker.Worker, error) {
	w, err := s.resolveWorker(ctx, id)
	if errors.Is(err, ErrWorkerNotFound) {
		return nil, nil
	}
	return w, err
}

func (s *service) lookupSalon(ctx context.Context, id string) (*salon.Salon, error) {
	sal, err := s.resolveSalon(ctx, id)
	if errors.Is(err, ErrSalonNotFound) {
		return nil, nil
	}
	return sal, err
}

// checkCalendar rejects a slot that has already started or that lies
// outside the worker's window for the day.
func (s *service) checkCalendar(w *worker.Worker, day time.Time, hour int) error {
	if s.started(day, hour) {
		return ErrDateInPast
	}
	window, ok := WindowFor(w.Availability, day)
	if !ok {
		return apperror.Wrap(ErrOutsideAvailability, http.StatusBadRequest,
			locale.NotAvailableMessage(s.lang, day.Weekday()))
	}
	if !window.Contains(FormatSlot(hour)) {
		return ErrOutsideAvailability
	}
	return nil
}

// started reports whether the slot starting at hour on day has begun in the
// service's timezone.
func (s *service) started(day time.Time, hour int) bool {
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, s.loc)
	return start.Before(s.now())
}

func (s *service) notStarted(day time.Time, slots []string) []string {
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		h, err := ParseTimeSlot(slot)
		if err != nil || s.started(day, h) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

func (s *service) publish(ctx context.Context, eventType string, b *Booking) {
	if err := s.events.PublishJSON(ctx, eventType, NewEvent(eventType, b, s.now())); err != nil {
		s.logger.Warn("publish booking event failed",
			zap.String("event", eventType),
			zap.String("booking_id", b.ID),
			zap.Error(err),
		)
	}
}

func trimRequest(req CreateRequest) CreateRequest {
	req.UserID = strings.TrimSpace(req.UserID)
	req.SalonID = strings.TrimSpace(req.SalonID)
	req.WorkerID = strings.TrimSpace(req.WorkerID)
	req.Service = strings.TrimSpace(req.Service)
	req.Date = strings.TrimSpace(req.Date)
	req.TimeSlot = strings.TrimSpace(req.TimeSlot)
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientEmail = strings.TrimSpace(req.ClientEmail)
	req.ClientPhone = strings.TrimSpace(req.ClientPhone)
	return req
}

// missingFields returns, in the given order, the names whose value is blank.
func missingFields(values map[string]string, order ...string) []string {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func validationError(missing []string) error {
	return apperror.Wrap(ErrValidation, http.StatusBadRequest,
		"missing required fields: "+strings.Join(missing, ", "))
}

// parseID accepts only the hyphenated 36-character uuid form and returns
// it lowercased. uuid.Parse alone also admits urn, braced and dashless ids.
func parseID(field, id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil || len(id) != 36 {
		return "", apperror.Wrap(ErrInvalidID, http.StatusBadRequest, "invalid "+field+" format")
	}
	return u.String(), nil
}

func serviceNotOffered(name string) error {
	return apperror.Wrap(ErrServiceNotOffered, http.StatusBadRequest,
		fmt.Sprintf("worker does not provide the %s service", name))
}
