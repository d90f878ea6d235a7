package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/barbershop/appointments-backend/internal/blockedtime"
	"github.com/barbershop/appointments-backend/internal/catalog"
	"github.com/barbershop/appointments-backend/internal/customer"
	"github.com/barbershop/appointments-backend/internal/metrics"
	"github.com/barbershop/appointments-backend/internal/notify"
	"github.com/barbershop/appointments-backend/internal/pkg/apperror"
	"github.com/barbershop/appointments-backend/internal/schedule"
	"github.com/barbershop/appointments-backend/internal/settings"
)

type Service interface {
	List(ctx context.Context, q ListQuery) ([]*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Appointment, error)
	// Cancel moves an appointment to cancelled. Cancelling twice is a no-op.
	Cancel(ctx context.Context, id string) (*Appointment, error)
	// Availability lists the open start times for a service on a business day (YYYY-MM-DD).
	Availability(ctx context.Context, date string, serviceID string) (*Availability, error)
	// NextUpcoming finds the earliest non-cancelled appointment for the customer owning phone
	// within the next month.
	NextUpcoming(ctx context.Context, phone string) (*Appointment, error)
	// SendReminders notifies customers whose appointment starts within the next window and
	// who have not been reminded yet. It returns how many reminders were delivered.
	SendReminders(ctx context.Context, window time.Duration) (int, error)
}

// Deps are the collaborators of the appointment service. Notifier and Metrics may be nil.
type Deps struct {
	Repo         Repository
	Settings     settings.Service
	Catalog      catalog.Service
	Customers    customer.Service
	BlockedTimes blockedtime.Service
	Notifier     *notify.Notifier
	Metrics      *metrics.BookingMetrics
	Log          *zap.Logger
	Now          func() time.Time
}

type service struct {
	repo      Repository
	settings  settings.Service
	catalog   catalog.Service
	customers customer.Service
	blocked   blockedtime.Service
	notifier  *notify.Notifier
	metrics   *metrics.BookingMetrics
	log       *zap.Logger
	now       func() time.Time
}

func NewService(d Deps) Service {
	s := &service{
		repo:      d.Repo,
		settings:  d.Settings,
		catalog:   d.Catalog,
		customers: d.Customers,
		blocked:   d.BlockedTimes,
		notifier:  d.Notifier,
		metrics:   d.Metrics,
		log:       d.Log,
		now:       d.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// upcomingHorizon bounds NextUpcoming.
const upcomingHorizon = 1 // months

// snapshot is the state a booking decision is made against.
type snapshot struct {
	business     *settings.BusinessSettings
	cal          *schedule.Calendar // nil when the shop is not configured
	appointments []*Appointment
	blocked      []*blockedtime.BlockedTime
}

func (s *service) storageErr(op string, err error) error {
	s.log.Error("booking storage failure", zap.String("op", op), zap.Error(err))
	e := *ErrStorageUnavailable
	e.Err = err
	return &e
}

// business loads the settings row. A missing or unusable row yields a nil calendar, not an error.
func (s *service) business(ctx context.Context) (*settings.BusinessSettings, *schedule.Calendar, error) {
	bs, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, s.storageErr("load settings", err)
	}
	cal, err := bs.Calendar()
	if err != nil {
		s.log.Error("stored business settings are invalid", zap.Error(err))
		return bs, nil, nil
	}
	return bs, cal, nil
}

// calendarOrUTC is used where a missing configuration should not block reads.
func (s *service) calendarOrUTC(ctx context.Context) (*schedule.Calendar, error) {
	_, cal, err := s.business(ctx)
	if err != nil {
		return nil, err
	}
	if cal == nil {
		cal = &schedule.Calendar{Location: time.UTC}
	}
	return cal, nil
}

// loadDay fetches the settings plus every appointment and block touching the business day of at.
func (s *service) loadDay(ctx context.Context, at time.Time) (snapshot, error) {
	bs, cal, err := s.business(ctx)
	if err != nil {
		return snapshot{}, err
	}
	snap := snapshot{business: bs, cal: cal}
	if cal == nil {
		return snap, nil
	}
	if err := s.fillDay(ctx, &snap, at); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func (s *service) fillDay(ctx context.Context, snap *snapshot, at time.Time) error {
	day := snap.cal.DayBounds(at)
	var err error
	snap.appointments, err = s.repo.List(ctx, Filter{From: day.Start, To: day.End})
	if err != nil {
		return s.storageErr("load appointments", err)
	}
	snap.blocked, err = s.blocked.ListRange(ctx, day.Start, day.End)
	if err != nil {
		return s.storageErr("load blocked times", err)
	}
	return nil
}

// offering resolves a bookable service. Unknown and inactive services are rejections.
func (s *service) offering(ctx context.Context, id string) (*catalog.Offering, error) {
	o, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, schedule.CheckService(false, false).Err()
		}
		return nil, s.storageErr("load service", err)
	}
	if kind := schedule.CheckService(true, o.Active); kind != schedule.KindNone {
		return nil, kind.Err()
	}
	return o, nil
}

func (s *service) validate(snap snapshot, req schedule.BookingRequest) error {
	started := time.Now()
	d := schedule.ValidateBooking(s.now(), snap.cal, req, snap.appointments, snap.blocked)
	s.metrics.ObserveValidation(time.Since(started).Seconds())
	if d.Valid() {
		return nil
	}

	base := d.Err()
	var appErr *apperror.AppError
	if !errors.As(base, &appErr) {
		return base
	}
	switch d.Kind {
	case schedule.KindAppointmentConflict:
		out := make([]Conflict, len(d.Appointments))
		for i, a := range d.Appointments {
			out[i] = Conflict{ID: a.ID, StartTime: a.StartTime, EndTime: a.EndTime}
		}
		return appErr.WithDetails(out)
	case schedule.KindTimeBlocked:
		out := make([]Conflict, len(d.Blocked))
		for i, b := range d.Blocked {
			out[i] = Conflict{ID: b.ID, StartTime: b.StartTime, EndTime: b.EndTime, Reason: b.Reason}
		}
		return appErr.WithDetails(out)
	}
	return base
}

func channelOf(src Source) string {
	if src == SourceVoiceAI {
		return metrics.ChannelVoice
	}
	return metrics.ChannelDashboard
}

// reject records a refused booking and passes err through.
func (s *service) reject(channel string, err error) error {
	if kind := schedule.KindOf(err); kind != schedule.KindNone {
		s.metrics.ObserveRejection(string(kind))
		s.metrics.ObserveBooking(channel, "rejected")
		s.log.Info("booking rejected", zap.String("channel", channel), zap.String("reason", string(kind)))
		return err
	}
	s.metrics.ObserveBooking(channel, "error")
	return err
}

func (s *service) List(ctx context.Context, q ListQuery) ([]*Appointment, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	cal, err := s.calendarOrUTC(ctx)
	if err != nil {
		return nil, err
	}

	var from, to time.Time
	switch {
	case q.Date != "":
		day, err := cal.ParseDate(q.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		bounds := cal.DayBounds(day)
		from, to = bounds.Start, bounds.End
	case q.StartDate != "" && q.EndDate != "":
		start, err := cal.ParseDate(q.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		end, err := cal.ParseDate(q.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if end.Before(start) {
			return nil, ErrInvalidRange
		}
		from, to = start, cal.DayBounds(end).End
	default:
		today := cal.DayBounds(s.now())
		from, to = today.Start, today.End
	}

	items, err := s.repo.List(ctx, Filter{From: from, To: to, Status: q.Status})
	if err != nil {
		return nil, s.storageErr("list appointments", err)
	}
	return items, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	if req.CreatedBy == "" {
		req.CreatedBy = SourceManual
	}
	if !req.CreatedBy.Valid() {
		return nil, ErrInvalidSource
	}
	channel := channelOf(req.CreatedBy)

	if kind := schedule.ValidateCustomerInfo(req.CustomerName, req.CustomerPhone); kind != schedule.KindNone {
		return nil, s.reject(channel, kind.Err())
	}
	o, err := s.offering(ctx, req.ServiceID)
	if err != nil {
		return nil, s.reject(channel, err)
	}

	start := req.StartTime
	end := start.Add(o.Duration())
	snap, err := s.loadDay(ctx, start)
	if err != nil {
		return nil, s.reject(channel, err)
	}
	if err := s.validate(snap, schedule.BookingRequest{Start: start, End: end}); err != nil {
		return nil, s.reject(channel, err)
	}

	cust, err := s.customers.FindOrCreate(ctx, customer.CreateRequest{
		Name:              req.CustomerName,
		Phone:             req.CustomerPhone,
		PreferredLanguage: customer.Language(req.CustomerLanguage),
	})
	if err != nil {
		return nil, s.reject(channel, err)
	}

	a := &Appointment{
		CustomerID:       cust.ID,
		ServiceID:        o.ID,
		StartTime:        start,
		EndTime:          end,
		Status:           StatusPending,
		Price:            o.Price,
		Notes:            trimmedOrNil(req.Notes),
		CreatedBy:        req.CreatedBy,
		CustomerName:     cust.Name,
		CustomerPhone:    cust.Phone,
		CustomerLanguage: string(cust.PreferredLanguage),
		ServiceName:      o.Name,
		ServiceNameES:    o.NameES,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, ErrTimeConflict) {
			s.log.Warn("overlap caught by storage constraint", zap.Time("start", start))
			return nil, s.reject(channel, err)
		}
		return nil, s.reject(channel, s.storageErr("create appointment", err))
	}

	s.metrics.ObserveBooking(channel, "created")
	s.log.Info("appointment booked",
		zap.String("appointment_id", a.ID),
		zap.String("channel", channel),
		zap.Time("start", a.StartTime),
	)
	s.notify(ctx, notify.KindConfirmation, a, snap.business, time.Time{})
	return a, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := *a

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		a.Status = *req.Status
	}
	if req.Notes != nil {
		a.Notes = trimmedOrNil(req.Notes)
	}

	// A cancelled appointment no longer holds its slot, so bringing it back is checked like a new booking.
	reactivated := previous.Status == StatusCancelled && a.Status != StatusCancelled

	var business *settings.BusinessSettings
	if req.StartTime != nil || req.ServiceID != nil || reactivated {
		serviceID := a.ServiceID
		if req.ServiceID != nil {
			serviceID = *req.ServiceID
		}

		var o *catalog.Offering
		if serviceID != previous.ServiceID {
			if o, err = s.offering(ctx, serviceID); err != nil {
				return nil, s.reject(channelOf(a.CreatedBy), err)
			}
			a.Price = o.Price
		} else if o, err = s.catalog.GetByID(ctx, serviceID); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, s.reject(channelOf(a.CreatedBy), schedule.CheckService(false, false).Err())
			}
			return nil, s.storageErr("load service", err)
		}

		start := a.StartTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		a.ServiceID = o.ID
		a.ServiceName, a.ServiceNameES = o.Name, o.NameES
		a.StartTime, a.EndTime = start, start.Add(o.Duration())

		snap, err := s.loadDay(ctx, start)
		if err != nil {
			return nil, err
		}
		business = snap.business
		if err := s.validate(snap, schedule.BookingRequest{Start: a.StartTime, End: a.EndTime, ExcludeID: a.ID}); err != nil {
			return nil, s.reject(channelOf(a.CreatedBy), err)
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, ErrTimeConflict) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, s.storageErr("update appointment", err)
	}

	switch {
	case a.Status == StatusCancelled && previous.Status != StatusCancelled:
		s.notify(ctx, notify.KindCancellation, a, business, time.Time{})
	case a.Status != StatusCancelled && !a.StartTime.Equal(previous.StartTime):
		s.notify(ctx, notify.KindReschedule, a, business, previous.StartTime)
	}
	return a, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCancelled {
		return a, nil
	}

	cancelled := StatusCancelled
	return s.Update(ctx, id, UpdateRequest{Status: &cancelled})
}

func (s *service) Availability(ctx context.Context, date string, serviceID string) (*Availability, error) {
	o, err := s.offering(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	bs, cal, err := s.business(ctx)
	if err != nil {
		return nil, err
	}
	if cal == nil {
		return nil, schedule.KindConfigMissing.Err()
	}
	day, err := cal.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	snap := snapshot{business: bs, cal: cal}
	if err := s.fillDay(ctx, &snap, day); err != nil {
		return nil, err
	}
	slots := schedule.AvailableSlots(cal, day, o.Duration(), snap.appointments, snap.blocked)

	result := "available"
	if len(slots) == 0 {
		result = "none"
	}
	s.metrics.ObserveAvailability(result)

	return &Availability{
		Date:        day,
		ServiceID:   o.ID,
		ServiceName: o.Name,
		Slots:       slots,
	}, nil
}

func (s *service) NextUpcoming(ctx context.Context, phone string) (*Appointment, error) {
	cust, err := s.customers.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, ErrNoUpcoming
		}
		return nil, s.storageErr("load customer", err)
	}

	now := s.now()
	items, err := s.repo.List(ctx, Filter{
		From:       now,
		To:         now.AddDate(0, upcomingHorizon, 0),
		StartsFrom: now,
		CustomerID: cust.ID,
		Limit:      1,
	})
	if err != nil {
		return nil, s.storageErr("list upcoming appointments", err)
	}
	if len(items) == 0 {
		return nil, ErrNoUpcoming
	}
	return items[0], nil
}

func (s *service) SendReminders(ctx context.Context, window time.Duration) (int, error) {
	now := s.now()
	notSent := false
	due, err := s.repo.List(ctx, Filter{From: now, To: now.Add(window), ReminderSent: &notSent})
	if err != nil {
		return 0, err
	}

	if len(due) == 0 {
		return 0, nil
	}
	bs, _, err := s.business(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, a := range due {
		if a.StartTime.Before(now) {
			continue
		}
		if !s.notify(ctx, notify.KindReminder, a, bs, time.Time{}) {
			continue
		}
		if err := s.repo.MarkReminderSent(ctx, a.ID); err != nil {
			s.log.Warn("mark reminder sent failed", zap.String("appointment_id", a.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *service) notify(ctx context.Context, kind notify.Kind, a *Appointment, bs *settings.BusinessSettings, previous time.Time) bool {
	m := notify.Message{
		Kind:          kind,
		Language:      a.CustomerLanguage,
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		ServiceName:   a.ServiceName,
		Start:         a.StartTime,
		PreviousStart: previous,
	}
	if a.CustomerLanguage != string(customer.LanguageEN) && a.ServiceNameES != "" {
		m.ServiceName = a.ServiceNameES
	}
	if bs == nil {
		bs, _, _ = s.business(ctx)
	}
	if bs != nil {
		m.BusinessName = bs.BusinessName
		if bs.PhoneNumber != nil {
			m.BusinessPhone = *bs.PhoneNumber
		}
		if loc, err := time.LoadLocation(bs.Timezone); err == nil {
			m.Location = loc
		}
	}
	return s.notifier.Notify(ctx, m)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
