package appointment

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/barbershop/appointments-backend/internal/blockedtime"
	"github.com/barbershop/appointments-backend/internal/catalog"
	"github.com/barbershop/appointments-backend/internal/customer"
	"github.com/barbershop/appointments-backend/internal/schedule"
	"github.com/barbershop/appointments-backend/internal/settings"
)

type fakeSettings struct {
	settings.Service
	bs  *settings.BusinessSettings
	err error
}

func (f *fakeSettings) Get(context.Context) (*settings.BusinessSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.bs == nil {
		return nil, settings.ErrNotFound
	}
	cp := *f.bs
	return &cp, nil
}

type fakeCatalog struct {
	catalog.Service
	items map[string]*catalog.Offering
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (*catalog.Offering, error) {
	o, ok := f.items[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return o, nil
}

type fakeCustomers struct {
	customer.Service
	byPhone map[string]*customer.Customer
	created int
}

func (f *fakeCustomers) GetByPhone(_ context.Context, phone string) (*customer.Customer, error) {
	c, ok := f.byPhone[phone]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomers) FindOrCreate(_ context.Context, req customer.CreateRequest) (*customer.Customer, error) {
	if c, ok := f.byPhone[req.Phone]; ok {
		return c, nil
	}
	lang := req.PreferredLanguage
	if lang == "" {
		lang = customer.DefaultLanguage
	}
	f.created++
	c := &customer.Customer{ID: "cust-" + req.Phone, Name: strings.TrimSpace(req.Name), Phone: req.Phone, PreferredLanguage: lang}
	f.byPhone[req.Phone] = c
	return c, nil
}

type fakeBlocked struct {
	blockedtime.Service
	items []*blockedtime.BlockedTime
}

func (f *fakeBlocked) ListRange(_ context.Context, from, to time.Time) ([]*blockedtime.BlockedTime, error) {
	var out []*blockedtime.BlockedTime
	for _, b := range f.items {
		if b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeRepo stores appointments in memory and enforces the overlap constraint the database has.
type fakeRepo struct {
	items    map[string]*Appointment
	listErr  error
	reminded []string
}

func newFakeRepo(items ...*Appointment) *fakeRepo {
	r := &fakeRepo{items: map[string]*Appointment{}}
	for _, a := range items {
		r.items[a.ID] = a
	}
	return r
}

func (r *fakeRepo) List(_ context.Context, f Filter) ([]*Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*Appointment
	for _, a := range r.items {
		if !a.StartTime.Before(f.To) || !a.EndTime.After(f.From) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Status == "" && !f.IncludeCancelled && a.Status == StatusCancelled {
			continue
		}
		if f.CustomerID != "" && a.CustomerID != f.CustomerID {
			continue
		}
		if f.ReminderSent != nil && a.ReminderSent != *f.ReminderSent {
			continue
		}
		if !f.StartsFrom.IsZero() && a.StartTime.Before(f.StartsFrom) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Appointment, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) overlaps(a *Appointment) bool {
	if a.Status == StatusCancelled {
		return false
	}
	for _, other := range r.items {
		if other.ID != a.ID && other.Status != StatusCancelled && schedule.Overlaps(a.Span(), other.Span()) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) Create(_ context.Context, a *Appointment) error {
	if r.overlaps(a) {
		return ErrTimeConflict
	}
	a.ID = "appt-new"
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := r.items[a.ID]; !ok {
		return ErrNotFound
	}
	if r.overlaps(a) {
		return ErrTimeConflict
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeRepo) MarkReminderSent(_ context.Context, id string) error {
	a, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	a.ReminderSent = true
	r.reminded = append(r.reminded, id)
	return nil
}

// staleRepo hides existing appointments from the snapshot so only the write-time check sees them.
type staleRepo struct {
	*fakeRepo
}

func (r staleRepo) List(context.Context, Filter) ([]*Appointment, error) {
	return nil, nil
}

type recordingSender struct {
	bodies []string
	to     []string
}

func (s *recordingSender) ProviderID() string { return "test" }

func (s *recordingSender) Send(_ context.Context, to, body string) error {
	s.to = append(s.to, to)
	s.bodies = append(s.bodies, body)
	return nil
}
