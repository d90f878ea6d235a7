package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/barbershop/appointments-backend/internal/appointment"
	"github.com/barbershop/appointments-backend/internal/catalog"
	"github.com/barbershop/appointments-backend/internal/notify"
	"github.com/barbershop/appointments-backend/internal/schedule"
	"github.com/barbershop/appointments-backend/internal/settings"
)

// maxSuggestions caps how many alternative start times are read back after a rejected booking.
const maxSuggestions = 3

type Service interface {
	// Handle runs one assistant turn. Expected failures (missing fields, taken slots, unknown
	// phone numbers) come back as an unsuccessful Reply; only an unknown intent is an error.
	Handle(ctx context.Context, req Request) (*Reply, error)
}

type service struct {
	appointments appointment.Service
	catalog      catalog.Service
	settings     settings.Service
	log          *zap.Logger
}

func NewService(appointments appointment.Service, catalog catalog.Service, settings settings.Service, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{appointments: appointments, catalog: catalog, settings: settings, log: log}
}

func (s *service) Handle(ctx context.Context, req Request) (*Reply, error) {
	s.log.Info("voice request", zap.String("intent", string(req.Intent)), zap.String("language", req.Lang()))

	switch req.Intent {
	case IntentBook:
		return s.book(ctx, req), nil
	case IntentCancel:
		return s.cancel(ctx, req), nil
	case IntentReschedule:
		return s.reschedule(ctx, req), nil
	case IntentInquiry:
		return s.inquiry(ctx, req), nil
	default:
		return nil, ErrUnknownIntent
	}
}

func fail(msg string) *Reply {
	return &Reply{Success: false, Message: msg}
}

// failed turns an unexpected error into a spoken apology and logs the cause.
func (s *service) failed(op string, req Request, err error) *Reply {
	s.log.Error("voice "+op+" failed", zap.String("intent", string(req.Intent)), zap.Error(err))
	return fail(sayGenericError.in(req.Lang()))
}

func (s *service) calendar(ctx context.Context) (*schedule.Calendar, error) {
	cal, err := s.settings.Calendar(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			return nil, schedule.KindConfigMissing.Err()
		}
		return nil, err
	}
	return cal, nil
}

// when renders an appointment start the way the SMS templates do.
func when(t time.Time, cal *schedule.Calendar, lang string) string {
	m := notify.Message{Language: lang}
	if cal != nil {
		m.Location = cal.Location
	}
	return m.FormatTime(t)
}

func (s *service) book(ctx context.Context, req Request) *Reply {
	lang := req.Lang()
	if blank(req.CustomerName, req.CustomerPhone, req.ServiceType, req.PreferredDate, req.PreferredTime) {
		return fail(sayMissingBooking.in(lang))
	}

	offering, err := s.catalog.FindByName(ctx, req.ServiceType)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return s.unknownService(ctx, req)
		}
		return s.failed("service lookup", req, err)
	}

	cal, err := s.calendar(ctx)
	if err != nil {
		return s.rejected(ctx, "calendar", req, err, nil, "", time.Time{})
	}
	start, err := cal.ParseDateTime(req.PreferredDate, req.PreferredTime)
	if err != nil {
		return fail(sayBadDateTime.in(lang))
	}

	a, err := s.appointments.Create(ctx, appointment.CreateRequest{
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerLanguage: lang,
		ServiceID:        offering.ID,
		StartTime:        start,
		CreatedBy:        appointment.SourceVoiceAI,
	})
	if err != nil {
		return s.rejected(ctx, "booking", req, err, cal, offering.ID, start)
	}

	return &Reply{
		Success:     true,
		Message:     fmt.Sprintf(sayBooked.in(lang), offering.LocalizedName(lang), when(a.StartTime, cal, lang)),
		Appointment: a,
	}
}

func (s *service) unknownService(ctx context.Context, req Request) *Reply {
	lang := req.Lang()
	offerings, err := s.catalog.List(ctx, false)
	if err != nil {
		return s.failed("service list", req, err)
	}
	names := make([]string, len(offerings))
	for i, o := range offerings {
		names[i] = strings.ToLower(o.LocalizedName(lang))
	}
	return &Reply{
		Message:  fmt.Sprintf(sayServiceNotFound.in(lang), req.ServiceType, spokenList(names, lang)),
		Services: offerings,
	}
}

// rejected phrases a booking or reschedule failure. When the slot was taken or closed, the
// nearest openings that day are offered instead.
func (s *service) rejected(ctx context.Context, op string, req Request, err error, cal *schedule.Calendar, serviceID string, start time.Time) *Reply {
	lang := req.Lang()
	kind := schedule.KindOf(err)
	if kind == schedule.KindNone {
		return s.failed(op, req, err)
	}
	msg := rejection(kind, lang)

	switch kind {
	case schedule.KindAppointmentConflict, schedule.KindTimeBlocked, schedule.KindOutsideBusinessHours:
		if alt := s.openings(ctx, req, cal, serviceID, start); alt != "" {
			msg += fmt.Sprintf(sayOpenings.in(lang), alt)
		}
	}
	return &Reply{Message: msg, Reason: kind}
}

func (s *service) openings(ctx context.Context, req Request, cal *schedule.Calendar, serviceID string, start time.Time) string {
	if cal == nil || serviceID == "" {
		return ""
	}
	av, err := s.appointments.Availability(ctx, req.PreferredDate, serviceID)
	if err != nil {
		s.log.Warn("voice availability lookup failed", zap.Error(err))
		return ""
	}

	var picks []string
	for _, slot := range av.Slots {
		if slot.Start.Before(start) {
			continue
		}
		picks = append(picks, clock(slot.Start, cal.Location, req.Lang()))
		if len(picks) == maxSuggestions {
			break
		}
	}
	if len(picks) == 0 {
		for i := len(av.Slots) - 1; i >= 0 && len(picks) < maxSuggestions; i-- {
			picks = append([]string{clock(av.Slots[i].Start, cal.Location, req.Lang())}, picks...)
		}
	}
	return spokenList(picks, req.Lang())
}

// locate resolves the appointment a cancel or reschedule refers to: by id when given,
// otherwise the caller's next upcoming appointment. A nil appointment comes with the reply to send.
func (s *service) locate(ctx context.Context, req Request) (*appointment.Appointment, *Reply) {
	lang := req.Lang()
	if id := strings.TrimSpace(req.AppointmentID); id != "" {
		a, err := s.appointments.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, appointment.ErrNotFound) {
				return nil, fail(sayAppointmentNotFound.in(lang))
			}
			return nil, s.failed("appointment lookup", req, err)
		}
		return a, nil
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, fail(sayMissingLookup.in(lang))
	}
	a, err := s.appointments.NextUpcoming(ctx, req.CustomerPhone)
	if err != nil {
		if errors.Is(err, appointment.ErrNoUpcoming) {
			return nil, fail(sayNoUpcoming.in(lang))
		}
		return nil, s.failed("appointment lookup", req, err)
	}
	return a, nil
}

func (s *service) cancel(ctx context.Context, req Request) *Reply {
	lang := req.Lang()
	a, reply := s.locate(ctx, req)
	if reply != nil {
		return reply
	}

	cancelled, err := s.appointments.Cancel(ctx, a.ID)
	if err != nil {
		return s.failed("cancel", req, err)
	}

	cal, _ := s.settings.Calendar(ctx)
	return &Reply{
		Success:     true,
		Message:     fmt.Sprintf(sayCancelled.in(lang), when(cancelled.StartTime, cal, lang)),
		Appointment: cancelled,
	}
}

func (s *service) reschedule(ctx context.Context, req Request) *Reply {
	lang := req.Lang()
	if blank(req.PreferredDate, req.PreferredTime) {
		return fail(sayMissingNewTime.in(lang))
	}

	a, reply := s.locate(ctx, req)
	if reply != nil {
		return reply
	}
	if a.Status == appointment.StatusCancelled {
		return fail(sayAppointmentInactive.in(lang))
	}

	cal, err := s.calendar(ctx)
	if err != nil {
		return s.rejected(ctx, "calendar", req, err, nil, "", time.Time{})
	}
	start, err := cal.ParseDateTime(req.PreferredDate, req.PreferredTime)
	if err != nil {
		return fail(sayBadDateTime.in(lang))
	}

	updated, err := s.appointments.Update(ctx, a.ID, appointment.UpdateRequest{StartTime: &start})
	if err != nil {
		return s.rejected(ctx, "reschedule", req, err, cal, a.ServiceID, start)
	}
	return &Reply{
		Success:     true,
		Message:     fmt.Sprintf(sayRescheduled.in(lang), when(updated.StartTime, cal, lang)),
		Appointment: updated,
	}
}

func (s *service) inquiry(ctx context.Context, req Request) *Reply {
	lang := req.Lang()
	offerings, err := s.catalog.List(ctx, false)
	if err != nil {
		return s.failed("service list", req, err)
	}
	bs, err := s.settings.Get(ctx)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		return s.failed("settings lookup", req, err)
	}

	minutes := "minutos"
	if lang == "en" {
		minutes = "minutes"
	}
	items := make([]string, len(offerings))
	for i, o := range offerings {
		items[i] = fmt.Sprintf("%s: $%g (%d %s)", o.LocalizedName(lang), o.Price, o.DurationMinutes, minutes)
	}

	hours := sayClosed.in(lang)
	if bs != nil {
		hours = describeHours(bs.BusinessHours, lang)
	}
	return &Reply{
		Success:  true,
		Message:  fmt.Sprintf(sayInquiry.in(lang), strings.Join(items, ", "), hours),
		Services: offerings,
		Settings: bs,
	}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
