package voice

import (
	"fmt"
	"strings"
	"time"

	"github.com/barbershop/appointments-backend/internal/schedule"
)

type phrase struct{ es, en string }

func (p phrase) in(lang string) string {
	if lang == "en" {
		return p.en
	}
	return p.es
}

var (
	sayNotUnderstood = phrase{
		es: "No entendí tu solicitud. ¿Puedes repetir?",
		en: "I did not understand your request. Can you repeat?",
	}
	sayGenericError = phrase{
		es: "Lo siento, hubo un error. Por favor intenta de nuevo.",
		en: "Sorry, there was an error. Please try again.",
	}
	sayMissingBooking = phrase{
		es: "Necesito tu nombre, teléfono, servicio, fecha y hora preferida.",
		en: "I need your name, phone, service, preferred date and time.",
	}
	sayMissingLookup = phrase{
		es: "Necesito tu número de teléfono para buscar tu cita.",
		en: "I need your phone number to find your appointment.",
	}
	sayMissingNewTime = phrase{
		es: "Necesito la nueva fecha y hora para cambiar tu cita.",
		en: "I need the new date and time to reschedule your appointment.",
	}
	sayBadDateTime = phrase{
		es: "No entendí la fecha u hora. Dime la fecha como año-mes-día y la hora como 14:30.",
		en: "I did not understand the date or time. Please give the date as year-month-day and the time like 14:30.",
	}
	sayAppointmentNotFound = phrase{
		es: "No encontré la cita.",
		en: "Appointment not found.",
	}
	sayAppointmentInactive = phrase{
		es: "Esa cita fue cancelada y ya no se puede cambiar. Si quieres, puedo agendarte una nueva.",
		en: "That appointment was cancelled and can no longer be changed. I can book you a new one if you like.",
	}
	sayNoUpcoming = phrase{
		es: "No encontré citas programadas con ese número de teléfono.",
		en: "I could not find any scheduled appointment with that phone number.",
	}
	sayBooked = phrase{
		es: "¡Perfecto! Tu cita para %s está confirmada para el %s. Te va a llegar un mensaje de confirmación.",
		en: "Perfect! Your appointment for %s is confirmed for %s. You'll receive a confirmation message.",
	}
	sayCancelled = phrase{
		es: "Tu cita del %s ha sido cancelada. Te va a llegar una confirmación.",
		en: "Your appointment on %s has been cancelled. You'll receive a confirmation.",
	}
	sayRescheduled = phrase{
		es: "¡Perfecto! Tu cita se cambió para el %s.",
		en: "Perfect! Your appointment has been rescheduled to %s.",
	}
	sayServiceNotFound = phrase{
		es: "No encontré el servicio \"%s\". Tenemos: %s.",
		en: "Service \"%s\" not found. We have: %s.",
	}
	sayInquiry = phrase{
		es: "Nuestros servicios son: %s. Nuestro horario: %s. ¿Te gustaría hacer una cita?",
		en: "Our services are: %s. Our hours: %s. Would you like to make an appointment?",
	}
	sayOpenings = phrase{
		es: " Tengo disponible: %s.",
		en: " I have openings at %s.",
	}
	sayClosed = phrase{es: "cerrado", en: "closed"}
)

var rejectionPhrases = map[schedule.Kind]phrase{
	schedule.KindPastTime: {
		es: "Esa hora ya pasó. ¿Qué otra hora te gustaría?",
		en: "That time has already passed. What other time would you like?",
	},
	schedule.KindInvalidOrdering: {
		es: "No pude entender ese horario.",
		en: "I could not understand that time range.",
	},
	schedule.KindConfigMissing: {
		es: "Ahora mismo no puedo agendar citas. Por favor llama más tarde.",
		en: "I can't book appointments right now. Please call back later.",
	},
	schedule.KindOutsideBusinessHours: {
		es: "Estamos cerrados a esa hora.",
		en: "We are closed at that time.",
	},
	schedule.KindAppointmentConflict: {
		es: "Ese horario ya está ocupado.",
		en: "That time is already taken.",
	},
	schedule.KindTimeBlocked: {
		es: "Ese horario no está disponible.",
		en: "That time is not available.",
	},
	schedule.KindServiceNotFound: {
		es: "No encontré ese servicio.",
		en: "I could not find that service.",
	},
	schedule.KindServiceInactive: {
		es: "Ese servicio ya no está disponible.",
		en: "That service is no longer offered.",
	},
	schedule.KindInvalidCustomerName: {
		es: "Necesito tu nombre completo.",
		en: "I need your full name.",
	},
	schedule.KindInvalidPhone: {
		es: "Ese número de teléfono no parece válido.",
		en: "That phone number doesn't look valid.",
	},
}

// rejection returns the caller-facing sentence for a booking rejection.
func rejection(kind schedule.Kind, lang string) string {
	if p, ok := rejectionPhrases[kind]; ok {
		return p.in(lang)
	}
	return sayGenericError.in(lang)
}

// clock renders a slot start for speech: 12-hour in English, 24-hour in Spanish.
func clock(t time.Time, loc *time.Location, lang string) string {
	t = t.In(loc)
	if lang == "en" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// spokenList joins items as "a, b and c" ("a, b y c" in Spanish).
func spokenList(items []string, lang string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	and := " y "
	if lang == "en" {
		and = " and "
	}
	return strings.Join(items[:len(items)-1], ", ") + and + items[len(items)-1]
}

var (
	weekdayNamesES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	weekOrder      = [...]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
)

// describeHours reads the weekly hours out loud, one day at a time.
func describeHours(w schedule.WeeklyHours, lang string) string {
	parts := make([]string, 0, len(weekOrder))
	for _, d := range weekOrder {
		name := d.String()
		if lang != "en" {
			name = weekdayNamesES[d]
		}
		h := w.Day(d)
		if !h.IsOpen() {
			parts = append(parts, name+" "+sayClosed.in(lang))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s-%s", name, h.Open.String(), h.Close.String()))
	}
	return strings.Join(parts, ", ")
}

// NotUnderstood is the reply for a request the assistant could not map to an intent.
func NotUnderstood(language string) string {
	return sayNotUnderstood.in(Request{Language: language}.Lang())
}

// Apology is the reply for an unexpected server failure.
func Apology(language string) string {
	return sayGenericError.in(Request{Language: language}.Lang())
}
