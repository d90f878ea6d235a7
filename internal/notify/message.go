package notify

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Kind selects the message template.
type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindReminder     Kind = "reminder"
	KindCancellation Kind = "cancellation"
	KindReschedule   Kind = "reschedule"
)

// Message carries what the templates need. Times are rendered in Location.
type Message struct {
	Kind          Kind
	Language      string // "en" or "es"; anything else renders Spanish
	CustomerName  string
	CustomerPhone string
	ServiceName   string
	Start         time.Time
	PreviousStart time.Time // set for KindReschedule
	BusinessName  string
	BusinessPhone string
	Location      *time.Location
}

var (
	weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	monthsES   = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}
)

func (m Message) english() bool {
	return m.Language == "en"
}

// FormatTime renders t for a customer in the message language.
func (m Message) FormatTime(t time.Time) string {
	if m.Location != nil {
		t = t.In(m.Location)
	}
	if m.english() {
		return t.Format("Mon, Jan 2 at 3:04 PM")
	}
	return fmt.Sprintf("%s %d %s a las %s", weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1], t.Format("15:04"))
}

// Body renders the message text.
func (m Message) Body() (string, error) {
	when := m.FormatTime(m.Start)
	en := m.english()

	switch m.Kind {
	case KindConfirmation:
		if en {
			return fmt.Sprintf("Hi %s! Your appointment for %s is confirmed for %s. %s.%s",
				m.CustomerName, m.ServiceName, when, m.BusinessName, m.callToCancel()), nil
		}
		return fmt.Sprintf("Hola %s! Tu cita para %s está confirmada para el %s. %s.%s",
			m.CustomerName, m.ServiceName, when, m.BusinessName, m.callToCancel()), nil
	case KindReminder:
		if en {
			return fmt.Sprintf("Reminder: %s, you have an appointment for %s on %s. %s. See you soon!",
				m.CustomerName, m.ServiceName, when, m.BusinessName), nil
		}
		return fmt.Sprintf("Recordatorio: %s, tienes una cita para %s el %s. %s. Hasta pronto!",
			m.CustomerName, m.ServiceName, when, m.BusinessName), nil
	case KindCancellation:
		if en {
			return fmt.Sprintf("Hi %s, your appointment on %s has been cancelled. %s. Call us for a new appointment!",
				m.CustomerName, when, m.BusinessName), nil
		}
		return fmt.Sprintf("Hola %s, tu cita del %s ha sido cancelada. %s. Para una nueva cita, llámanos!",
			m.CustomerName, when, m.BusinessName), nil
	case KindReschedule:
		prev := m.FormatTime(m.PreviousStart)
		if en {
			return fmt.Sprintf("Hi %s, your appointment for %s has been rescheduled from %s to %s. %s.",
				m.CustomerName, m.ServiceName, prev, when, m.BusinessName), nil
		}
		return fmt.Sprintf("Hola %s, tu cita para %s se cambió del %s al %s. %s.",
			m.CustomerName, m.ServiceName, prev, when, m.BusinessName), nil
	}
	return "", fmt.Errorf("unknown message kind %q", m.Kind)
}

func (m Message) callToCancel() string {
	if m.BusinessPhone == "" {
		return ""
	}
	if m.english() {
		return " To cancel, call " + m.BusinessPhone + "."
	}
	return " Para cancelar, llama al " + m.BusinessPhone + "."
}

// FormatPhone normalises a phone number to E.164, assuming the North American plan for
// ten-digit numbers.
func FormatPhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	if len(digits) == 10 && !strings.HasPrefix(digits, "1") {
		return "+1" + digits
	}
	return "+" + digits
}
