package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/agendly/booking-api/internal/model"
)

// Notifier sends booking notification emails.
type Notifier interface {
	NotifyBookingEvent(eventType string, payload model.AppointmentEventPayload) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Mailer sends booking notifications to the business owner's inbox.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
	}
}

func (m *Mailer) NotifyBookingEvent(eventType string, payload model.AppointmentEventPayload) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subjectFor(eventType, payload))
	msg.SetBody("text/plain", bodyFor(eventType, payload))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}

func subjectFor(eventType string, payload model.AppointmentEventPayload) string {
	switch eventType {
	case model.EventAppointmentCreated:
		return fmt.Sprintf("New booking on %s", payload.Date)
	case model.EventAppointmentUpdated:
		return fmt.Sprintf("Booking changed on %s", payload.Date)
	case model.EventAppointmentCancelled:
		return fmt.Sprintf("Booking cancelled on %s", payload.Date)
	default:
		return "Booking update"
	}
}

func bodyFor(eventType string, payload model.AppointmentEventPayload) string {
	return fmt.Sprintf("Client: %s\nDate: %s\nTime: %s - %s\nEvent: %s\n",
		payload.ClientName, payload.Date, payload.Start, payload.End, eventType)
}
