// Package helpdesk routes help requests through the appointment or
// assignment channel and answers them with a canned response.
package helpdesk

import (
	"fmt"
	"time"

	"github.com/abhisek/twotor/internal/apperr"
	"github.com/abhisek/twotor/internal/store"
)

// Channel values accepted by the desk.
const (
	ChannelAppointment = "appointment"
	ChannelAssignment  = "assignment"
)

// Ticket statuses.
const (
	StatusOpen      = "open"
	StatusResponded = "responded"
)

// Config tunes the canned responses.
type Config struct {
	// Instructor is named in appointment confirmations.
	Instructor string `yaml:"instructor"`
	// AppointmentHour is the hour of the next-day slot offered.
	AppointmentHour int `yaml:"appointment_hour"`
}

// DefaultConfig returns the stock desk settings.
func DefaultConfig() Config {
	return Config{
		Instructor:      "Dr. Antonie",
		AppointmentHour: 10,
	}
}

// Desk owns the ticket log. It is not safe for concurrent use; the
// orchestrator serializes access.
type Desk struct {
	cfg     Config
	tickets []store.HelpTicket
	now     func() time.Time
}

// New creates a desk seeded with previously persisted tickets.
func New(cfg Config, tickets []store.HelpTicket, now func() time.Time) *Desk {
	if now == nil {
		now = time.Now
	}
	return &Desk{
		cfg:     cfg,
		tickets: append([]store.HelpTicket(nil), tickets...),
		now:     now,
	}
}

// ValidChannel reports whether channel is one the desk routes.
func ValidChannel(channel string) bool {
	switch channel {
	case ChannelAppointment, ChannelAssignment:
		return true
	}
	return false
}

// Draft builds the next ticket without recording it. Call Commit once the
// ticket log has been persisted.
func (d *Desk) Draft(userID, channel, question string) (store.HelpTicket, error) {
	if !ValidChannel(channel) {
		return store.HelpTicket{}, apperr.InvalidSubmission("channel must be %q or %q, got %q",
			ChannelAppointment, ChannelAssignment, channel)
	}
	now := d.now().UTC()
	return store.HelpTicket{
		TicketID:  fmt.Sprintf("HELP-%04d", len(d.tickets)+1),
		UserID:    userID,
		Channel:   channel,
		Question:  question,
		CreatedAt: now,
		Status:    StatusResponded,
		Response:  d.autoResponse(channel, now),
	}, nil
}

// Commit appends a drafted ticket to the log.
func (d *Desk) Commit(t store.HelpTicket) {
	d.tickets = append(d.tickets, t)
}

// With returns the ticket log with t appended, leaving the desk untouched.
func (d *Desk) With(t store.HelpTicket) []store.HelpTicket {
	out := make([]store.HelpTicket, 0, len(d.tickets)+1)
	out = append(out, d.tickets...)
	return append(out, t)
}

// Tickets returns a copy of the ticket log.
func (d *Desk) Tickets() []store.HelpTicket {
	return append([]store.HelpTicket(nil), d.tickets...)
}

// TicketsFor returns the user's tickets in creation order.
func (d *Desk) TicketsFor(userID string) []store.HelpTicket {
	var out []store.HelpTicket
	for _, t := range d.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

func (d *Desk) autoResponse(channel string, now time.Time) string {
	if channel == ChannelAppointment {
		day := now.AddDate(0, 0, 1)
		slot := time.Date(day.Year(), day.Month(), day.Day(), d.cfg.AppointmentHour, 0, 0, 0, time.UTC)
		return fmt.Sprintf("Appointment reserved for %s with %s", slot.Format("2006-01-02 15:04"), d.cfg.Instructor)
	}
	return "Please review materials and your instructor will get back to you shortly"
}
