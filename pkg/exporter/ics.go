package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yogat3ch/30-day-scheduler/pkg/signup"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// uidNamespace keeps exported UIDs stable across runs
var uidNamespace = uuid.MustParse("6f2a7f0e-3d1c-4b8e-9a57-2c1f0d4e8b31")

// SessionUID derives the iCalendar UID of a session from its summary and start
func SessionUID(s signup.Session) string {
	return uuid.NewSHA1(uidNamespace, []byte(s.Summary+"|"+s.Begin())).String()
}

// GenerateICS writes the sessions as an iCalendar file. Session wall-clock times are read in loc.
func GenerateICS(sessions []signup.Session, loc *time.Location, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//30-day-scheduler//Guided Sessions//EN")

	now := time.Now()
	for _, s := range sessions {
		start, err := s.StartTime(loc)
		if err != nil {
			return fmt.Errorf("invalid start for %s at %s: %w", s.TeacherName, s.Cell(), err)
		}
		end, err := s.EndTime(loc)
		if err != nil {
			return fmt.Errorf("invalid end for %s at %s: %w", s.TeacherName, s.Cell(), err)
		}

		event := cal.AddEvent(SessionUID(s))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(s.Summary)

		if email := s.Contact.Get("Email"); email != "" {
			event.AddAttendee(email, ics.WithCN(s.TeacherName))
		}

		description := fmt.Sprintf("%s, %d minutes\nSignup cell: %s", s.DisplayDay(), s.Window.DurationMinutes, s.Cell())
		event.SetDescription(strings.TrimSpace(description))
	}

	return cal.SerializeTo(w)
}
