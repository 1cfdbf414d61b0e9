package eventtmpl

import "encoding/json"

// EventTime mirrors the calendar API start/end object
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Attendee is a single invited guest
type Attendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Payload is a rendered event body. Only the fields needed for previews are decoded; Raw holds
// the full standard-JSON body that is sent to the calendar.
type Payload struct {
	Summary   string     `json:"summary"`
	Start     EventTime  `json:"start"`
	End       EventTime  `json:"end"`
	Attendees []Attendee `json:"attendees"`

	Raw json.RawMessage `json:"-"`
}

// AttendeeEmails returns the guest addresses in template order
func (p *Payload) AttendeeEmails() []string {
	emails := make([]string, 0, len(p.Attendees))
	for _, a := range p.Attendees {
		emails = append(emails, a.Email)
	}
	return emails
}
