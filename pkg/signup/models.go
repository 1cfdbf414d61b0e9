package signup

import (
	"fmt"
	"time"

	"github.com/yogat3ch/30-day-scheduler/pkg/timeslot"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SummaryPrefix is prepended to the teacher name to form the calendar event title
const SummaryPrefix = "10-Minute Guided Session: "

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

// Field is a single header/value cell of a contact row
type Field struct {
	Name  string
	Value string
}

// Contact holds one row of the contact sheet in column order (e.g. "First Name", "Email")
type Contact struct {
	Fields []Field
}

// Get returns the value stored under the given column header
func (c *Contact) Get(name string) string {
	if c == nil {
		return ""
	}
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Map flattens the record into a header->value map
func (c *Contact) Map() map[string]string {
	out := make(map[string]string)
	if c == nil {
		return out
	}
	for _, f := range c.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// FullName is the lookup key used to join signup cells with contact rows
func (c *Contact) FullName() string {
	return fullName(c.Get("First Name"), c.Get("Last Name"))
}

// Session is one teacher signed up into one time slot on one date.
// Contact is shared with every other session of the same teacher and must not be modified.
type Session struct {
	Summary     string
	TeacherName string
	Date        string // "2026-01-05"
	DayOfWeek   string // "Monday"
	Window      timeslot.Window
	Contact     *Contact

	// 1-based sheet coordinates the session was read from
	Row int
	Col int
}

// EventSummary returns the calendar title of the session
func (s Session) EventSummary() string {
	return s.Summary
}

// Begin returns the offset-less local start timestamp, e.g. "2026-01-05T07:00:00"
func (s Session) Begin() string {
	return s.Date + "T" + s.Window.Start + ":00"
}

// Finish returns the offset-less local end timestamp, rolled to the next day when the
// window crosses midnight
func (s Session) Finish() string {
	return s.EndDate() + "T" + s.Window.End + ":00"
}

// EndDate is the calendar date the session ends on
func (s Session) EndDate() string {
	if !s.Window.CrossesMidnight() {
		return s.Date
	}
	d, err := time.Parse(dateLayout, s.Date)
	if err != nil {
		return s.Date
	}
	return d.AddDate(0, 0, 1).Format(dateLayout)
}

// StartTime parses Begin in the given location
func (s Session) StartTime(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(timestampLayout, s.Begin(), loc)
}

// EndTime parses Finish in the given location
func (s Session) EndTime(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(timestampLayout, s.Finish(), loc)
}

// DisplayDay returns the day label title-cased for console and calendar output
func (s Session) DisplayDay() string {
	return cases.Title(language.English).String(s.DayOfWeek)
}

// Cell returns the R1C1 reference of the signup cell
func (s Session) Cell() string {
	return fmt.Sprintf("R%dC%d", s.Row, s.Col)
}

// MatchError reports a signup cell whose teacher has no contact row
type MatchError struct {
	Name string
	Row  int // 1-based
	Col  int // 1-based
}

func (e MatchError) Error() string {
	return fmt.Sprintf("No email found for '%s' at R%dC%d", e.Name, e.Row, e.Col)
}
