package eventtmpl

import (
	"strconv"

	"github.com/yogat3ch/30-day-scheduler/pkg/signup"
)

// Params maps placeholder names to their raw (unescaped) values
type Params map[string]string

// SessionParams builds the substitution map for a session. Contact columns are added last and
// take precedence over the built-in names when a sheet header collides with one.
func SessionParams(s signup.Session) Params {
	p := Params{
		"date":             s.Date,
		"day_of_week":      s.DayOfWeek,
		"time_iso":         s.Window.Start,
		"end_time_iso":     s.Window.End,
		"end_date":         s.EndDate(),
		"duration_minutes": strconv.Itoa(s.Window.DurationMinutes),
		"teacher_name":     s.TeacherName,
		"summary":          s.Summary,
	}
	for k, v := range s.Contact.Map() {
		p[k] = v
	}
	return p
}
