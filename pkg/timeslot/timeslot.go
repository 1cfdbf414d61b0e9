package timeslot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSessionMinutes is the length given to a slot whose header only names a start time
const DefaultSessionMinutes = 10

const minutesPerDay = 24 * 60

// ErrNoClockTime is returned when a header contains nothing that looks like "7 am" or "7:45 pm"
var ErrNoClockTime = errors.New("no clock time found in header")

// clock matches "7 am", "7:45pm", "12 PM"
const clock = `(\d{1,2})(?::(\d{2}))?\s*([ap]m)`

var (
	rangeEST  = regexp.MustCompile(`(?i)` + clock + `\s*-\s*` + clock + `\s*EST`)
	singleEST = regexp.MustCompile(`(?i)` + clock + `\s*EST`)
	anyClock  = regexp.MustCompile(`(?i)` + clock)
)

// Window is the wall-clock span derived from a signup column header.
// Start and End are zero-padded "HH:MM" strings without any offset.
type Window struct {
	Start           string
	End             string
	DurationMinutes int
}

func (w Window) String() string {
	return fmt.Sprintf("%s-%s (%d min)", w.Start, w.End, w.DurationMinutes)
}

// Parse derives a Window from a free-form header such as "7 am - 7:45 am EST | 6 am CST".
//
// An EST-tagged range wins, then an EST-tagged single time, then the first clock time in the
// header. Single times get a DefaultSessionMinutes window. Ranges that end at or before their
// start are taken to cross midnight.
func Parse(header string) (Window, error) {
	// An out-of-range time only fails the header when no later rule finds a usable one
	var firstErr error

	if m := rangeEST.FindStringSubmatch(header); m != nil {
		w, err := parseRange(m)
		if err == nil {
			return w, nil
		}
		firstErr = err
	}

	// Headers list several zones in a fixed order; the first one is authoritative
	for _, re := range []*regexp.Regexp{singleEST, anyClock} {
		m := re.FindStringSubmatch(header)
		if m == nil {
			continue
		}
		start, err := to24h(m[1], m[2], m[3])
		if err == nil {
			return newDefault(start), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return Window{}, firstErr
	}
	return Window{}, ErrNoClockTime
}

func parseRange(m []string) (Window, error) {
	start, err := to24h(m[1], m[2], m[3])
	if err != nil {
		return Window{}, err
	}
	end, err := to24h(m[4], m[5], m[6])
	if err != nil {
		return Window{}, err
	}
	return newRange(start, end), nil
}

// To24h converts a single 12-hour clock string ("12 am", "7:30 pm") to "HH:MM".
func To24h(s string) (string, error) {
	m := anyClock.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", ErrNoClockTime
	}
	mins, err := to24h(m[1], m[2], m[3])
	if err != nil {
		return "", err
	}
	return formatMinutes(mins), nil
}

// to24h returns minutes since midnight for the matched hour, minute and meridiem groups
func to24h(hourStr, minStr, meridiem string) (int, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("invalid hour %q: %w", hourStr, err)
	}
	if hour > 12 {
		return 0, fmt.Errorf("hour %d out of range for a 12-hour clock", hour)
	}

	minute := 0
	if minStr != "" {
		minute, err = strconv.Atoi(minStr)
		if err != nil {
			return 0, fmt.Errorf("invalid minutes %q: %w", minStr, err)
		}
		if minute > 59 {
			return 0, fmt.Errorf("minutes %d out of range", minute)
		}
	}

	switch strings.ToLower(meridiem) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return hour*60 + minute, nil
}

func newRange(start, end int) Window {
	if end <= start {
		end += minutesPerDay
	}
	return Window{
		Start:           formatMinutes(start),
		End:             formatMinutes(end),
		DurationMinutes: end - start,
	}
}

func newDefault(start int) Window {
	return Window{
		Start:           formatMinutes(start),
		End:             formatMinutes(start + DefaultSessionMinutes),
		DurationMinutes: DefaultSessionMinutes,
	}
}

func formatMinutes(m int) string {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Minutes returns the minutes since midnight of an "HH:MM" string.
func Minutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", hhmm, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", hhmm, err)
	}
	return h*60 + m, nil
}

// CrossesMidnight reports whether the window ends on the following day.
func (w Window) CrossesMidnight() bool {
	start, err := Minutes(w.Start)
	if err != nil {
		return false
	}
	return start+w.DurationMinutes >= minutesPerDay
}
