package syncer

import (
	"context"
	"io"
	"time"

	"github.com/yogat3ch/30-day-scheduler/pkg/eventtmpl"
	"github.com/yogat3ch/30-day-scheduler/pkg/gcal"
	"github.com/yogat3ch/30-day-scheduler/pkg/overlap"
)

// Config is everything a sync or delete run needs to know. It is passed in explicitly; the
// package keeps no global settings.
type Config struct {
	SpreadsheetID string
	// SignupRange and ContactRange are full A1 references, e.g. 'Signup'!A1:Z50
	SignupRange  string
	ContactRange string

	CalendarID   string
	LookbackDays int

	TemplatePath string
	LedgerPath   string

	// Teacher limits the run to one teacher's signups
	Teacher string
	// Limit caps how many events are created; zero means no cap
	Limit  int
	DryRun bool
	// IncludeExisting disables the check against events already on the calendar
	IncludeExisting bool
}

// Calendar is the calendar collaborator. *gcal.Client implements it.
type Calendar interface {
	ListEvents(ctx context.Context, calendarID string, from, until time.Time) ([]overlap.Existing, error)
	InsertEvent(ctx context.Context, calendarID string, p *eventtmpl.Payload) (*gcal.Created, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// ConfirmFunc asks the operator a yes/no question
type ConfirmFunc func(question string) (bool, error)

// ProgressFunc runs action while showing title, e.g. behind a spinner
type ProgressFunc func(title string, action func())

// Console bundles the operator-facing side of a run
type Console struct {
	Out      io.Writer
	Confirm  ConfirmFunc
	Progress ProgressFunc
	Now      func() time.Time
}

func (c Console) progress(title string, action func()) {
	if c.Progress == nil {
		action()
		return
	}
	c.Progress(title, action)
}

func (c Console) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c Console) confirm(question string) (bool, error) {
	if c.Confirm == nil {
		return false, nil
	}
	return c.Confirm(question)
}
