package syncer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yogat3ch/30-day-scheduler/pkg/eventtmpl"
	"github.com/yogat3ch/30-day-scheduler/pkg/gcal"
	"github.com/yogat3ch/30-day-scheduler/pkg/ledger"
	"github.com/yogat3ch/30-day-scheduler/pkg/logging"
	"github.com/yogat3ch/30-day-scheduler/pkg/overlap"
	"github.com/yogat3ch/30-day-scheduler/pkg/sheets"
	"github.com/yogat3ch/30-day-scheduler/pkg/signup"
)

var (
	// ErrNoContactData is returned when the contact range is empty
	ErrNoContactData = errors.New("no contact data found")
	// ErrNoSignupData is returned when the signup range is empty
	ErrNoSignupData = errors.New("no signup data found")
)

// Planned is a session paired with the event body rendered for it
type Planned struct {
	Session signup.Session
	Payload *eventtmpl.Payload
}

// RenderFailure records a session whose event body could not be produced
type RenderFailure struct {
	Session signup.Session
	Err     error
}

func (f RenderFailure) Error() string {
	return fmt.Sprintf("Failed to build event for %s at %s: %v", f.Session.TeacherName, f.Session.Cell(), f.Err)
}

// Plan is the outcome of reading the sheet without touching the calendar
type Plan struct {
	// Sessions are the pending sessions after the existing-event check
	Sessions []signup.Session
	// Skipped counts sessions already on the calendar
	Skipped        int
	Events         []Planned
	Problems       []signup.MatchError
	RenderFailures []RenderFailure
}

// Pending returns the sessions that have a rendered event, in grid order
func (p *Plan) Pending() []signup.Session {
	sessions := make([]signup.Session, 0, len(p.Events))
	for _, e := range p.Events {
		sessions = append(sessions, e.Session)
	}
	return sessions
}

// Report prints the matching and template errors as labelled sections, followed by the number
// of sessions already on the calendar
func (p *Plan) Report(w io.Writer) {
	problems := make([]string, 0, len(p.Problems))
	for _, m := range p.Problems {
		problems = append(problems, m.Error())
	}
	printSection(w, "Matching Errors", problems)

	failures := make([]string, 0, len(p.RenderFailures))
	for _, f := range p.RenderFailures {
		failures = append(failures, f.Error())
	}
	printSection(w, "Template Errors", failures)

	if p.Skipped > 0 {
		fmt.Fprintf(w, "\nSkipped %d session(s) already on the calendar.\n", p.Skipped)
	}
}

// Syncer creates calendar events from the signup sheet
type Syncer struct {
	cfg      Config
	sheets   sheets.Reader
	calendar Calendar
	console  Console
}

// New creates a Syncer
func New(cfg Config, reader sheets.Reader, cal Calendar, console Console) *Syncer {
	return &Syncer{
		cfg:      cfg,
		sheets:   reader,
		calendar: cal,
		console:  console,
	}
}

// Plan reads the contact table and signup grid, drops sessions that already exist and renders
// an event body for each remaining one. An invalid template fails before any I/O.
func (s *Syncer) Plan(ctx context.Context) (*Plan, error) {
	logger := logging.Or(ctx)

	tmpl, err := eventtmpl.Load(s.cfg.TemplatePath)
	if err != nil {
		return nil, err
	}

	var contactRows, gridRows [][]string
	var readErr error
	s.console.progress("Reading signup sheet...", func() {
		contactRows, readErr = s.sheets.ReadRange(ctx, s.cfg.SpreadsheetID, s.cfg.ContactRange)
		if readErr != nil {
			readErr = fmt.Errorf("failed to read contacts: %w", readErr)
			return
		}
		gridRows, readErr = s.sheets.ReadRange(ctx, s.cfg.SpreadsheetID, s.cfg.SignupRange)
		if readErr != nil {
			readErr = fmt.Errorf("failed to read signups: %w", readErr)
		}
	})
	if readErr != nil {
		return nil, readErr
	}
	if len(contactRows) == 0 {
		return nil, ErrNoContactData
	}
	if len(gridRows) == 0 {
		return nil, ErrNoSignupData
	}

	contacts := signup.ResolveContacts(contactRows)
	logger.Debug("resolved contacts", "count", len(contacts))

	var opts []signup.Option
	if s.cfg.Teacher != "" {
		opts = append(opts, signup.WithTeacher(s.cfg.Teacher))
	}
	ext := signup.Extract(gridRows, contacts, opts...)
	logger.Debug("extracted sessions", "count", len(ext.Sessions), "problems", len(ext.Problems))

	plan := &Plan{
		Sessions: ext.Sessions,
		Problems: ext.Problems,
	}

	if !s.cfg.IncludeExisting && len(plan.Sessions) > 0 {
		existing, err := s.existing(ctx)
		if err != nil {
			return nil, err
		}
		plan.Sessions, plan.Skipped = overlap.Filter(plan.Sessions, existing)
		logger.Debug("checked existing events", "existing", len(existing), "skipped", plan.Skipped)
	}

	for _, sess := range plan.Sessions {
		payload, err := tmpl.Render(eventtmpl.SessionParams(sess))
		if err != nil {
			logger.Warn("dropping session", "teacher", sess.TeacherName, "cell", sess.Cell(), "err", err)
			plan.RenderFailures = append(plan.RenderFailures, RenderFailure{Session: sess, Err: err})
			continue
		}
		plan.Events = append(plan.Events, Planned{Session: sess, Payload: payload})
	}

	return plan, nil
}

func (s *Syncer) existing(ctx context.Context) ([]overlap.Existing, error) {
	from, until := gcal.DefaultWindow(s.console.now(), s.cfg.LookbackDays)

	var events []overlap.Existing
	var err error
	s.console.progress("Checking calendar for existing events...", func() {
		events, err = s.calendar.ListEvents(ctx, s.cfg.CalendarID, from, until)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing events: %w", err)
	}
	return events, nil
}

// Run plans, previews, asks for confirmation and creates the events, recording each one in the
// ledger. In dry-run mode it stops after the preview.
func (s *Syncer) Run(ctx context.Context) error {
	out := s.console.Out

	if s.cfg.DryRun {
		fmt.Fprintln(out, noticeStyle.Render("\n[DRY RUN MODE] Use --run to actually create events."))
	}

	plan, err := s.Plan(ctx)
	if err != nil {
		return err
	}

	plan.Report(out)

	if len(plan.Events) == 0 {
		fmt.Fprintln(out, "\nNo events found to create.")
		return nil
	}

	printTitle(out, "Event Preview")
	fmt.Fprintln(out, previewTable(plan.Events))
	fmt.Fprintf(out, "\nTotal events found: %d\n", len(plan.Events))

	events := plan.Events
	if s.cfg.Limit > 0 && s.cfg.Limit < len(events) {
		events = events[:s.cfg.Limit]
		fmt.Fprintf(out, "Limit applied: only the first %d event(s) will be processed.\n", s.cfg.Limit)
	}

	if s.cfg.DryRun {
		fmt.Fprintln(out, noticeStyle.Render("\n[DRY RUN] No events were created."))
		return nil
	}

	ok, err := s.console.confirm(fmt.Sprintf("Proceed with creating %d events?", len(events)))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Operation cancelled by user.")
		return nil
	}

	records, failed := s.create(ctx, events)
	printSection(out, "Creation Errors", failed)

	if len(records) == 0 {
		return nil
	}

	if err := ledger.New(s.cfg.LedgerPath).Append(records); err != nil {
		return err
	}
	fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("\nSuccessfully updated %s with %d new event records.", s.cfg.LedgerPath, len(records))))
	return nil
}

func (s *Syncer) create(ctx context.Context, events []Planned) ([]ledger.Record, []string) {
	logger := logging.Or(ctx)

	var records []ledger.Record
	var failed []string
	for _, e := range events {
		created, err := s.calendar.InsertEvent(ctx, s.cfg.CalendarID, e.Payload)
		if err != nil {
			if ctx.Err() != nil {
				failed = append(failed, fmt.Sprintf("Stopped before %s: %v", e.Payload.Summary, ctx.Err()))
				break
			}
			logger.Error("failed to create event", "summary", e.Payload.Summary, "err", err)
			failed = append(failed, fmt.Sprintf("Failed to create %s at %s: %v", e.Payload.Summary, e.Session.Begin(), err))
			continue
		}

		fmt.Fprintf(s.console.Out, "Created event: %s\n", created.HTMLLink)

		summary := created.Summary
		if summary == "" {
			summary = e.Payload.Summary
		}
		begin := created.Begin
		if begin == "" {
			begin = e.Session.Begin()
		}
		records = append(records, ledger.Record{Summary: summary, ID: created.ID, Begin: begin})
	}
	return records, failed
}
