package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yogat3ch/30-day-scheduler/pkg/gcal"
	"github.com/yogat3ch/30-day-scheduler/pkg/ledger"
	"github.com/yogat3ch/30-day-scheduler/pkg/logging"
)

// DeleteResult summarises a delete run
type DeleteResult struct {
	Deleted        int
	AlreadyDeleted int
	Failed         int
	LedgerRemoved  bool
}

// Deleter removes every event recorded in the ledger
type Deleter struct {
	cfg      Config
	calendar Calendar
	console  Console
}

// NewDeleter creates a Deleter
func NewDeleter(cfg Config, cal Calendar, console Console) *Deleter {
	return &Deleter{cfg: cfg, calendar: cal, console: console}
}

// Run deletes the ledger's events after confirmation. An event that is already gone counts as
// deleted. The ledger is removed only when nothing failed.
func (d *Deleter) Run(ctx context.Context) (*DeleteResult, error) {
	out := d.console.Out
	logger := logging.Or(ctx)
	result := &DeleteResult{}

	l := ledger.New(d.cfg.LedgerPath)
	if !l.Exists() {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error: %s not found. Run the sync command first.", d.cfg.LedgerPath)))
		return result, nil
	}

	records, err := l.Read()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No events recorded in the ledger.")
		return result, nil
	}

	ok, err := d.console.confirm(fmt.Sprintf("Delete %d events from calendar %s?", len(records), d.cfg.CalendarID))
	if err != nil {
		return nil, err
	}
	if !ok {
		fmt.Fprintln(out, "Operation cancelled by user.")
		return result, nil
	}

	fmt.Fprintf(out, "Starting deletion of %d events...\n", len(records))

	var failed, failedIDs []string
	for _, r := range records {
		summary := r.Summary
		if summary == "" {
			summary = "No Summary"
		}

		err := d.calendar.DeleteEvent(ctx, d.cfg.CalendarID, r.ID)
		switch {
		case err == nil:
			result.Deleted++
			fmt.Fprintf(out, "Deleted: %s (%s)\n", summary, r.ID)
		case errors.Is(err, gcal.ErrNotFound):
			result.AlreadyDeleted++
			fmt.Fprintf(out, "Event already deleted or not found: %s\n", summary)
		default:
			result.Failed++
			logger.Error("failed to delete event", "id", r.ID, "err", err)
			failed = append(failed, fmt.Sprintf("Failed to delete %s: %v", summary, err))
			failedIDs = append(failedIDs, r.ID)
		}
	}

	printSection(out, "Deletion Errors", failed)
	fmt.Fprintf(out, "\nFinished. Deleted %d events.\n", result.Deleted)

	if result.Failed > 0 {
		fmt.Fprintf(out, "Kept %s because %d deletion(s) failed: %s\n",
			d.cfg.LedgerPath, result.Failed, strings.Join(failedIDs, ", "))
		return result, nil
	}

	if err := l.Remove(); err != nil {
		return result, err
	}
	result.LedgerRemoved = true
	fmt.Fprintf(out, "Removed %s\n", d.cfg.LedgerPath)
	return result, nil
}
