package syncer

import (
	"context"
	"fmt"
	"strings"

	"github.com/yogat3ch/30-day-scheduler/pkg/ledger"
	"github.com/yogat3ch/30-day-scheduler/pkg/signup"
)

// Resync rebuilds the ledger from every event in the lookup window. With sessionsOnly set, only
// events carrying the guided-session title are recorded.
func Resync(ctx context.Context, cfg Config, cal Calendar, console Console, sessionsOnly bool) ([]ledger.Record, error) {
	s := &Syncer{cfg: cfg, calendar: cal, console: console}

	events, err := s.existing(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]ledger.Record, 0, len(events))
	for _, e := range events {
		if sessionsOnly && !strings.HasPrefix(e.Summary, signup.SummaryPrefix) {
			continue
		}
		records = append(records, ledger.Record{Summary: e.Summary, ID: e.ID, Begin: e.Begin})
	}

	if err := ledger.New(cfg.LedgerPath).Replace(records); err != nil {
		return nil, err
	}

	fmt.Fprintln(console.Out, okStyle.Render(fmt.Sprintf("Updated %s with %d events from the calendar.", cfg.LedgerPath, len(records))))
	return records, nil
}
