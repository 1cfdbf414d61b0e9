package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yogat3ch/30-day-scheduler/pkg/app"
	"github.com/yogat3ch/30-day-scheduler/pkg/config"
	"github.com/yogat3ch/30-day-scheduler/pkg/syncer"

	"github.com/charmbracelet/huh"
)

func openServices(ctx context.Context) (*config.AppConfig, *app.Services, error) {
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	svc, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}

// RunPreviewTUI shows what a sync would create without touching the calendar
func RunPreviewTUI(ctx context.Context) error {
	cfg, svc, err := openServices(ctx)
	if err != nil {
		return err
	}

	return syncer.New(cfg.ToSyncConfig(), svc.Reader, svc.Calendar, NewConsole(os.Stdout)).Run(ctx)
}

// RunSyncTUI asks for an optional teacher filter and limit, then creates the events
func RunSyncTUI(ctx context.Context) error {
	var teacher, limit string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Only schedule one teacher?").
				Description("Leave empty to schedule everyone on the signup sheet.").
				Placeholder("e.g. Jane Doe").
				Value(&teacher),
			huh.NewInput().
				Title("Maximum number of events to create").
				Description("Leave empty for no limit.").
				Value(&limit).
				Validate(func(str string) error {
					if str == "" {
						return nil
					}
					if n, err := strconv.Atoi(str); err != nil || n < 0 {
						return fmt.Errorf("must be a positive whole number")
					}
					return nil
				}),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg, svc, err := openServices(ctx)
	if err != nil {
		return err
	}

	sc := cfg.ToSyncConfig()
	sc.DryRun = false
	sc.Teacher = strings.TrimSpace(teacher)
	if limit != "" {
		sc.Limit, _ = strconv.Atoi(limit)
	}

	return syncer.New(sc, svc.Reader, svc.Calendar, NewConsole(os.Stdout)).Run(ctx)
}

// RunDeleteTUI removes every event recorded in the ledger
func RunDeleteTUI(ctx context.Context) error {
	cfg, svc, err := openServices(ctx)
	if err != nil {
		return err
	}

	_, err = syncer.NewDeleter(cfg.ToSyncConfig(), svc.Calendar, NewConsole(os.Stdout)).Run(ctx)
	return err
}

// RunResyncTUI rebuilds the ledger from the calendar
func RunResyncTUI(ctx context.Context) error {
	cfg, svc, err := openServices(ctx)
	if err != nil {
		return err
	}

	var sessionsOnly bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Only record guided-session events?").
				Value(&sessionsOnly),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return err
	}

	_, err = syncer.Resync(ctx, cfg.ToSyncConfig(), svc.Calendar, NewConsole(os.Stdout), sessionsOnly)
	return err
}
