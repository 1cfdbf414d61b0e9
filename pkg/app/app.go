package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yogat3ch/30-day-scheduler/pkg/auth"
	"github.com/yogat3ch/30-day-scheduler/pkg/config"
	"github.com/yogat3ch/30-day-scheduler/pkg/gcal"
	"github.com/yogat3ch/30-day-scheduler/pkg/sheets"
)

// Services are the external collaborators of a run, built from the saved configuration
type Services struct {
	Reader   sheets.Reader
	Calendar *gcal.Client
}

// Open validates the configuration, authorizes with the cached token and builds the grid
// reader and calendar client
func Open(ctx context.Context, cfg *config.AppConfig) (*Services, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient, err := Authorize(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cal, err := gcal.New(ctx, httpClient)
	if err != nil {
		return nil, err
	}

	reader, err := NewReader(ctx, cfg, httpClient)
	if err != nil {
		return nil, err
	}

	return &Services{Reader: reader, Calendar: cal}, nil
}

// Authorize returns an HTTP client carrying the saved OAuth token
func Authorize(ctx context.Context, cfg *config.AppConfig) (*http.Client, error) {
	oc, err := auth.LoadClientConfig(cfg.Credentials.ClientSecret)
	if err != nil {
		return nil, err
	}
	return auth.HTTPClient(ctx, oc, cfg.Credentials.Token)
}

// NewReader returns the grid reader for the configured source. Only the google source uses
// httpClient.
func NewReader(ctx context.Context, cfg *config.AppConfig, httpClient *http.Client) (sheets.Reader, error) {
	switch cfg.Spreadsheet.Source {
	case config.SourceGoogle:
		return sheets.NewGoogleReader(ctx, httpClient)
	case config.SourceXLSX:
		return &sheets.WorkbookReader{Path: cfg.Spreadsheet.WorkbookPath}, nil
	case config.SourceHTML:
		return sheets.NewHTMLReader(cfg.Spreadsheet.CachePublished), nil
	default:
		return nil, fmt.Errorf("unknown spreadsheet source %q", cfg.Spreadsheet.Source)
	}
}
