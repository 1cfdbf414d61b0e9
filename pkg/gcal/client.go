package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yogat3ch/30-day-scheduler/pkg/eventtmpl"
	"github.com/yogat3ch/30-day-scheduler/pkg/logging"
	"github.com/yogat3ch/30-day-scheduler/pkg/overlap"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// MaxAttempts is how many times a write is tried before it is reported as failed
const MaxAttempts = 5

// ErrNotFound is returned by DeleteEvent when the event is already gone
var ErrNotFound = errors.New("event not found")

// Created is what the calendar returns for an inserted event
type Created struct {
	ID       string
	HTMLLink string
	Summary  string
	Begin    string
}

// Client wraps the Calendar v3 service with retries and write throttling
type Client struct {
	svc         *calendar.Service
	limiter     *rate.Limiter
	newBackOff  func() backoff.BackOff
	maxAttempts int
}

// Option customises a Client
type Option func(*Client)

// WithBackOff replaces the exponential backoff policy, mostly for tests
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = fn
	}
}

// WithRateLimit sets the sustained write rate and burst
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// New creates a client from an authorized HTTP client
func New(ctx context.Context, httpClient *http.Client, opts ...Option) (*Client, error) {
	return NewWithOptions(ctx, []option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
}

// NewWithOptions creates a client from raw API client options (endpoint overrides, test servers)
func NewWithOptions(ctx context.Context, apiOpts []option.ClientOption, opts ...Option) (*Client, error) {
	svc, err := calendar.NewService(ctx, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	c := &Client{
		svc:         svc,
		limiter:     rate.NewLimiter(rate.Limit(5), 5),
		maxAttempts: MaxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 16 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DefaultWindow is the lookup range used when none is configured: lookback days before now
// until the last second of the current year, both in UTC
func DefaultWindow(now time.Time, lookbackDays int) (time.Time, time.Time) {
	now = now.UTC()
	from := now.AddDate(0, 0, -lookbackDays)
	until := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, time.UTC)
	return from, until
}

// ListEvents returns every single (expanded) event between from and until ordered by start time
func (c *Client) ListEvents(ctx context.Context, calendarID string, from, until time.Time) ([]overlap.Existing, error) {
	var out []overlap.Existing

	call := c.svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(until.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, e := range page.Items {
			out = append(out, overlap.Existing{
				ID:      e.Id,
				Summary: e.Summary,
				Begin:   startString(e.Start),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return out, nil
}

// InsertEvent creates the rendered event, retrying rate limits and server errors
func (c *Client) InsertEvent(ctx context.Context, calendarID string, p *eventtmpl.Payload) (*Created, error) {
	var ev calendar.Event
	if err := json.Unmarshal(p.Raw, &ev); err != nil {
		return nil, fmt.Errorf("event body does not match the calendar schema: %w", err)
	}
	// "useDefault": false would otherwise be dropped as a zero value
	if ev.Reminders != nil {
		ev.Reminders.ForceSendFields = append(ev.Reminders.ForceSendFields, "UseDefault")
	}

	var created *calendar.Event
	err := c.retry(ctx, "insert", func() error {
		var err error
		created, err = c.svc.Events.Insert(calendarID, &ev).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Created{
		ID:       created.Id,
		HTMLLink: created.HtmlLink,
		Summary:  created.Summary,
		Begin:    startString(created.Start),
	}, nil
}

// DeleteEvent removes an event. A 404 or 410 is reported as ErrNotFound.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	err := c.retry(ctx, "delete", func() error {
		return c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do()
	})
	if isGone(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, eventID)
	}
	return err
}

func (c *Client) retry(ctx context.Context, op string, fn func() error) error {
	attempt := 0
	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxAttempts-1)), ctx)

	return backoff.Retry(func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}

		if logger := logging.FromContext(ctx); logger != nil && attempt < c.maxAttempts {
			logger.Warn("calendar request failed, retrying", "op", op, "attempt", attempt, "max", c.maxAttempts, "err", err)
		}
		return err
	}, b)
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		// Connection resets and timeouts
		return true
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	case http.StatusForbidden:
		for _, item := range apiErr.Errors {
			if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
				return true
			}
		}
	}
	return false
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
}

func startString(t *calendar.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}
