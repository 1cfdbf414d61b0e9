package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yogat3ch/30-day-scheduler/pkg/eventtmpl"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewWithOptions(context.Background(),
		[]option.ClientOption{
			option.WithEndpoint(server.URL + "/"),
			option.WithHTTPClient(server.Client()),
		},
		WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
		WithRateLimit(rate.Inf, 1),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func testPayload() *eventtmpl.Payload {
	return &eventtmpl.Payload{
		Summary: "10-Minute Guided Session: Jane Doe",
		Raw: json.RawMessage(`{
			"summary": "10-Minute Guided Session: Jane Doe",
			"start": {"dateTime": "2026-01-05T07:00:00", "timeZone": "America/New_York"},
			"end": {"dateTime": "2026-01-05T07:10:00", "timeZone": "America/New_York"},
			"attendees": [{"email": "jane@x.com"}],
			"reminders": {"useDefault": false}
		}`),
	}
}

func TestClient_InsertEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/calendars/cal-1/events") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"useDefault":false`) {
			t.Errorf("expected useDefault to be sent explicitly, got %s", body)
		}
		if !strings.Contains(string(body), "jane@x.com") {
			t.Errorf("expected attendee in body, got %s", body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "evt123",
			"htmlLink": "https://calendar.example/evt123",
			"summary": "10-Minute Guided Session: Jane Doe",
			"start": {"dateTime": "2026-01-05T07:00:00-05:00"}
		}`))
	})

	created, err := client.InsertEvent(context.Background(), "cal-1", testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "evt123" || created.HTMLLink != "https://calendar.example/evt123" {
		t.Errorf("unexpected created event %+v", created)
	}
	if created.Begin != "2026-01-05T07:00:00-05:00" {
		t.Errorf("unexpected begin %s", created.Begin)
	}
}

func TestClient_InsertEvent_RetriesTransient(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "evt1", "summary": "s"}`))
	})

	if _, err := client.InsertEvent(context.Background(), "primary", testPayload()); err != nil {
		t.Fatalf("expected the third attempt to succeed, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}
}

func TestClient_InsertEvent_GivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.InsertEvent(context.Background(), "primary", testPayload()); err == nil {
		t.Fatalf("expected an error after exhausting retries")
	}
	if attempts != MaxAttempts {
		t.Errorf("expected %d attempts, got %d", MaxAttempts, attempts)
	}
}

func TestClient_InsertEvent_NoRetryOnBadRequest(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	})

	if _, err := client.InsertEvent(context.Background(), "primary", testPayload()); err == nil {
		t.Fatalf("expected an error for a bad request")
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
}

func TestClient_DeleteEvent_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusGone)
	})

	err := client.DeleteEvent(context.Background(), "primary", "evt404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_DeleteEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/calendars/primary/events/evt1") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteEvent(context.Background(), "primary", "evt1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_ListEvents(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		if q.Get("singleEvents") != "true" || q.Get("orderBy") != "startTime" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("timeMin") == "" || q.Get("timeMax") == "" {
			t.Errorf("expected a bounded window, got %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		if q.Get("pageToken") == "" {
			w.Write([]byte(`{"items": [
				{"id": "a", "summary": "Timed", "start": {"dateTime": "2026-01-05T07:00:00-05:00"}}
			], "nextPageToken": "p2"}`))
			return
		}
		w.Write([]byte(`{"items": [
			{"id": "b", "summary": "All day", "start": {"date": "2026-01-06"}}
		]}`))
	})

	from, until := DefaultWindow(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC), 30)
	events, err := client.ListEvents(context.Background(), "primary", from, until)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Errorf("expected both pages to be fetched, got %d calls", calls)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Begin != "2026-01-05T07:00:00-05:00" || events[1].Begin != "2026-01-06" {
		t.Errorf("unexpected begins %+v", events)
	}
}

func TestDefaultWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	from, until := DefaultWindow(now, 30)

	if !from.Equal(time.Date(2026, 2, 13, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window start %s", from)
	}
	if !until.Equal(time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("unexpected window end %s", until)
	}
}
