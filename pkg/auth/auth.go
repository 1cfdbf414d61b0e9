package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/yogat3ch/30-day-scheduler/pkg/logging"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/sheets/v4"
)

// Scopes are the permissions requested at login
var Scopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
	sheets.SpreadsheetsReadonlyScope,
}

// ErrNoToken is returned when no cached token exists yet
var ErrNoToken = errors.New("no saved token, run '30-day-scheduler login' first")

// OpenURLFunc shows the consent page to the operator
type OpenURLFunc func(url string) error

// LoadClientConfig reads the OAuth client secret downloaded from the cloud console
func LoadClientConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret: %w", err)
	}
	return cfg, nil
}

// LoadToken reads a cached token
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return &tok, nil
}

// SaveToken writes the token readable by the owner only
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// savingSource writes refreshed tokens back to disk
type savingSource struct {
	mu   sync.Mutex
	base oauth2.TokenSource
	path string
	last string
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := SaveToken(s.path, tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}

// HTTPClient returns a client authorized with the cached token. Refreshed tokens are saved back
// to tokenPath.
func HTTPClient(ctx context.Context, cfg *oauth2.Config, tokenPath string) (*http.Client, error) {
	tok, err := LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	src := &savingSource{
		base: cfg.TokenSource(ctx, tok),
		path: tokenPath,
		last: tok.AccessToken,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

// Login runs the installed-app flow: a one-shot loopback server receives the redirect, the
// code is exchanged and the token is saved to tokenPath.
func Login(ctx context.Context, cfg *oauth2.Config, tokenPath string, open OpenURLFunc) (*oauth2.Token, error) {
	logger := logging.Or(ctx)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start callback listener: %w", err)
	}
	defer listener.Close()

	flow := *cfg
	flow.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr().String())

	state := uuid.NewString()
	codes := make(chan string, 1)
	errs := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			report(errs, errors.New("oauth state mismatch"))
			return
		}
		if e := q.Get("error"); e != "" {
			http.Error(w, "authorization denied", http.StatusForbidden)
			report(errs, fmt.Errorf("authorization denied: %s", e))
			return
		}
		fmt.Fprintln(w, "Authorization complete. You can close this window.")
		report(codes, q.Get("code"))
	})

	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	defer server.Shutdown(context.Background())

	authURL := flow.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	logger.Debug("waiting for oauth callback", "redirect", flow.RedirectURL)
	if err := open(authURL); err != nil {
		logger.Warn("could not open browser", "err", err)
	}

	var code string
	select {
	case code = <-codes:
	case err := <-errs:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tok, err := flow.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := SaveToken(tokenPath, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// report delivers the first callback result and drops repeats
func report[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}
