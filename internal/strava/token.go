package strava

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"backend-flightdeck/internal/upstream"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	DefaultTokenURL = "https://www.strava.com/oauth/token"

	// tokenSafetyMargin forces a refresh before the access token is close
	// enough to expiry to risk an in-flight rejection.
	tokenSafetyMargin = 5 * time.Minute
)

// TokenProvider owns the single Strava bearer credential. All access goes
// through Token/Refresh under one mutex so concurrent requests share one
// refresh call.
type TokenProvider struct {
	clientID     string
	clientSecret string
	refreshToken string
	tokenURL     string
	client       *http.Client
	log          zerolog.Logger
	now          func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewTokenProvider(clientID, clientSecret, refreshToken, tokenURL string, logger zerolog.Logger) *TokenProvider {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	return &TokenProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		tokenURL:     tokenURL,
		client:       upstream.NewClient(),
		log:          logger,
		now:          time.Now,
	}
}

// Configured reports whether a refresh token is present. Without one the
// integration is disabled and no network call is ever attempted.
func (p *TokenProvider) Configured() bool {
	return p.refreshToken != ""
}

// Token returns a usable access token, refreshing first when none is held
// or expiry is within the safety margin.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && p.now().Before(p.expiresAt.Add(-tokenSafetyMargin)) {
		return p.accessToken, nil
	}
	return p.refreshLocked(ctx)
}

// Refresh exchanges the refresh token unconditionally. It is the one-shot
// retry hook for a downstream authorization rejection.
func (p *TokenProvider) Refresh(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshLocked(ctx)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// refreshLocked performs the token exchange. On any failure the stored
// credential is left untouched.
func (p *TokenProvider) refreshLocked(ctx context.Context) (string, error) {
	if p.refreshToken == "" {
		return "", upstream.ErrNotConfigured
	}

	p.log.Info().Msg("refreshing strava access token")
	form := url.Values{
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
		"refresh_token": {p.refreshToken},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", upstream.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error().Err(err).Msg("strava token refresh transport error")
		return "", fmt.Errorf("%w: %v", upstream.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		p.log.Error().Int("status", resp.StatusCode).Msg("strava token refresh failed")
		return "", &upstream.StatusError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", upstream.ErrTransport, err)
	}
	var data tokenResponse
	if err := json.Unmarshal(body, &data); err != nil || data.AccessToken == "" {
		p.log.Error().Msg("strava token response malformed")
		return "", fmt.Errorf("%w: token payload", upstream.ErrMalformed)
	}

	p.accessToken = data.AccessToken
	p.expiresAt = time.Unix(data.ExpiresAt, 0)
	p.log.Info().Time("expires_at", p.expiresAt).Msg("strava token refreshed")
	return p.accessToken, nil
}
