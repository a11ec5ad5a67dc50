package strava

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"backend-flightdeck/internal/cache"
	"backend-flightdeck/internal/upstream"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://www.strava.com/api/v3"

	activitiesTTL  = 30 * time.Minute
	activitiesPage = 30
)

var errNoActivities = errors.New("no strava activities available")

// activitiesResult is what the cache stores: a failed fetch is memoized for
// the same window as a successful one, so a broken upstream is retried at
// most once per window.
type activitiesResult struct {
	list []Activity
	err  error
}

type Service struct {
	tokens  *TokenProvider
	baseURL string
	client  *http.Client
	log     zerolog.Logger
	loc     *time.Location
	now     func() time.Time

	activities *cache.Cache[struct{}, activitiesResult]
}

func NewService(tokens *TokenProvider, baseURL string, loc *time.Location, logger zerolog.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		tokens:     tokens,
		baseURL:    baseURL,
		client:     upstream.NewClient(),
		log:        logger,
		loc:        loc,
		now:        time.Now,
		activities: cache.New[struct{}, activitiesResult](activitiesTTL),
	}
}

// Enabled reports whether the integration has credentials at all.
func (s *Service) Enabled() bool {
	return s.tokens.Configured()
}

// Activities returns the recent activity list, served from cache within the
// 30-minute window.
func (s *Service) Activities(ctx context.Context) ([]Activity, error) {
	res := s.activities.Get(struct{}{}, func() activitiesResult {
		list, err := s.fetchActivities(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("strava fetch failed")
		} else {
			s.log.Info().Int("count", len(list)).Msg("fetched strava activities")
		}
		return activitiesResult{list: list, err: err}
	})
	return res.list, res.err
}

func (s *Service) fetchActivities(ctx context.Context) ([]Activity, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.listActivities(ctx, token)
	if upstream.IsAuthRejection(err) {
		// One-shot refresh and retry; a second rejection is a fetch failure.
		s.log.Warn().Msg("strava rejected token, refreshing once")
		token, err = s.tokens.Refresh(ctx)
		if err != nil {
			return nil, err
		}
		list, err = s.listActivities(ctx, token)
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) listActivities(ctx context.Context, token string) ([]Activity, error) {
	var list []Activity
	url := s.baseURL + "/athlete/activities?per_page=" + strconv.Itoa(activitiesPage)
	headers := map[string]string{"Authorization": "Bearer " + token}
	if err := upstream.GetJSON(ctx, s.client, url, headers, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Summary computes the headline widget stats. An empty or unavailable list
// is an error so endpoints can answer with an explicit error payload.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	acts, err := s.Activities(ctx)
	if err != nil {
		return Summary{}, err
	}
	if len(acts) == 0 {
		return Summary{}, errNoActivities
	}
	return Summarize(acts, s.now().In(s.loc)), nil
}

// Detailed computes the full statistics page record.
func (s *Service) Detailed(ctx context.Context) (Detailed, error) {
	acts, err := s.Activities(ctx)
	if err != nil {
		return Detailed{}, err
	}
	if len(acts) == 0 {
		return Detailed{}, errNoActivities
	}
	return Detail(acts, s.now().In(s.loc)), nil
}

// TokenStatus classifies the credential state for the health endpoint.
func (s *Service) TokenStatus(ctx context.Context) string {
	if !s.tokens.Configured() {
		return "not_configured"
	}
	if _, err := s.tokens.Token(ctx); err != nil {
		return "error"
	}
	return "ok"
}

func (s *Service) InvalidateCache() {
	s.activities.Invalidate()
}
