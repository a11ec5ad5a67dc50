package astro

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"backend-flightdeck/internal/cache"
	"backend-flightdeck/internal/upstream"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://api.sunrise-sunset.org"

	sunTTL = time.Hour

	noTime = "──:──"
)

// SunTimes carries sunrise and sunset formatted in the home timezone.
type SunTimes struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

type Service struct {
	lat, lon float64
	baseURL  string
	loc      *time.Location
	client   *http.Client
	log      zerolog.Logger

	sun *cache.Cache[struct{}, SunTimes]
}

func NewService(lat, lon float64, loc *time.Location, baseURL string, logger zerolog.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		lat:     lat,
		lon:     lon,
		baseURL: baseURL,
		loc:     loc,
		client:  upstream.NewClient(),
		log:     logger,
		sun:     cache.New[struct{}, SunTimes](sunTTL),
	}
}

type sunResponse struct {
	Results struct {
		Sunrise string `json:"sunrise"`
		Sunset  string `json:"sunset"`
	} `json:"results"`
}

// SunTimes returns today's sunrise and sunset for the home coordinates,
// cached for an hour. Any failure yields the placeholder readout.
func (s *Service) SunTimes(ctx context.Context) SunTimes {
	return s.sun.Get(struct{}{}, func() SunTimes {
		url := s.baseURL + "/json?lat=" + strconv.FormatFloat(s.lat, 'f', -1, 64) +
			"&lng=" + strconv.FormatFloat(s.lon, 'f', -1, 64) + "&formatted=0"

		var data sunResponse
		if err := upstream.GetJSON(ctx, s.client, url, nil, &data); err != nil {
			s.log.Error().Err(err).Msg("sun times fetch failed")
			return SunTimes{Sunrise: noTime, Sunset: noTime}
		}

		sunrise, err1 := s.localClock(data.Results.Sunrise)
		sunset, err2 := s.localClock(data.Results.Sunset)
		if err1 != nil || err2 != nil {
			s.log.Error().Str("sunrise", data.Results.Sunrise).Str("sunset", data.Results.Sunset).
				Msg("sun times unparsable")
			return SunTimes{Sunrise: noTime, Sunset: noTime}
		}
		times := SunTimes{Sunrise: sunrise, Sunset: sunset}
		s.log.Info().Str("sunrise", times.Sunrise).Str("sunset", times.Sunset).Msg("sun times received")
		return times
	})
}

func (s *Service) InvalidateCache() {
	s.sun.Invalidate()
}

func (s *Service) localClock(iso string) (string, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "", err
	}
	return t.In(s.loc).Format("15:04"), nil
}
