package weather

import (
	"context"
	"net/http"
	"time"

	"backend-flightdeck/internal/cache"
	"backend-flightdeck/internal/upstream"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://avwx.rest/api"

	metarTTL = 5 * time.Minute
	tafTTL   = 10 * time.Minute
)

type Service struct {
	token   string
	baseURL string
	client  *http.Client
	log     zerolog.Logger

	metar *cache.Cache[string, Metar]
	taf   *cache.Cache[string, Taf]
}

func NewService(token, baseURL string, logger zerolog.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		token:   token,
		baseURL: baseURL,
		client:  upstream.NewClient(),
		log:     logger,
		metar:   cache.New[string, Metar](metarTTL),
		taf:     cache.New[string, Taf](tafTTL),
	}
}

// avwxValue is AVWX's nested `{value: x}` shape; absent objects or null
// values map to the N/A sentinel.
type avwxValue struct {
	Value *json.Number `json:"value"`
}

func (v avwxValue) display() string {
	if v.Value == nil {
		return unavailable
	}
	return v.Value.String()
}

type avwxMetar struct {
	Station       string    `json:"station"`
	Raw           string    `json:"raw"`
	FlightRules   string    `json:"flight_rules"`
	WindDirection avwxValue `json:"wind_direction"`
	WindSpeed     avwxValue `json:"wind_speed"`
	Temperature   avwxValue `json:"temperature"`
	Dewpoint      avwxValue `json:"dewpoint"`
	Visibility    avwxValue `json:"visibility"`
	Altimeter     avwxValue `json:"altimeter"`
}

type avwxTaf struct {
	Station  string           `json:"station"`
	Raw      string           `json:"raw"`
	Forecast []ForecastPeriod `json:"forecast"`
}

// Metar returns the current observation for station, served from cache
// within the 5-minute window.
func (s *Service) Metar(ctx context.Context, station string) Metar {
	return s.metar.Get(station, func() Metar {
		record, err := s.fetchMetar(ctx, station)
		if err != nil {
			s.log.Error().Err(err).Str("station", station).Msg("metar fetch failed")
			return fallbackMetar(station)
		}
		s.log.Info().Str("station", station).Str("flight_rules", record.FlightRules).Msg("metar received")
		return record
	})
}

func (s *Service) fetchMetar(ctx context.Context, station string) (Metar, error) {
	var data avwxMetar
	err := upstream.GetJSON(ctx, s.client, s.baseURL+"/metar/"+station, s.authHeader(), &data)
	if err != nil {
		return Metar{}, err
	}
	return Metar{
		Station:       orDefault(data.Station, unavailable),
		Raw:           orDefault(data.Raw, metarNoRawText),
		FlightRules:   orDefault(data.FlightRules, unavailable),
		WindDirection: data.WindDirection.display(),
		WindSpeed:     data.WindSpeed.display(),
		Temperature:   data.Temperature.display(),
		Dewpoint:      data.Dewpoint.display(),
		Visibility:    data.Visibility.display(),
		Altimeter:     data.Altimeter.display(),
	}, nil
}

// Taf returns the terminal forecast for station, served from cache within
// the 10-minute window.
func (s *Service) Taf(ctx context.Context, station string) Taf {
	return s.taf.Get(station, func() Taf {
		var data avwxTaf
		err := upstream.GetJSON(ctx, s.client, s.baseURL+"/taf/"+station, s.authHeader(), &data)
		if err != nil {
			s.log.Error().Err(err).Str("station", station).Msg("taf fetch failed")
			return fallbackTaf(station)
		}
		record := Taf{
			Station:  orDefault(data.Station, station),
			Raw:      orDefault(data.Raw, tafFallback),
			Forecast: data.Forecast,
		}
		if record.Forecast == nil {
			record.Forecast = []ForecastPeriod{}
		}
		return record
	})
}

// Notams serves the fixture list; there is no free NOTAM source.
func (s *Service) Notams(station string) NotamList {
	return NotamList{Notams: []Notam{
		{ID: "A0123/25", Message: "RWY 06/24 CLSD FOR MAINTENANCE"},
		{ID: "A0124/25", Message: "TWR FREQ CHANGED TO 119.75 MHZ"},
	}}
}

// ValidStation reports whether station answers with a real observation.
// Used by the airport test endpoint before a settings change is accepted.
func (s *Service) ValidStation(ctx context.Context, station string) (bool, Metar) {
	m := s.Metar(ctx, station)
	return m.Station != unavailable && m.Raw != metarFallback, m
}

// Ping checks AVWX reachability for the health endpoint, bypassing caches.
func (s *Service) Ping(ctx context.Context) bool {
	var data avwxMetar
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return upstream.GetJSON(ctx, s.client, s.baseURL+"/metar/EDLP", s.authHeader(), &data) == nil
}

// InvalidateCaches drops stored METAR and TAF entries, used after the home
// airport changes and by the manual refresh endpoint.
func (s *Service) InvalidateCaches() {
	s.metar.Invalidate()
	s.taf.Invalidate()
}

func (s *Service) authHeader() map[string]string {
	return map[string]string{"Authorization": "BEARER " + s.token}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
