package settings

import (
	"os"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const defaultAirport = "EDLP"

type Settings struct {
	AirportICAO string `json:"airport_icao"`
}

// Store is the persisted key-value settings object. Last write wins; the
// file is rewritten whole on every update.
type Store struct {
	path string
	log  zerolog.Logger

	mu       sync.Mutex
	settings Settings
}

// NewStore reads the settings file, creating it with defaults when missing.
func NewStore(path string, logger zerolog.Logger) *Store {
	s := &Store{path: path, log: logger, settings: Settings{AirportICAO: defaultAirport}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Warn().Str("file", path).Msg("settings file missing, creating defaults")
		if err := s.save(); err != nil {
			logger.Error().Err(err).Msg("could not write default settings")
		}
		return s
	}
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("settings not readable, using defaults")
		return s
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil || loaded.AirportICAO == "" {
		logger.Error().Str("file", path).Msg("settings malformed, using defaults")
		return s
	}
	s.settings = loaded
	logger.Info().Str("airport", loaded.AirportICAO).Msg("settings loaded")
	return s
}

func (s *Store) All() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) Airport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.AirportICAO
}

// SetAirport stores and persists the new home station.
func (s *Store) SetAirport(icao string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.settings.AirportICAO
	s.settings.AirportICAO = icao
	if err := s.save(); err != nil {
		s.settings.AirportICAO = previous
		s.log.Error().Err(err).Msg("settings save failed")
		return err
	}
	s.log.Info().Str("airport", icao).Msg("settings saved")
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.settings, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
