package dino

import (
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type Dino struct {
	Name   string `json:"name"`
	Fact   string `json:"fact"`
	Period string `json:"period,omitempty"`
	Diet   string `json:"diet,omitempty"`
}

// Store holds the trivia records, loaded once at startup. A missing or
// unreadable file degrades to an empty list, never an error.
type Store struct {
	dinos []Dino
	loc   *time.Location
	log   zerolog.Logger
	now   func() time.Time
}

func NewStore(path string, loc *time.Location, logger zerolog.Logger) *Store {
	s := &Store{loc: loc, log: logger, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("dino data not loaded")
		return s
	}
	if err := json.Unmarshal(data, &s.dinos); err != nil {
		logger.Error().Err(err).Str("file", path).Msg("dino data malformed")
		return s
	}
	logger.Info().Int("count", len(s.dinos)).Str("file", path).Msg("dinosaurs loaded")
	return s
}

func (s *Store) Count() int {
	return len(s.dinos)
}

// Daily returns a record selected by the day ordinal, so the pick is stable
// for a calendar day and rotates at home-timezone midnight.
func (s *Store) Daily() Dino {
	if len(s.dinos) == 0 {
		return Dino{Name: "No Dino", Fact: "Dino data not available"}
	}
	y, m, d := s.now().In(s.loc).Date()
	ordinal := int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
	return s.dinos[ordinal%len(s.dinos)]
}

// ByName does a case-insensitive lookup.
func (s *Store) ByName(name string) (Dino, bool) {
	for _, d := range s.dinos {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Dino{}, false
}
