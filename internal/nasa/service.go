package nasa

import (
	"context"
	"net/http"
	"strings"
	"time"

	"backend-flightdeck/internal/cache"
	"backend-flightdeck/internal/upstream"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL        = "https://api.nasa.gov"
	DefaultEpicArchiveURL = "https://epic.gsfc.nasa.gov/archive/natural"

	apodTTL = time.Hour
	epicTTL = time.Hour

	// epicCandidates bounds how many recent images get an existence probe.
	epicCandidates = 3
)

type Service struct {
	apiKey     string
	baseURL    string
	archiveURL string
	client     *http.Client
	probe      *http.Client
	log        zerolog.Logger
	now        func() time.Time

	apod *cache.Cache[struct{}, Apod]
	epic *cache.Cache[struct{}, Epic]
}

func NewService(apiKey, baseURL, archiveURL string, logger zerolog.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if archiveURL == "" {
		archiveURL = DefaultEpicArchiveURL
	}
	return &Service{
		apiKey:     apiKey,
		baseURL:    baseURL,
		archiveURL: archiveURL,
		client:     upstream.NewClient(),
		probe:      upstream.NewProbeClient(),
		log:        logger,
		now:        time.Now,
		apod:       cache.New[struct{}, Apod](apodTTL),
		epic:       cache.New[struct{}, Epic](epicTTL),
	}
}

type apodResponse struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	MediaType   string `json:"media_type"`
	Explanation string `json:"explanation"`
}

type epicItem struct {
	Caption string `json:"caption"`
	Image   string `json:"image"`
	Date    string `json:"date"`
}

// Apod returns the picture of the day, cached for an hour. Today's entry is
// preferred; an unusable one falls back to yesterday's image and finally to
// a fixed archive picture.
func (s *Service) Apod(ctx context.Context) Apod {
	return s.apod.Get(struct{}{}, func() Apod {
		if record, ok := s.fetchApod(ctx, ""); ok {
			return record
		}
		yesterday := s.now().AddDate(0, 0, -1).Format("2006-01-02")
		if record, ok := s.fetchYesterdayApod(ctx, yesterday); ok {
			s.log.Info().Msg("using yesterday's apod as fallback")
			return record
		}
		s.log.Warn().Msg("using hardcoded apod fallback image")
		return fallbackApod()
	})
}

func (s *Service) fetchApod(ctx context.Context, date string) (Apod, bool) {
	url := s.baseURL + "/planetary/apod?api_key=" + s.apiKey
	if date != "" {
		url += "&date=" + date
	}

	var data apodResponse
	if err := upstream.GetJSON(ctx, s.client, url, nil, &data); err != nil {
		s.log.Error().Err(err).Msg("apod fetch failed")
		return Apod{}, false
	}

	mediaType := data.MediaType
	if mediaType == "" {
		mediaType = "image"
	}

	if mediaType == "video" {
		s.log.Info().Str("title", data.Title).Msg("apod is a video")
		return Apod{
			Title:       orDefault(data.Title, "NASA Video"),
			URL:         embedVideoURL(data.URL),
			MediaType:   "video",
			Explanation: truncate(data.Explanation, 150) + "...",
		}, true
	}

	if !upstream.Resolves(ctx, s.probe, data.URL) {
		s.log.Warn().Str("url", data.URL).Msg("apod image validation failed")
		return Apod{}, false
	}
	return Apod{
		Title:       orDefault(data.Title, "NASA Bild"),
		URL:         data.URL,
		MediaType:   "image",
		Explanation: truncate(data.Explanation, 150) + "...",
	}, true
}

func (s *Service) fetchYesterdayApod(ctx context.Context, date string) (Apod, bool) {
	url := s.baseURL + "/planetary/apod?api_key=" + s.apiKey + "&date=" + date

	var data apodResponse
	if err := upstream.GetJSON(ctx, s.client, url, nil, &data); err != nil {
		return Apod{}, false
	}
	if data.MediaType != "image" {
		return Apod{}, false
	}
	return Apod{
		Title:       orDefault(data.Title, "NASA APOD (Yesterday)"),
		URL:         data.URL,
		MediaType:   "image",
		Explanation: "Gestern: " + truncate(data.Explanation, 140) + "...",
	}, true
}

// Epic returns the most recent earth image whose archive URL resolves,
// cached for an hour. Up to three candidates are probed before falling back.
func (s *Service) Epic(ctx context.Context) Epic {
	return s.epic.Get(struct{}{}, func() Epic {
		var items []epicItem
		url := s.baseURL + "/EPIC/api/natural?api_key=" + s.apiKey
		if err := upstream.GetJSON(ctx, s.client, url, nil, &items); err != nil {
			s.log.Error().Err(err).Msg("epic fetch failed")
			return fallbackEpic()
		}

		for i, item := range items {
			if i >= epicCandidates {
				break
			}
			taken, err := time.Parse("2006-01-02 15:04:05", item.Date)
			if err != nil {
				s.log.Warn().Str("date", item.Date).Msg("epic date unparsable")
				continue
			}
			imageURL := s.archiveURL + "/" + taken.Format("2006/01/02") + "/jpg/" + item.Image + ".jpg"
			if !upstream.Resolves(ctx, s.probe, imageURL) {
				s.log.Warn().Str("url", imageURL).Msg("epic image validation failed")
				continue
			}
			s.log.Info().Str("date", item.Date).Msg("epic image found")
			return Epic{
				Caption: orDefault(item.Caption, "Earth from Space"),
				URL:     imageURL,
				Date:    item.Date,
			}
		}
		s.log.Warn().Msg("using epic fallback image")
		return fallbackEpic()
	})
}

// Ping checks NASA API reachability for the health endpoint, bypassing caches.
func (s *Service) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var data apodResponse
	return upstream.GetJSON(ctx, s.client, s.baseURL+"/planetary/apod?api_key="+s.apiKey, nil, &data) == nil
}

func (s *Service) InvalidateCaches() {
	s.apod.Invalidate()
	s.epic.Invalidate()
}

// embedVideoURL rewrites a youtube watch page into its embeddable form;
// any other URL passes through unchanged.
func embedVideoURL(url string) string {
	if !strings.Contains(url, "youtube.com/watch") {
		return url
	}
	_, query, ok := strings.Cut(url, "v=")
	if !ok {
		return url
	}
	id, _, _ := strings.Cut(query, "&")
	if id == "" {
		return url
	}
	return "https://www.youtube.com/embed/" + id
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
