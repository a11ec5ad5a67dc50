package server

import (
	"backend-flightdeck/internal/astro"
	"backend-flightdeck/internal/config"
	"backend-flightdeck/internal/dashboard"
	"backend-flightdeck/internal/dino"
	"backend-flightdeck/internal/logging"
	"backend-flightdeck/internal/nasa"
	"backend-flightdeck/internal/settings"
	"backend-flightdeck/internal/strava"
	"backend-flightdeck/internal/weather"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	App *fiber.App
	Cfg config.Config
}

func NewServer(cfg config.Config) *Server {
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App: app,
		Cfg: cfg,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log := logging.New(s.Cfg.LogLevel)
	loc := s.Cfg.Location()

	weatherSvc := weather.NewService(s.Cfg.AVWXToken, "", log)
	nasaSvc := nasa.NewService(s.Cfg.NASAAPIKey, "", "", log)
	astroSvc := astro.NewService(s.Cfg.HomeLat, s.Cfg.HomeLon, loc, "", log)
	tokens := strava.NewTokenProvider(s.Cfg.StravaClientID, s.Cfg.StravaClientSecret, s.Cfg.StravaRefreshToken, "", log)
	stravaSvc := strava.NewService(tokens, "", loc, log)
	dinoStore := dino.NewStore(s.Cfg.DinoDataFile, loc, log)
	settingsStore := settings.NewStore(s.Cfg.SettingsFile, log)

	api := s.App.Group("/api")
	weather.RegisterRoutes(api, weatherSvc, settingsStore.Airport)
	nasa.RegisterRoutes(api, nasaSvc)
	astro.RegisterRoutes(api, astroSvc)
	strava.RegisterRoutes(api, stravaSvc)
	dino.RegisterRoutes(api, dinoStore)
	settings.RegisterRoutes(api, settingsStore, weatherSvc.InvalidateCaches)
	dashboard.RegisterRoutes(api, dashboard.Services{
		Weather:  weatherSvc,
		NASA:     nasaSvc,
		Astro:    astroSvc,
		Strava:   stravaSvc,
		Dinos:    dinoStore,
		Settings: settingsStore,
		HomeLat:  s.Cfg.HomeLat,
		HomeLon:  s.Cfg.HomeLon,
	})
}
