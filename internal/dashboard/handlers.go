package dashboard

import (
	"time"

	"backend-flightdeck/internal/astro"
	"backend-flightdeck/internal/dino"
	"backend-flightdeck/internal/nasa"
	"backend-flightdeck/internal/settings"
	"backend-flightdeck/internal/strava"
	"backend-flightdeck/internal/weather"

	"github.com/gofiber/fiber/v2"
)

// Services bundles everything the composite endpoints read from.
type Services struct {
	Weather  *weather.Service
	NASA     *nasa.Service
	Astro    *astro.Service
	Strava   *strava.Service
	Dinos    *dino.Store
	Settings *settings.Store
	HomeLat  float64
	HomeLon  float64
}

func RegisterRoutes(r fiber.Router, s Services) {
	r.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(snapshot(c, s))
	})

	r.Get("/refresh", func(c *fiber.Ctx) error {
		s.Weather.InvalidateCaches()
		s.NASA.InvalidateCaches()
		s.Astro.InvalidateCache()
		s.Strava.InvalidateCache()
		return c.JSON(snapshot(c, s))
	})

	r.Get("/health", func(c *fiber.Ctx) error {
		services := fiber.Map{
			"nasa": pingStatus(s.NASA.Ping(c.Context())),
			"avwx": pingStatus(s.Weather.Ping(c.Context())),
		}
		if s.Strava.Enabled() {
			services["strava"] = s.Strava.TokenStatus(c.Context())
		} else {
			services["strava"] = "not_configured"
		}

		status := "ok"
		for _, v := range services {
			if v != "ok" && v != "not_configured" {
				status = "degraded"
			}
		}
		return c.JSON(fiber.Map{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"services":  services,
		})
	})

	r.Get("/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"refresh_intervals": fiber.Map{
				"metar":   300000,
				"flights": 30000,
				"weather": 300000,
				"apod":    3600000,
				"strava":  1800000,
			},
			"coordinates": fiber.Map{
				"lat": s.HomeLat,
				"lon": s.HomeLon,
			},
			"caching": fiber.Map{
				"metar":   "5 minutes",
				"taf":     "10 minutes",
				"apod":    "1 hour",
				"epic":    "1 hour",
				"sunmoon": "1 hour",
				"strava":  "30 minutes",
			},
			"features": fiber.Map{
				"strava_enabled": s.Strava.Enabled(),
			},
		})
	})
}

// snapshot assembles the aggregated home view. Strava is the only source
// that may be absent entirely; everything else degrades per field.
func snapshot(c *fiber.Ctx, s Services) fiber.Map {
	airport := s.Settings.Airport()

	var stravaData any
	if summary, err := s.Strava.Summary(c.Context()); err == nil {
		stravaData = summary
	}

	return fiber.Map{
		"metar":     s.Weather.Metar(c.Context(), airport),
		"dino":      s.Dinos.Daily(),
		"nasa_apod": s.NASA.Apod(c.Context()),
		"nasa_epic": s.NASA.Epic(c.Context()),
		"sunmoon":   s.Astro.SunTimes(c.Context()),
		"strava":    stravaData,
	}
}

func pingStatus(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
