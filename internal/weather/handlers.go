package weather

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes wires the weather endpoints. airport supplies the current
// home station from settings.
func RegisterRoutes(r fiber.Router, svc *Service, airport func() string) {
	r.Get("/metar", func(c *fiber.Ctx) error {
		return c.JSON(svc.Metar(c.Context(), airport()))
	})

	r.Get("/taf", func(c *fiber.Ctx) error {
		return c.JSON(svc.Taf(c.Context(), airport()))
	})

	r.Get("/notams", func(c *fiber.Ctx) error {
		return c.JSON(svc.Notams(airport()))
	})

	r.Get("/test-airport/:icao", func(c *fiber.Ctx) error {
		valid, m := svc.ValidStation(c.Context(), c.Params("icao"))
		return c.JSON(fiber.Map{"valid": valid, "station": m.Station})
	})
}
