package settings

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes wires the settings endpoints. invalidate is called after a
// successful airport change so weather data is refetched for the new station.
func RegisterRoutes(r fiber.Router, store *Store, invalidate func()) {
	r.Get("/settings", func(c *fiber.Ctx) error {
		return c.JSON(store.All())
	})

	r.Post("/settings", func(c *fiber.Ctx) error {
		var body struct {
			AirportICAO string `json:"airport_icao"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		icao := strings.ToUpper(strings.TrimSpace(body.AirportICAO))
		if len(icao) != 4 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ICAO must be 4 characters"})
		}

		if err := store.SetAirport(icao); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save"})
		}
		if invalidate != nil {
			invalidate()
		}
		return c.JSON(fiber.Map{"success": true, "airport_icao": icao})
	})
}
