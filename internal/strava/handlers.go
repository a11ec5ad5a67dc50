package strava

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/strava", func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Context())
		if err != nil {
			empty := emptySummary()
			return c.JSON(fiber.Map{
				"error":         "No Strava data available",
				"display_stat":  empty.DisplayStat,
				"display_label": empty.DisplayLabel,
				"streak":        empty.Streak,
			})
		}
		return c.JSON(summary)
	})

	r.Get("/strava/detailed", func(c *fiber.Ctx) error {
		detailed, err := svc.Detailed(c.Context())
		if err != nil {
			return c.JSON(fiber.Map{"error": "No Strava data available"})
		}
		return c.JSON(detailed)
	})
}
