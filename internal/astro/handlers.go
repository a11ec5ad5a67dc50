package astro

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/sunmoon", func(c *fiber.Ctx) error {
		return c.JSON(svc.SunTimes(c.Context()))
	})
}
