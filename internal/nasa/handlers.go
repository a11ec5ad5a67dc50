package nasa

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/apod", func(c *fiber.Ctx) error {
		return c.JSON(svc.Apod(c.Context()))
	})

	r.Get("/epic", func(c *fiber.Ctx) error {
		return c.JSON(svc.Epic(c.Context()))
	})
}
