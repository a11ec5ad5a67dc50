package dino

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, store *Store) {
	r.Get("/dino", func(c *fiber.Ctx) error {
		return c.JSON(store.Daily())
	})

	r.Get("/dino/:name", func(c *fiber.Ctx) error {
		d, ok := store.ByName(c.Params("name"))
		if !ok {
			return c.JSON(fiber.Map{"error": "Dino not found"})
		}
		return c.JSON(d)
	})
}
