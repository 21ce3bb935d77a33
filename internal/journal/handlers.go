package journal

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var input EntryInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entry, err := svc.Create(c.Context(), userID, input)
		if err != nil {
			return statusFor(err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	})

	r.Get("/mine", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		entries, err := svc.ForUser(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(entries)
	})

	r.Get("/export", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		entries, err := svc.ForUser(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="journal_entries.csv"`)
		if err := WriteCSV(c, entries); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return nil
	})

	r.Get("/user/:userId", authMiddleware, func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != "coach" && role != "admin" {
			return fiber.NewError(fiber.StatusForbidden, "coach or admin only")
		}
		entries, err := svc.ForUser(c.Context(), c.Params("userId"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(entries)
	})

	r.Put("/:id/feedback", authMiddleware, func(c *fiber.Ctx) error {
		coachID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)

		var input FeedbackInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entry, err := svc.Feedback(c.Context(), c.Params("id"), coachID, role, input)
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(entry)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var input EntryInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entry, err := svc.Update(c.Context(), c.Params("id"), userID, input)
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(entry)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)

		if err := svc.Delete(c.Context(), c.Params("id"), userID, role); err != nil {
			return statusFor(err)
		}
		return c.JSON(fiber.Map{"message": "entry removed"})
	})
}

func statusFor(err error) error {
	switch {
	case errors.Is(err, ErrEntryNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrCoachOnly):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrEmptyEntry), errors.Is(err, ErrEmptyFeedback):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
