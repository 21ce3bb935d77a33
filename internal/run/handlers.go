package run

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "not authorized")
		}

		var input SubmitInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		record, err := svc.Submit(c.Context(), userID, input)
		if err != nil {
			if IsValidationError(err) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	})

	r.Get("/myruns", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		runs, err := svc.UserRuns(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(runs)
	})

	r.Get("/myruns/export", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		runs, err := svc.UserRuns(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="runs.csv"`)
		if err := WriteCSV(c, runs); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return nil
	})

	r.Get("/all", authMiddleware, func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != "admin" && role != "coach" {
			return fiber.NewError(fiber.StatusForbidden, "admin or coach only")
		}
		runs, err := svc.AllRuns(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(runs)
	})

	r.Get("/user/:userId", authMiddleware, func(c *fiber.Ctx) error {
		runs, err := svc.UserRuns(c.Context(), c.Params("userId"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(runs)
	})

	r.Get("/group/:groupId", authMiddleware, func(c *fiber.Ctx) error {
		runs, err := svc.GroupRuns(c.Context(), c.Params("groupId"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(runs)
	})

	r.Delete("/user/:userId", authMiddleware, func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != "admin" {
			return fiber.NewError(fiber.StatusForbidden, "admin only")
		}
		if err := svc.DeleteAllForUser(c.Context(), c.Params("userId")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"message": "all runs deleted for this user"})
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)

		err := svc.Delete(c.Context(), c.Params("id"), userID, role)
		switch {
		case errors.Is(err, ErrRunNotFound):
			return fiber.NewError(fiber.StatusNotFound, "run not found")
		case errors.Is(err, ErrNotOwner):
			return fiber.NewError(fiber.StatusForbidden, "not allowed to delete this run")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"message": "run removed"})
	})
}
