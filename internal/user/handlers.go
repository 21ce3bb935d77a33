package user

import (
	"errors"

	"backend-runhub/internal/audit"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, aud *audit.Service, authMiddleware fiber.Handler) {
	r.Get("/profile", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		u, err := svc.Get(c.Context(), userID)
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(u)
	})

	r.Put("/profile", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		var patch ProfilePatch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		u, err := svc.UpdateProfile(c.Context(), userID, patch)
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(u)
	})

	r.Get("/", authMiddleware, adminOnly(func(c *fiber.Ctx) error {
		users, err := svc.List(c.Context())
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(users)
	}))

	r.Get("/pending", authMiddleware, adminOnly(func(c *fiber.Ctx) error {
		users, err := svc.Pending(c.Context())
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(users)
	}))

	r.Put("/:id/approve", authMiddleware, adminOnly(func(c *fiber.Ctx) error {
		u, err := svc.Approve(c.Context(), c.Params("id"))
		if err != nil {
			return statusFor(err)
		}
		adminID, _ := c.Locals("user_id").(string)
		aud.Log(c.Context(), adminID, "user.approve", u.ID)
		return c.JSON(fiber.Map{"message": "user approved", "user": u})
	}))

	r.Post("/:id/reset", authMiddleware, func(c *fiber.Ctx) error {
		requesterID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)
		targetID := c.Params("id")

		if targetID != requesterID && role != "admin" {
			return fiber.NewError(fiber.StatusForbidden, "admin or self only")
		}
		if err := svc.Reset(c.Context(), targetID); err != nil {
			return statusFor(err)
		}
		aud.Log(c.Context(), requesterID, "user.reset", targetID)
		return c.JSON(fiber.Map{"message": "runs and goal reset"})
	})

	r.Put("/:id", authMiddleware, adminOnly(func(c *fiber.Ctx) error {
		var patch AdminPatch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		u, err := svc.AdminUpdate(c.Context(), c.Params("id"), patch)
		if err != nil {
			return statusFor(err)
		}
		adminID, _ := c.Locals("user_id").(string)
		aud.Log(c.Context(), adminID, "user.update", u.ID)
		return c.JSON(u)
	}))

	r.Delete("/:id", authMiddleware, adminOnly(func(c *fiber.Ctx) error {
		requesterID, _ := c.Locals("user_id").(string)
		if err := svc.Delete(c.Context(), c.Params("id"), requesterID); err != nil {
			return statusFor(err)
		}
		aud.Log(c.Context(), requesterID, "user.delete", c.Params("id"))
		return c.JSON(fiber.Map{"message": "user deleted"})
	}))

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		u, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(u)
	})
}

func adminOnly(handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != "admin" {
			return fiber.NewError(fiber.StatusForbidden, "admin only")
		}
		return handler(c)
	}
}

func statusFor(err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyApproved), errors.Is(err, ErrSelfDelete):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
