package group

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)

		var input CreateInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		g, err := svc.Create(c.Context(), userID, role, input)
		if err != nil {
			return statusFor(err)
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		groups, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(groups)
	})

	r.Post("/join", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var input JoinInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		g, err := svc.Join(c.Context(), userID, input)
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(fiber.Map{"message": "joined group", "group": g.Name})
	})

	r.Post("/leave", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := svc.Leave(c.Context(), userID); err != nil {
			return statusFor(err)
		}
		return c.JSON(fiber.Map{"message": "left group"})
	})

	r.Delete("/:id/members/:userId", authMiddleware, func(c *fiber.Ctx) error {
		coachID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)

		if err := svc.RemoveMember(c.Context(), c.Params("id"), coachID, role, c.Params("userId")); err != nil {
			return statusFor(err)
		}
		return c.JSON(fiber.Map{"message": "member removed"})
	})

	r.Get("/:id/members", authMiddleware, func(c *fiber.Ctx) error {
		members, err := svc.Members(c.Context(), c.Params("id"))
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(members)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var input UpdateInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		g, err := svc.Update(c.Context(), c.Params("id"), userID, input)
		if err != nil {
			return statusFor(err)
		}
		return c.JSON(g)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)

		if err := svc.Delete(c.Context(), c.Params("id"), userID, role); err != nil {
			return statusFor(err)
		}
		return c.JSON(fiber.Map{"message": "group disbanded"})
	})
}

func statusFor(err error) error {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrCoachOnly), errors.Is(err, ErrNotGroupOwner):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrBadCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrGroupExists):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrNotInGroup):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
