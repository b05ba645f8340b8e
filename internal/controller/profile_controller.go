package controller

import (
	"irene-companion-be/internal/dto"
	"irene-companion-be/internal/pkg/serverutils"
	"irene-companion-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Get("", c.Show)
	h.Put("", c.Update)
}

func (c *profileController) Show(ctx *fiber.Ctx) error {
	sess := sessionFromLocals(ctx)

	res, err := c.profileService.GetProfile(ctx.Context(), sess)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *profileController) Update(ctx *fiber.Ctx) error {
	sess := sessionFromLocals(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.profileService.UpdateProfile(ctx.Context(), sess, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update profile", res))
}
