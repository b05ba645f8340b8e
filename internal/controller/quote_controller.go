package controller

import (
	"time"

	"irene-companion-be/internal/pkg/serverutils"
	"irene-companion-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuoteController interface {
	RegisterRoutes(r fiber.Router)
	Daily(ctx *fiber.Ctx) error
}

type quoteController struct {
	quoteService service.IQuoteService
}

func NewQuoteController(quoteService service.IQuoteService) IQuoteController {
	return &quoteController{
		quoteService: quoteService,
	}
}

func (c *quoteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/quote/v1")
	h.Get("daily", c.Daily)
}

func (c *quoteController) Daily(ctx *fiber.Ctx) error {
	res := c.quoteService.GetDailyQuote(time.Now())
	return ctx.JSON(serverutils.SuccessResponse("Success get daily quote", res))
}
