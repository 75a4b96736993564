package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/handler"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/middleware"
)

type RouteConfig struct {
	Api                *fiber.App
	Middleware         *middleware.Middleware
	MathProblemHandler handler.MathProblemHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupMathProblemRoute(c.Api, c.MathProblemHandler, c.Middleware)
}
