package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/handler"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/middleware"
)

func SetupMathProblemRoute(api *fiber.App, handler handler.MathProblemHandler, m *middleware.Middleware) {
	router := api.Group("/api/math-problem")
	{
		router.Post("/", handler.Generate)
		router.Post("/submit", handler.SubmitAnswer)
		router.Get("/sessions/:session_id/submissions", handler.GetSessionSubmissions)
	}
}
