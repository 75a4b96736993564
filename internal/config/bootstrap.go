package config

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/handler"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/middleware"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/repository"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/route"
	"github.com/mathquiz/mathquiz-be/internal/delivery/http/usecase"
	"github.com/mathquiz/mathquiz-be/internal/pkg/corpus"
	"github.com/mathquiz/mathquiz-be/internal/pkg/llm"
	"github.com/mathquiz/mathquiz-be/internal/pkg/validate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(config *BootstrapConfig) {

	mid := middleware.NewMiddleware(config.Log, config.Config)

	provider, err := llm.New(context.Background(), config.Config)
	if err != nil {
		config.Log.Fatalf("Failed to create LLM provider: %v", err)
	}

	generateAttempts := config.Config.GetInt("llm.generate_max_attempts")
	if generateAttempts <= 0 {
		generateAttempts = 5
	}
	feedbackAttempts := config.Config.GetInt("llm.feedback_max_attempts")
	if feedbackAttempts <= 0 {
		feedbackAttempts = 3
	}

	// The auxiliary syllabus lookup is optional; an empty URL means the
	// capability is absent and generation runs without enrichment.
	var corpusClient corpus.Corpus
	if config.Config.GetString("syllabus.url") != "" {
		corpusClient = corpus.NewHTTPCorpus(15 * time.Second)
	}

	mathProblemRepo := repository.NewMathProblemRepository(config.DB)
	mathProblemUsecase := usecase.NewMathProblemUsecase(usecase.MathProblemConfig{
		DB:             config.DB,
		Repository:     mathProblemRepo,
		Generator:      llm.WithRetry(provider, llm.DefaultRetryConfig(generateAttempts)),
		Grader:         llm.WithRetry(provider, llm.DefaultRetryConfig(feedbackAttempts)),
		Corpus:         corpusClient,
		Log:            config.Log,
		Config:         config.Config,
		PromptTemplate: config.Config.GetString("llm.prompt_template"),
	})
	mathProblemHandler := handler.NewMathProblemHandler(config.Validator, config.Log, mathProblemUsecase)

	route.Setup(&route.RouteConfig{
		Api:                config.Api,
		Middleware:         mid,
		MathProblemHandler: mathProblemHandler,
	})

}
