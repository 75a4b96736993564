package middleware

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Middleware holds the shared collaborators Fiber handlers are built from.
type Middleware struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

func NewMiddleware(log *logrus.Logger, config *viper.Viper) *Middleware {
	return &Middleware{
		Log:    log,
		Config: config,
	}
}
