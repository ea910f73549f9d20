package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouteFactory registers routes on the gin engine.
type RouteFactory func(router *gin.Engine)

type RouterOption struct {
	RecoveryDisabled bool
	LoggerForced     bool
	OriginsAllowed   []string
}

// MustServe serves the API until shutdown, and exits the program on failure.
func MustServe(endpoint string, factory RouteFactory, option ...RouterOption) {
	logrus.WithField("endpoint", endpoint).Info("Start to serve API")

	if err := Serve(endpoint, factory, option...); err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("Failed to serve API")
	}
}

// Serve serves the API until shutdown.
func Serve(endpoint string, factory RouteFactory, option ...RouterOption) error {
	server := http.Server{
		Addr:    endpoint,
		Handler: NewEngine(factory, option...),
	}

	return server.ListenAndServe()
}

// NewEngine creates a gin engine with recovery, CORS and optional request logs.
func NewEngine(factory RouteFactory, option ...RouterOption) *gin.Engine {
	var opt RouterOption
	if len(option) > 0 {
		opt = option[0]
	}

	engine := gin.New()

	if !opt.RecoveryDisabled {
		engine.Use(gin.Recovery())
	}

	engine.Use(newCorsMiddleware(opt.OriginsAllowed))

	if opt.LoggerForced || logrus.IsLevelEnabled(logrus.DebugLevel) {
		engine.Use(gin.Logger())
	}

	factory(engine)

	return engine
}

func newCorsMiddleware(origins []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowMethods = append(conf.AllowMethods, "OPTIONS")
	conf.AllowHeaders = append(conf.AllowHeaders, "*")

	if len(origins) == 0 {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = origins
	}

	return cors.New(conf)
}
