package gateway

import (
	"time"

	"github.com/0glabs/0g-provider-router/common/api"
	"github.com/0glabs/0g-provider-router/router"
	"github.com/gin-gonic/gin"
	"github.com/mcuadros/go-defaults"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Endpoint       string        `default:":8545"` // http endpoint
	CallTimeout    time.Duration `default:"5m"`    // max time to wait for a call outcome
	OriginsAllowed []string      // CORS origins, all allowed if empty
}

// MustServe serves the JSON-RPC gateway of the router until shutdown.
func MustServe(r *router.Router, config Config) {
	defaults.SetDefaults(&config)

	api.MustServe(config.Endpoint, routes(r, config), api.RouterOption{
		OriginsAllowed: config.OriginsAllowed,
	})
}

// NewHandler returns the http handler of the JSON-RPC gateway.
func NewHandler(r *router.Router, config Config) *gin.Engine {
	defaults.SetDefaults(&config)

	return api.NewEngine(routes(r, config), api.RouterOption{
		OriginsAllowed: config.OriginsAllowed,
	})
}

func routes(r *router.Router, config Config) api.RouteFactory {
	controller := NewRpcController(r, config.CallTimeout)

	return func(engine *gin.Engine) {
		engine.POST("/", controller.call)
		engine.GET("/status", api.Wrap(controller.getStatus))
		engine.GET("/route", api.Wrap(controller.getRoute))
		engine.GET("/accounts", api.Wrap(controller.getAccounts))
		engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}
