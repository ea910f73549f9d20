package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/0glabs/0g-provider-router/router"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Status struct {
	URL             string   `json:"url"`
	MaxRetries      int      `json:"maxRetries"`
	WalletMethods   []string `json:"walletMethods"`
	WalletAvailable bool     `json:"walletAvailable"`
}

// Route tells where a method is routed to.
type Route struct {
	Method string `json:"method"`
	Route  string `json:"route"` // http or wallet
}

type routeQuery struct {
	Method string `form:"method" binding:"required"`
}

type RpcController struct {
	router  *router.Router
	timeout time.Duration
}

func NewRpcController(r *router.Router, timeout time.Duration) *RpcController {
	return &RpcController{
		router:  r,
		timeout: timeout,
	}
}

// call dispatches the JSON-RPC payload in request body, and responds the
// outcome as it is.
func (ctrl *RpcController) call(c *gin.Context) {
	var payload router.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errorResponse(payload.ID, err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctrl.timeout)
	defer cancel()

	result, err := ctrl.router.CallPayload(ctx, &payload)
	if err != nil {
		logrus.WithError(err).WithField("method", payload.Method).Debug("Failed to call RPC")
		c.JSON(errorResponse(payload.ID, err))
		return
	}

	if len(result) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}

func (ctrl *RpcController) getStatus(c *gin.Context) (interface{}, error) {
	return Status{
		URL:             ctrl.router.URL(),
		MaxRetries:      ctrl.router.MaxRetries(),
		WalletMethods:   router.WalletMethods(),
		WalletAvailable: ctrl.router.WalletAvailable(),
	}, nil
}

func (ctrl *RpcController) getRoute(c *gin.Context) (interface{}, error) {
	var query routeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return nil, err
	}

	route := Route{query.Method, "http"}
	if router.IsWalletMethod(query.Method) {
		route.Route = "wallet"
	}

	return route, nil
}

// getAccounts returns the accounts of the injected wallet provider.
func (ctrl *RpcController) getAccounts(c *gin.Context) (interface{}, error) {
	if !ctrl.router.WalletAvailable() {
		return nil, ErrWalletUnavailable
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctrl.timeout)
	defer cancel()

	return router.CallResult[[]ethCommon.Address](ctx, ctrl.router, "eth_accounts")
}
