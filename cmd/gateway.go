package cmd

import (
	"time"

	"github.com/0glabs/0g-provider-router/gateway"
	"github.com/spf13/cobra"
)

var (
	gatewayArgs struct {
		routerArgs

		endpoint    string
		callTimeout time.Duration
		origins     []string
	}

	gatewayCmd = &cobra.Command{
		Use:   "gateway",
		Short: "Start JSON-RPC gateway service",
		Run:   startGateway,
	}
)

func init() {
	gatewayArgs.bind(gatewayCmd)

	gatewayCmd.Flags().StringVar(&gatewayArgs.endpoint, "endpoint", ":8545", "Gateway HTTP endpoint")
	gatewayCmd.Flags().DurationVar(&gatewayArgs.callTimeout, "call-timeout", 5*time.Minute, "Max time to wait for the outcome of a call")
	gatewayCmd.Flags().StringSliceVar(&gatewayArgs.origins, "origins", nil, "CORS origins allowed, all if not specified")

	rootCmd.AddCommand(gatewayCmd)
}

func startGateway(*cobra.Command, []string) {
	r := gatewayArgs.mustNewRouter()

	gateway.MustServe(r, gateway.Config{
		Endpoint:       gatewayArgs.endpoint,
		CallTimeout:    gatewayArgs.callTimeout,
		OriginsAllowed: gatewayArgs.origins,
	})
}
