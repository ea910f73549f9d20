package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	callArgs struct {
		routerArgs

		method  string
		params  string
		timeout time.Duration
	}

	callCmd = &cobra.Command{
		Use:   "call",
		Short: "Dispatch a single JSON-RPC call and print the response",
		Run:   call,
	}
)

func init() {
	callArgs.bind(callCmd)

	callCmd.Flags().StringVar(&callArgs.method, "method", "", "RPC method to call")
	callCmd.MarkFlagRequired("method")
	callCmd.Flags().StringVar(&callArgs.params, "params", "[]", "RPC params in JSON array")
	callCmd.Flags().DurationVar(&callArgs.timeout, "timeout", 0, "cli task timeout, 0 for no timeout")

	rootCmd.AddCommand(callCmd)
}

func call(*cobra.Command, []string) {
	ctx := context.Background()
	if callArgs.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, callArgs.timeout)
		defer cancel()
	}

	decoder := json.NewDecoder(strings.NewReader(callArgs.params))
	decoder.UseNumber()

	var params []interface{}
	if err := decoder.Decode(&params); err != nil {
		logrus.WithError(err).WithField("params", callArgs.params).Fatal("Failed to parse params")
	}

	r := callArgs.mustNewRouter()

	result, err := r.Call(ctx, callArgs.method, params...)
	if err != nil {
		logrus.WithError(err).WithField("method", callArgs.method).Fatal("Failed to call RPC")
	}

	fmt.Println(string(result))
}
