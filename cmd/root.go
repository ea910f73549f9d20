package cmd

import (
	"fmt"
	"os"

	"github.com/0glabs/0g-provider-router/common"
	"github.com/0glabs/0g-provider-router/common/blockchain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel         string
	logColorDisabled bool

	rootCmd = &cobra.Command{
		Use:   "0g-provider-router",
		Short: "Route JSON-RPC calls to the blockchain node or a local wallet provider",
		PersistentPreRun: func(*cobra.Command, []string) {
			initLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logrus.InfoLevel.String(), "Log level")
	rootCmd.PersistentFlags().BoolVar(&logColorDisabled, "log-color-disabled", false, "Force to disable colorful logs")
	rootCmd.PersistentFlags().BoolVar(&blockchain.Web3LogEnabled, "web3-log-enabled", false, "Enable log for web3 RPC of the wallet provider")
}

func initLog() {
	logrus.SetFormatter(common.NewTextFormatter(logColorDisabled))

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).WithField("level", logLevel).Fatal("Failed to parse log level")
	}

	logrus.SetLevel(level)
}

// Execute is the command line entrypoint.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
