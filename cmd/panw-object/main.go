// Command panw-object turns lists of IPs, subnets, ranges and FQDNs into
// PAN-OS configuration commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/weirlive/panw-object/internal/logging"
	"go.uber.org/zap"
)

type rootOptions struct {
	verbose   bool
	logFormat string
	logger    *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "panw-object",
		Short: "Generate PAN-OS address object commands",
		Long: `panw-object builds "set address" and "set address-group" commands for
PAN-OS from a list of entries. Objects are named ZONE_TYPE_VALUE, where TYPE
is HST, SBN, ADR or FQDN.

Use "generate" for a one-off batch and "serve" to run the web form and API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logger, err := logging.New(logging.Config{Level: level, Format: opts.logFormat})
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "Log format for the CLI (console, json)")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
