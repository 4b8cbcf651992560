package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rentzsch/smfp"
)

// exit codes
const (
	exitOK         = 0
	exitConnection = 1
	exitRemote     = 2
	exitINT        = 130
)

type rootConfig struct {
	socketPath     string
	timeout        time.Duration
	connectRetries int
	format         string
	quiet          bool
}

func newRootCmd() *cobra.Command {
	cfg := &rootConfig{}
	return buildRootCmd(cfg)
}

func buildRootCmd(cfg *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "smfpclient",
		Short:         "SMFP client",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec
				return cmd.Help()
			}
			return cmd.Usage()
		},
	}
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.AddCommand(newSendCmd(cfg))
	cmd.AddCommand(newStreamCmd(cfg))

	f := cmd.PersistentFlags()
	f.StringVarP(&cfg.socketPath, "socket", "s", "/tmp/smfp.sock", "path to the SMFP unix-domain socket")
	f.DurationVarP(&cfg.timeout, "timeout", "t", 5*time.Second, "dial timeout")
	f.IntVar(&cfg.connectRetries, "connect-retries", 10, "number of connect attempts before giving up")
	f.StringVarP(&cfg.format, "format", "f", "", "output format: raw, hex (default: hex on TTY, raw when piped)")
	f.BoolVar(&cfg.quiet, "quiet", false, "suppress non-data output to stderr")

	return cmd
}

// connectionFor builds a Connection from cfg, shared by every subcommand.
func connectionFor(cfg *rootConfig) *smfp.Connection {
	return smfp.Create(cfg.socketPath,
		smfp.WithDialTimeout(cfg.timeout),
		smfp.WithConnectRetries(cfg.connectRetries),
	)
}
