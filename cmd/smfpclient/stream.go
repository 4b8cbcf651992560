package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rentzsch/smfp"
	"github.com/rentzsch/smfp/internal/output"
)

func newStreamCmd(cfg *rootConfig) *cobra.Command {
	var requestCode uint8
	var untilEmpty bool
	cmd := &cobra.Command{
		Use:   "stream [argument]",
		Short: "Send one request and print every streamed response payload",
		Long: "Stream exercises a transaction whose handler is invoked once per response frame " +
			"(spec-described streaming responses) instead of stopping after the first.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg, err := readArgument(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runStream(cfg, requestCode, arg, untilEmpty)
		},
	}
	cmd.Flags().Uint8Var(&requestCode, "code", 0x42, "request code byte")
	cmd.Flags().BoolVar(&untilEmpty, "until-empty", false, "stop at the first zero-length response instead of reading until the connection closes")
	return cmd
}

func runStream(cfg *rootConfig, requestCode byte, arg []byte, untilEmpty bool) error {
	c := connectionFor(cfg)
	defer func() { _ = c.Dispose() }()

	var payloads [][]byte
	var err error
	if untilEmpty {
		payloads, err = smfp.CollectUntil(c, requestCode, arg, func(payload []byte) bool {
			return len(payload) == 0
		})
	} else {
		payloads, err = smfp.Collect(c, requestCode, arg)
		// Without --until-empty the stream ends when the server closes the
		// connection, which Collect reports as ConnectionFailed.
		if errors.Is(err, smfp.ConnectionFailed) && len(payloads) > 0 {
			err = nil
		}
	}
	if err != nil {
		if !cfg.quiet {
			_, _ = fmt.Fprintln(os.Stderr, red(err.Error()))
		}
		return err
	}

	format := output.DetectFormat(os.Stdout, cfg.format)
	for i, payload := range payloads {
		if !cfg.quiet {
			_, _ = fmt.Fprintf(os.Stderr, "%s\n", green(fmt.Sprintf("response %d", i)))
		}
		if rerr := renderPayload(os.Stdout, payload, format); rerr != nil {
			return rerr
		}
	}
	return nil
}
