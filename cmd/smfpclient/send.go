package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rentzsch/smfp"
	"github.com/rentzsch/smfp/internal/output"
)

func newSendCmd(cfg *rootConfig) *cobra.Command {
	var requestCode uint8
	cmd := &cobra.Command{
		Use:   "send [argument]",
		Short: "Send one request and print its (first) response",
		Long: "Send sends a single request and prints the single response it expects back, " +
			"the same round trip SMFPClient.c's example client demonstrates with request code 0x42 " +
			"(echo the argument back uppercased).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg, err := readArgument(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runSend(cfg, requestCode, arg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Uint8Var(&requestCode, "code", 0x42, "request code byte")
	return cmd
}

func runSend(cfg *rootConfig, requestCode byte, arg []byte, w io.Writer) error {
	c := connectionFor(cfg)
	defer func() { _ = c.Dispose() }()

	var response []byte
	var responseErr error
	err := c.SendRequestReceiveResponses(requestCode, arg, func(e smfp.Err, r io.Reader, size uint32, _ any) (bool, smfp.Err) {
		if e != smfp.NoErr {
			return true, e
		}
		buf := make([]byte, size)
		if rerr := smfp.ReadFull(r, buf); rerr != smfp.NoErr {
			return true, rerr
		}
		response = buf
		return true, smfp.NoErr
	}, nil)
	if err != nil {
		responseErr = err
	}
	if responseErr != nil {
		if !cfg.quiet {
			_, _ = fmt.Fprintln(os.Stderr, red(responseErr.Error()))
		}
		return responseErr
	}

	if !cfg.quiet {
		_, _ = fmt.Fprintln(os.Stderr, green("ok"))
	}
	return renderPayload(w, response, output.DetectFormat(os.Stdout, cfg.format))
}

// readArgument returns args[0] if present, else the full content of r.
func readArgument(args []string, r io.Reader) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading argument from stdin: %w", err)
	}
	return data, nil
}

func renderPayload(w io.Writer, payload []byte, format string) error {
	switch format {
	case "raw":
		_, err := w.Write(payload)
		return err
	case "hex":
		_, err := fmt.Fprint(w, hex.Dump(payload))
		return err
	default:
		return errors.New("smfpclient: unknown output format " + format)
	}
}
