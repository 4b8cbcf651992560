package main

import (
	"testing"

	"github.com/rentzsch/smfp/internal/wire"
)

func TestRunStreamUntilEmpty(t *testing.T) {
	t.Parallel()
	path, accept := listenUnix(t)
	cfg := &rootConfig{socketPath: path, connectRetries: 1, quiet: true, format: "raw"}

	chunks := [][]byte{[]byte("a"), []byte("b"), []byte("")}
	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		server := accept()
		hdr := make([]byte, wire.RequestHeaderSize)
		if _, err := readFull(server, hdr); err != nil {
			t.Errorf("server read header: %v", err)
			return
		}
		_, id, argSize := wire.DecodeRequestHeader(hdr)
		if argSize > 0 {
			arg := make([]byte, argSize)
			if _, err := readFull(server, arg); err != nil {
				t.Errorf("server read arg: %v", err)
				return
			}
		}
		for _, chunk := range chunks {
			respHdr := make([]byte, wire.ResponseHeaderSize)
			wire.EncodeResponseHeader(respHdr, int32(len(chunk)), id)
			_, _ = server.Write(respHdr)
			if len(chunk) > 0 {
				_, _ = server.Write(chunk)
			}
		}
	}()

	if err := runStream(cfg, 0x42, nil, true); err != nil {
		t.Fatalf("runStream: %v", err)
	}
	<-serverDone
}
