package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/rentzsch/smfp/internal/wire"
)

// listenUnix starts a fake SMFP server on a socket under t.TempDir() and
// returns the path plus the accepted connection once a client dials in.
func listenUnix(t *testing.T) (path string, accept func() net.Conn) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "smfp.sock")
	l, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	t.Cleanup(func() { _ = os.Remove(path) })

	connCh := make(chan net.Conn, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		connCh <- conn
	}()
	return path, func() net.Conn { return <-connCh }
}

func TestRunSendUppercaseEcho(t *testing.T) {
	t.Parallel()
	path, accept := listenUnix(t)
	cfg := &rootConfig{socketPath: path, connectRetries: 1, quiet: true, format: "raw"}

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
		arg := make([]byte, argSize)
		if _, err := readFull(server, arg); err != nil {
			t.Errorf("server read arg: %v", err)
			return
		}
		resp := bytes.ToUpper(arg)
		respHdr := make([]byte, wire.ResponseHeaderSize)
		wire.EncodeResponseHeader(respHdr, int32(len(resp)), id)
		_, _ = server.Write(respHdr)
		_, _ = server.Write(resp)
	}()

	var out bytes.Buffer
	if err := runSend(cfg, 0x42, []byte("hello smfp"), &out); err != nil {
		t.Fatalf("runSend: %v", err)
	}
	<-serverDone

	if got := out.String(); got != "HELLO SMFP" {
		t.Errorf("got %q, want %q", got, "HELLO SMFP")
	}
}

func readFull(c net.Conn, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := c.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func TestReadArgumentFromArgs(t *testing.T) {
	t.Parallel()
	got, err := readArgument([]string{"hello"}, bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestReadArgumentFromStdin(t *testing.T) {
	t.Parallel()
	got, err := readArgument(nil, bytes.NewReader([]byte("from stdin")))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "from stdin" {
		t.Errorf("got %q, want %q", got, "from stdin")
	}
}

func TestRenderPayloadRaw(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := renderPayload(&buf, []byte("abc"), "raw"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "abc" {
		t.Errorf("got %q, want %q", buf.String(), "abc")
	}
}

func TestRenderPayloadUnknownFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := renderPayload(&buf, []byte("abc"), "nonsense"); err == nil {
		t.Fatal("expected an error for unknown format, got nil")
	}
}
