package smfp

import (
	"context"
	"errors"
	"net"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/sagernet/sing/common/bufio"

	"github.com/rentzsch/smfp/internal/wire"
)

// state is the three-value connection state machine from spec §4.3.
type state int

const (
	stateClosed state = iota
	stateOpening
	stateOpen
)

func (s state) String() string {
	switch s {
	case stateClosed:
		return "closed"
	case stateOpening:
		return "opening"
	case stateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Connection is the client side of one SMFP socket: a lazily-opened,
// transparently-reconnecting, multiplexed request/response channel. The
// zero value is not usable; construct with Create.
//
// A single mu guards socketPath, conn, state, and the registry. Per-waiter
// state is guarded by the waiter's own mutex (see registry.go); the
// reader goroutine never holds mu while reading the socket or invoking a
// handler, and a caller never holds mu while blocked in wait().
//
// writeMu is separate from mu and serializes the actual bytes going out on
// the wire: spec §3 invariant (c) requires that only one component ever
// writes header-by-header, so two callers racing to send requests must not
// interleave their frames even though both may pass through ensureOpen and
// registry.register concurrently. This mirrors internal/conn/conn.go's
// separate writeMu guarding wire.WriteQuery.
type Connection struct {
	opts options

	mu         sync.Mutex
	socketPath string
	conn       net.Conn
	state      state
	registry   registry
	readerWG   sync.WaitGroup

	writeMu sync.Mutex
}

// Create allocates a Connection bound to socketPath. It does not connect —
// the first SendRequestReceiveResponses call does, lazily, the same
// discipline internal/connmgr.ConnManager.Get uses for its single cached
// connection, generalized here to the full reconnecting state machine.
func Create(socketPath string, opts ...Option) *Connection {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return &Connection{
		opts:       o,
		socketPath: socketPath,
		registry:   newRegistry(),
	}
}

// SwitchSocket shuts down and closes the current socket (if any) and
// replaces the target path. The next SendRequestReceiveResponses call
// reconnects to the new path. Any transaction still waiting on the old
// socket is cancelled with ConnectionFailed — the new path has no memory
// of it.
func (c *Connection) SwitchSocket(newPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.state = stateClosed
	c.socketPath = newPath
	c.registry.cancelAll(ConnectionFailed)
	return nil
}

// Dispose closes the socket and joins the reader goroutine before
// returning. (The reference C client's SMFPConnectionDispose left both of
// these as TODOs; this is open question #4's resolution.) Any transactions
// still waiting when Dispose is called are cancelled with ConnectionFailed.
func (c *Connection) Dispose() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.state = stateClosed
	c.registry.cancelAll(ConnectionFailed)
	c.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	c.readerWG.Wait()
	return err
}

// SendRequestReceiveResponses sends one request and blocks until handler
// reports the transaction complete (or the connection fails). It implements
// spec §4.4 end to end: register a waiter, ensure the connection is open
// (reconnecting if necessary), write the framed request as a single
// vectorised write, and wait for completion.
//
// On a broken-pipe write failure, this reconnects and resends the same
// request once the connection is back up. The server has no memory of the
// original attempt after a reconnect, so this resend is only safe when the
// request is idempotent — callers issuing non-idempotent requests must
// account for this themselves (spec §9 open question #5).
func (c *Connection) SendRequestReceiveResponses(requestCode byte, arg []byte, handler ResponseHandler, context any) error {
	if len(arg) > wire.MaxArgSize {
		return asErr(ErrInvalidArgument)
	}

	c.mu.Lock()
	w := c.registry.register(handler, context)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.registry.remove(w)
		c.mu.Unlock()
	}()

	for {
		if err := c.ensureOpen(); err != NoErr {
			return asErr(err)
		}
		if err := c.writeRequest(requestCode, w.id, arg); err != nil {
			if isBrokenPipe(err) {
				c.mu.Lock()
				if c.conn != nil {
					_ = c.conn.Close()
					c.conn = nil
				}
				c.state = stateClosed
				c.mu.Unlock()
				continue
			}
			return asErr(ConnectionFailed)
		}
		break
	}

	return asErr(w.wait())
}

// ensureOpen performs the Closed -> Opening -> Open transition, retrying on
// ECONNREFUSED/ENOENT-class dial errors per spec §4.3's fixed retry budget.
// The connection lock is held for the whole attempt, including the retry
// delays, mirroring the reference client (a single mutex serializes every
// concurrent first-caller onto one connect attempt).
func (c *Connection) ensureOpen() Err {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateOpen {
		return NoErr
	}

	// At least one dial attempt always happens, even when connectRetries is
	// 0 or negative: "no retries" means "don't retry after the first
	// failure", not "never dial".
	attempts := c.opts.connectRetries
	if attempts < 1 {
		attempts = 1
	}

	c.state = stateOpening
	for attempt := 0; attempt < attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), c.opts.dialTimeout)
		conn, err := c.opts.dialer(ctx, c.socketPath)
		cancel()
		if err == nil {
			c.conn = conn
			c.state = stateOpen
			c.readerWG.Add(1)
			go c.readLoop(conn)
			return NoErr
		}
		if isRetryableDialErr(err) {
			c.opts.logger.Warningf("smfp: %s unavailable, retrying in %s (attempts left: %d)",
				c.socketPath, c.opts.retryDelay, attempts-attempt-1)
			time.Sleep(c.opts.retryDelay)
			continue
		}
		c.state = stateClosed
		return ConnectionFailed
	}
	c.state = stateClosed
	return ConnectionFailed
}

// writeRequest serializes and writes one request frame as a single
// vectorised write, matching SagerNet-smux's sendLoop use of
// sing/common/bufio's vectorised writer, with the same fallback to a single
// Write of a joined buffer when the underlying conn doesn't support it.
//
// writeMu serializes the write itself across concurrent callers sharing this
// Connection: two requests racing past ensureOpen must still land on the
// wire as two complete, non-interleaved frames.
func (c *Connection) writeRequest(requestCode byte, transactionID uint32, arg []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.New("smfp: no connection")
	}

	header := make([]byte, wire.RequestHeaderSize)
	wire.EncodeRequestHeader(header, requestCode, transactionID, len(arg))

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if bw, ok := bufio.CreateVectorisedWriter(conn); ok {
		_, err := bufio.WriteVectorised(bw, [][]byte{header, arg})
		return err
	}

	buf := make([]byte, 0, len(header)+len(arg))
	buf = append(buf, header...)
	buf = append(buf, arg...)
	_, err := conn.Write(buf)
	return err
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, net.ErrClosed)
}

func isRetryableDialErr(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ENOENT) || os.IsNotExist(err)
}
