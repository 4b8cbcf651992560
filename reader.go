package smfp

import (
	"io"
	"net"

	"github.com/rentzsch/smfp/internal/wire"
)

// readLoop is the single background reader spawned when state first becomes
// Open (spec §4.5), bound to the specific conn it was started for. It owns
// the only read path on that socket; it never holds c.mu while blocked in a
// socket read or while invoking a handler.
//
// conn is captured once, at dial time, rather than re-read from c.conn on
// each iteration: SendRequestReceiveResponses's broken-pipe path closes the
// old conn and dials a replacement out from under this goroutine, and this
// reader must keep reading (and eventually tearing down) the generation it
// was actually started for, never a newer one it happens to see in c.conn.
func (c *Connection) readLoop(conn net.Conn) {
	defer c.readerWG.Done()

	hdr := make([]byte, wire.ResponseHeaderSize)
	for {
		if _, err := io.ReadFull(conn, hdr); err != nil {
			c.teardown(conn, ConnectionFailed)
			return
		}

		length, id := wire.DecodeResponseHeader(hdr)

		c.mu.Lock()
		w, ok := c.registry.lookup(id)
		c.mu.Unlock()

		if !ok {
			c.opts.logger.Warningf("smfp: discarding response for unknown transaction id %d", id)
			if length >= 0 {
				if _, err := io.CopyN(io.Discard, conn, int64(length)); err != nil {
					c.teardown(conn, ConnectionFailed)
					return
				}
			}
			continue
		}

		var completed bool
		var handlerErr Err
		if length < 0 {
			completed, handlerErr = w.handler(Err(length), invalidReader{}, 0, w.context)
		} else {
			completed, handlerErr = w.handler(NoErr, conn, uint32(length), w.context)
		}
		if completed {
			w.complete(handlerErr)
		}
	}
}

// teardown transitions the connection to Closed and cancels every
// outstanding waiter, called when the reader hits a short read or EOF
// (spec §4.3's Open -> Closed transition on read failure).
//
// conn is the specific connection this reader was reading from. If c.conn
// has already moved on to a different connection (or nil) by the time this
// fires, this reader's generation has already been superseded — by the
// broken-pipe reconnect-and-resend path in SendRequestReceiveResponses, by
// SwitchSocket, or by Dispose — and whoever replaced it owns the
// registry/state cleanup. Acting here anyway would race: it could cancel a
// waiter that a resend on the new connection is about to fulfil.
func (c *Connection) teardown(conn net.Conn, err Err) {
	c.mu.Lock()
	if c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.state = stateClosed
	c.registry.cancelAll(err)
	c.mu.Unlock()
	_ = conn.Close()
}
