package smfp

import "io"

// Collect sends one request and accumulates every streamed response payload
// into an ordered slice of byte slices, for the common case where a caller
// just wants "all the responses" rather than a custom ResponseHandler.
//
// It adapts internal/cursor.Cursor's Next()/All() accumulation idiom from
// the teacher repo (there: batches of a RethinkDB query result; here: the
// payloads of one SMFP streaming transaction) to SMFP's opaque byte
// payloads. A response with length 0 still produces an (empty) entry in the
// returned slice.
func Collect(c *Connection, requestCode byte, arg []byte) ([][]byte, error) {
	var payloads [][]byte

	err := c.SendRequestReceiveResponses(requestCode, arg, func(err Err, r io.Reader, payloadSize uint32, _ any) (bool, Err) {
		if err != NoErr {
			return true, err
		}
		buf := make([]byte, payloadSize)
		if readErr := ReadFull(r, buf); readErr != NoErr {
			return true, readErr
		}
		payloads = append(payloads, buf)
		return false, NoErr
	}, nil)

	return payloads, err
}

// CollectUntil is like Collect but stops accumulating (reporting the
// transaction complete) as soon as isLast returns true for a given payload,
// for protocols where the last streamed response is distinguishable by its
// content (e.g. a zero-length terminator, as in spec §8 scenario S2).
func CollectUntil(c *Connection, requestCode byte, arg []byte, isLast func(payload []byte) bool) ([][]byte, error) {
	var payloads [][]byte

	err := c.SendRequestReceiveResponses(requestCode, arg, func(err Err, r io.Reader, payloadSize uint32, _ any) (bool, Err) {
		if err != NoErr {
			return true, err
		}
		buf := make([]byte, payloadSize)
		if readErr := ReadFull(r, buf); readErr != NoErr {
			return true, readErr
		}
		payloads = append(payloads, buf)
		return isLast(buf), NoErr
	}, nil)

	return payloads, err
}
