// Package wire encodes and decodes SMFP frame headers.
//
// A request frame is a 4-byte big-endian length, a 1-byte request code, a
// 4-byte big-endian transaction id, and the opaque argument. The length
// excludes itself: it covers the request code, the transaction id, and the
// argument. A response frame is a 4-byte big-endian *signed* length and a
// 4-byte big-endian transaction id; a negative length carries a remote error
// code in place of a payload.
package wire

import "encoding/binary"

// RequestHeaderSize is the fixed portion of a request frame: length + code + id.
const RequestHeaderSize = 4 + 1 + 4

// ResponseHeaderSize is the fixed size of a response frame header.
const ResponseHeaderSize = 4 + 4

// MaxArgSize is the largest request argument the length field can encode.
// The length field carries 1 (code) + 4 (id) + len(arg) in a uint32, so
// len(arg) is bounded by the uint32 range minus those 5 bytes.
const MaxArgSize = (1<<32 - 1) - 5

// EncodeRequestHeader writes a request frame's fixed header into buf, which
// must be at least RequestHeaderSize bytes.
func EncodeRequestHeader(buf []byte, requestCode byte, transactionID uint32, argSize int) {
	binary.BigEndian.PutUint32(buf[0:4], uint32(1+4+argSize))
	buf[4] = requestCode
	binary.BigEndian.PutUint32(buf[5:9], transactionID)
}

// DecodeResponseHeader parses a response frame header. length is sign-extended
// from the wire's 32-bit signed value: a negative length is itself a remote
// error code, and no payload follows.
func DecodeResponseHeader(buf []byte) (length int32, transactionID uint32) {
	length = int32(binary.BigEndian.Uint32(buf[0:4]))
	transactionID = binary.BigEndian.Uint32(buf[4:8])
	return length, transactionID
}

// DecodeRequestHeader parses a request frame's fixed header. argSize is the
// length of the argument that follows in the stream.
func DecodeRequestHeader(buf []byte) (requestCode byte, transactionID uint32, argSize int) {
	length := binary.BigEndian.Uint32(buf[0:4])
	requestCode = buf[4]
	transactionID = binary.BigEndian.Uint32(buf[5:9])
	argSize = int(length) - 1 - 4
	return requestCode, transactionID, argSize
}

// EncodeResponseHeader writes a response frame header into buf, which must be
// at least ResponseHeaderSize bytes. Pass a negative length to signal a
// remote error instead of a payload.
func EncodeResponseHeader(buf []byte, length int32, transactionID uint32) {
	binary.BigEndian.PutUint32(buf[0:4], uint32(length))
	binary.BigEndian.PutUint32(buf[4:8], transactionID)
}
