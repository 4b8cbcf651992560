// Package smfp is a client for the Simplest Multiplexed Framing Protocol: a
// length-prefixed request/response protocol over a reliable byte stream
// (a Unix-domain socket in the reference deployment) that multiplexes many
// concurrent in-flight transactions over one connection.
//
// A Connection is created lazily with Create and does not dial until the
// first SendRequestReceiveResponses call. Concurrent callers may share one
// Connection: each call is tagged with its own transaction id, and a single
// background goroutine demultiplexes responses back to the caller that sent
// the matching request, invoking that caller's ResponseHandler once per
// response frame until the handler reports the transaction complete.
package smfp
