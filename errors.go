package smfp

import "fmt"

// Err is a tagged integer in SMFP's stable error space: zero means success,
// negative values in [-199, -100] are local (client/transport) faults, and
// negative values in [-299, -200] are remote (server-reported) faults carried
// in-band as a response frame's signed length.
//
// Err implements the error interface so it can be returned (and matched via
// errors.As) like any other Go error.
type Err int32

const (
	// NoErr is the zero value: no error.
	NoErr Err = 0

	// ConnectionFailed covers dial failures, broken pipes, short reads, and
	// EOF on the reader — anything that leaves the connection unusable.
	ConnectionFailed Err = -100

	// ErrInvalidArgument is returned by SendRequestReceiveResponses when the
	// request argument exceeds wire.MaxArgSize; it never reaches the wire.
	ErrInvalidArgument Err = -101

	localBeginNumberspace = -199
	localEndNumberspace   = -100

	// UnknownRequestCode is the one remote error code this client knows by
	// name; other negative response lengths are still valid Err values, just
	// without a friendlier String().
	UnknownRequestCode Err = -200

	remoteBeginNumberspace = -299
	remoteEndNumberspace   = -200
)

// IsError reports whether e falls in either the local or remote error range.
func IsError(e Err) bool {
	return e <= localEndNumberspace && e >= remoteBeginNumberspace
}

// IsLocal reports whether e is a local (client/transport) error.
func IsLocal(e Err) bool {
	return e <= localEndNumberspace && e >= localBeginNumberspace
}

// IsRemote reports whether e is a remote (server-reported) error.
func IsRemote(e Err) bool {
	return e <= remoteEndNumberspace && e >= remoteBeginNumberspace
}

func (e Err) Error() string {
	switch e {
	case NoErr:
		return "smfp: no error"
	case ConnectionFailed:
		return "smfp: connection failed"
	case ErrInvalidArgument:
		return "smfp: invalid argument"
	case UnknownRequestCode:
		return "smfp: unknown request code"
	default:
		if IsLocal(e) {
			return fmt.Sprintf("smfp: local error %d", int32(e))
		}
		if IsRemote(e) {
			return fmt.Sprintf("smfp: remote error %d", int32(e))
		}
		return fmt.Sprintf("smfp: out-of-range error %d", int32(e))
	}
}

// asErr returns nil for NoErr, and e otherwise — the bridge between the
// internal Err sentinel and the plain `error` the public API returns.
func asErr(e Err) error {
	if e == NoErr {
		return nil
	}
	return e
}
