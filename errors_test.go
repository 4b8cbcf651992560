package smfp

import (
	"errors"
	"testing"
)

func TestErrClassification(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name                           string
		e                              Err
		wantErr, wantLocal, wantRemote bool
	}{
		{"NoErr", NoErr, false, false, false},
		{"ConnectionFailed", ConnectionFailed, true, true, false},
		{"ErrInvalidArgument", ErrInvalidArgument, true, true, false},
		{"UnknownRequestCode", UnknownRequestCode, true, false, true},
		{"local range edge", Err(localBeginNumberspace), true, true, false},
		{"remote range edge", Err(remoteEndNumberspace), true, false, true},
		{"out of range", Err(1), false, false, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsError(tc.e); got != tc.wantErr {
				t.Errorf("IsError(%d) = %v, want %v", tc.e, got, tc.wantErr)
			}
			if got := IsLocal(tc.e); got != tc.wantLocal {
				t.Errorf("IsLocal(%d) = %v, want %v", tc.e, got, tc.wantLocal)
			}
			if got := IsRemote(tc.e); got != tc.wantRemote {
				t.Errorf("IsRemote(%d) = %v, want %v", tc.e, got, tc.wantRemote)
			}
		})
	}
}

func TestAsErrNoErrIsNil(t *testing.T) {
	t.Parallel()
	if err := asErr(NoErr); err != nil {
		t.Fatalf("asErr(NoErr) = %v, want nil", err)
	}
}

func TestAsErrWrapsNonZero(t *testing.T) {
	t.Parallel()
	err := asErr(ConnectionFailed)
	if err == nil {
		t.Fatal("asErr(ConnectionFailed) = nil, want non-nil")
	}
	var e Err
	if ok := errors.As(err, &e); !ok || e != ConnectionFailed {
		t.Fatalf("errors.As: got %v, ok=%v", e, ok)
	}
}

func TestErrErrorStringsDoNotPanic(t *testing.T) {
	t.Parallel()
	for _, e := range []Err{NoErr, ConnectionFailed, ErrInvalidArgument, UnknownRequestCode, Err(-150), Err(-250), Err(7)} {
		if s := e.Error(); s == "" {
			t.Errorf("Err(%d).Error() returned empty string", e)
		}
	}
}
