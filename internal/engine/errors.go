package engine

import "errors"

var (
	// ErrInitialization reports a missing or invalid rendering surface or
	// question source. It halts Start.
	ErrInitialization = errors.New("engine: initialization failed")
	// ErrInvariantViolation reports geometry or scheduling that would make the
	// run unplayable.
	ErrInvariantViolation = errors.New("engine: invariant violation")
	// ErrNotReady is returned by Start outside the Ready phase.
	ErrNotReady = errors.New("engine: run is not ready to start")
)
