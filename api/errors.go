// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values used across the library.

package api

import "errors"

var (
	// ErrTransportFailure reports a fatal Sender result during flush. The
	// queue is left intact so the caller can retry or tear down and Clear.
	ErrTransportFailure = errors.New("transport failure")

	// ErrBufferClosed is returned by operations on a closed buffer.
	ErrBufferClosed = errors.New("buffer is closed")

	// ErrReactorClosed is returned when watching through a closed reactor.
	ErrReactorClosed = errors.New("reactor is closed")

	// ErrNotSupported marks functionality missing on this platform.
	ErrNotSupported = errors.New("operation not supported")

	// ErrInvalidArgument marks a malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")
)
