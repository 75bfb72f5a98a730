//go:build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import "github.com/momentics/hioload-obuf/api"

// New returns an error on platforms without an epoll-backed reactor; drive
// Buffer.Flush from your own event loop instead.
func New() (FlushReactor, error) {
	return nil, api.ErrNotSupported
}
