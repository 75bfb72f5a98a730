// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral flush reactor surface.

package reactor

import "github.com/momentics/hioload-obuf/buffer"

// ErrorFunc receives fatal flush failures. The descriptor has already been
// removed from the watch set when it fires; tearing down the connection and
// clearing its buffer remain the callee's job.
type ErrorFunc func(fd uintptr, err error)

// FlushReactor drives Buffer.Flush from writability events.
type FlushReactor interface {
	// Watch adds a descriptor/buffer pair to the watch set. The buffer is
	// flushed whenever fd reports writable until it drains empty or a fatal
	// error removes it. A buffer that drained leaves the watch set; Watch
	// again after the next enqueue.
	Watch(fd uintptr, b *buffer.Buffer) error

	// OnError installs the fatal flush callback. Install before Run.
	OnError(fn ErrorFunc)

	// Run services events until Close, then releases the poller. It is
	// meant to own one goroutine.
	Run() error

	// Close stops the loop. Safe to call more than once.
	Close() error
}
