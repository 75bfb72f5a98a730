// File: control/counters.go
// Author: momentics <momentics@gmail.com>
//
// Runtime counters for buffer activity. The library itself stays silent;
// observability is a set of atomics the owner samples when it wants to.

package control

import "sync/atomic"

// Counters aggregates output-buffer activity. All fields are updated
// atomically; the zero value is ready for use. One Counters value may be
// shared by any number of buffers to get server-wide totals.
type Counters struct {
	PacketsQueued atomic.Int64 // queue nodes appended (chunks count individually)
	PacketsSent   atomic.Int64 // queue nodes fully transmitted and released
	BytesQueued   atomic.Int64 // payload bytes accepted, file chunks included
	BytesSent     atomic.Int64 // payload bytes the destination consumed
	Flushes       atomic.Int64 // flush passes started
	FatalErrors   atomic.Int64 // flush passes ended by a fatal transport result
	FilesStreamed atomic.Int64 // file handles accepted for chunked streaming
}

// Snapshot returns the current values keyed by name.
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"packets_queued": c.PacketsQueued.Load(),
		"packets_sent":   c.PacketsSent.Load(),
		"bytes_queued":   c.BytesQueued.Load(),
		"bytes_sent":     c.BytesSent.Load(),
		"flushes":        c.Flushes.Load(),
		"fatal_errors":   c.FatalErrors.Load(),
		"files_streamed": c.FilesStreamed.Load(),
	}
}
