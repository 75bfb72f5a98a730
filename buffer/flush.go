// File: buffer/flush.go
// Author: momentics <momentics@gmail.com>
//
// The flush engine: one non-blocking pass draining the head of the queue
// into the destination for as long as it keeps accepting data.

package buffer

import (
	"fmt"

	"github.com/momentics/hioload-obuf/api"
	"github.com/momentics/hioload-obuf/pool"
)

// Flush transmits as much of the queue's head packets as the destination
// currently accepts and returns the number of bytes consumed from the
// logical stream.
//
// The pass stops when the queue drains, when the destination saturates (a
// short or zero send), when a close marker is reached (the marker is removed
// and the CloseFunc fires after the lock is dropped), or when the transport
// reports a fatal failure. On a fatal failure Flush returns
// ErrTransportFailure with the queue left intact: retrying is possible, but
// the caller is expected to tear down and Clear.
//
// Flushing an empty buffer is a no-op returning zero. Concurrent Flush calls
// are legal and serialize on the buffer's mutex.
func (b *Buffer) Flush(fd uintptr) (int, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return 0, api.ErrBufferClosed
	}
	if b.counters != nil {
		b.counters.Flushes.Add(1)
	}

	consumed := 0
	signalClose := false
	fatal := false

	for b.head != nil {
		pk := b.head
		if pk.kind == packetClose {
			b.dropHeadLocked(pk)
			signalClose = true
			break
		}
		if pk.kind == packetFile && pk.sent == len(pk.data) {
			if !b.refillLocked(pk) {
				// stream exhausted: degrade to fully sent
				b.dropHeadLocked(pk)
				continue
			}
		}

		offered := pk.data[pk.sent:]
		n := b.sendLocked(fd, offered)
		if n < 0 {
			fatal = true
			break
		}
		if n == 0 {
			break
		}
		if n > len(offered) {
			n = len(offered)
		}
		pk.sent += n
		pk.started = true
		consumed += n
		b.pending -= n
		if b.counters != nil {
			b.counters.BytesSent.Add(int64(n))
		}
		if pk.sent == len(pk.data) && pk.kind != packetFile {
			b.dropHeadLocked(pk)
		}
		if n < len(offered) {
			// short send: the destination is near saturation
			break
		}
	}
	b.mu.Unlock()

	if fatal {
		if b.counters != nil {
			b.counters.FatalErrors.Add(1)
		}
		return consumed, fmt.Errorf("flush fd %d: %w", fd, api.ErrTransportFailure)
	}
	if signalClose && b.onClose != nil {
		b.onClose(b.owner, fd)
	}
	return consumed, nil
}

// refillLocked reads the next chunk of a file packet. It reports false once
// the stream is exhausted: end of file, a zero-length read, or a read error
// all degrade the packet to fully sent (the C-era fread contract).
func (b *Buffer) refillLocked(pk *packet) bool {
	if pk.data == nil {
		pk.data = b.chunks.Get()
	}
	chunk := pk.data[:pool.ChunkSize]
	n, _ := pk.file.Read(chunk)
	if n <= 0 {
		return false
	}
	pk.data = chunk[:n]
	pk.sent = 0
	// a file mid-stream must not be interrupted between chunks
	pk.started = true
	b.pending += n
	return true
}

// dropHeadLocked removes the head packet and releases its resources.
func (b *Buffer) dropHeadLocked(pk *packet) {
	b.head = pk.next
	if b.head == nil {
		b.tail = nil
	}
	if b.counters != nil {
		b.counters.PacketsSent.Add(1)
	}
	pk.release(b.chunks)
}
