// File: buffer/buffer.go
// Author: momentics <momentics@gmail.com>
//
// Buffer lifecycle, enqueue operations and the single-mutex ownership model.

package buffer

import (
	"io"
	"sync"

	"github.com/momentics/hioload-obuf/api"
	"github.com/momentics/hioload-obuf/control"
	"github.com/momentics/hioload-obuf/pool"
	"github.com/momentics/hioload-obuf/transport"
)

// Buffer is an asynchronous output queue bound to one destination. Enqueue
// operations may run concurrently from any goroutine; Flush is expected to
// be driven by the destination's event loop. One mutex guards the queue,
// the transport hook and the byte accounting; nothing else synchronizes.
type Buffer struct {
	mu      sync.Mutex
	head    *packet
	tail    *packet
	pending int // unsent bytes across buffered data, see Pending

	owner   any
	sender  api.Sender // nil selects transport.Default
	onClose api.CloseFunc

	chunks   *pool.ChunkPool
	counters *control.Counters

	closed bool
}

// Option customizes buffer construction.
type Option func(*Buffer)

// WithSender installs a transport hook at creation time. Equivalent to
// calling SetSender before the first enqueue.
func WithSender(s api.Sender) Option {
	return func(b *Buffer) { b.sender = s }
}

// WithCloseFunc installs the close-when-done side channel.
func WithCloseFunc(fn api.CloseFunc) Option {
	return func(b *Buffer) { b.onClose = fn }
}

// WithCounters attaches activity counters, possibly shared across buffers.
func WithCounters(c *control.Counters) Option {
	return func(b *Buffer) { b.counters = c }
}

// WithChunkPool overrides the process-wide chunk pool.
func WithChunkPool(cp *pool.ChunkPool) Option {
	return func(b *Buffer) { b.chunks = cp }
}

// New creates a buffer for one connection. The owner handle is opaque to the
// buffer and is only passed through to the transport hook and CloseFunc.
func New(owner any, opts ...Option) *Buffer {
	b := &Buffer{
		owner:  owner,
		chunks: pool.Default,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Write copies p and appends the copy at the tail. Copies larger than
// pool.ChunkSize split into a chain of chunk packets that is scheduled as
// one non-splittable write group. The caller keeps ownership of p.
//
// The return value is the buffer's pending byte count after the append.
func (b *Buffer) Write(p []byte) int {
	return b.enqueueCopy(p, false)
}

// WriteNext is Write with next-in-line placement: the copy is sent as soon
// as the packet currently in flight completes, but never interleaved with
// that packet's bytes. With an empty queue, or a head that has not started
// sending, the copy becomes the new head.
func (b *Buffer) WriteNext(p []byte) int {
	return b.enqueueCopy(p, true)
}

// WriteMove appends p at the tail, taking ownership: the caller must not
// read or mutate p after the call. A nil p enqueues a close-when-done
// marker instead, regardless of length.
//
// The return value is the buffer's pending byte count after the append.
func (b *Buffer) WriteMove(p []byte) int {
	return b.enqueueMove(p, false)
}

// WriteMoveNext is WriteMove with next-in-line placement. A nil p still
// enqueues a close marker at the tail: a close request always waits for
// everything already queued.
func (b *Buffer) WriteMoveNext(p []byte) int {
	return b.enqueueMove(p, true)
}

// SendFile appends a file-stream packet that takes ownership of r. The
// stream is read on demand in pool.ChunkSize pieces during flush, so a large
// file is never materialized in memory; the handle is closed once the stream
// is exhausted or the buffer is cleared.
func (b *Buffer) SendFile(r io.ReadCloser) error {
	if r == nil {
		return api.ErrInvalidArgument
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		r.Close()
		return api.ErrBufferClosed
	}
	pk := &packet{kind: packetFile, file: r}
	b.pushTailLocked(pk, pk)
	if b.counters != nil {
		b.counters.PacketsQueued.Add(1)
		b.counters.FilesStreamed.Add(1)
	}
	b.mu.Unlock()
	return nil
}

// CloseWhenDone appends a close marker at the tail: once every packet queued
// before it has been fully sent, the next flush signals the CloseFunc. Next
// placement is deliberately not offered for markers.
func (b *Buffer) CloseWhenDone() {
	b.mu.Lock()
	if !b.closed {
		pk := &packet{kind: packetClose}
		b.pushTailLocked(pk, pk)
		if b.counters != nil {
			b.counters.PacketsQueued.Add(1)
		}
	}
	b.mu.Unlock()
}

// SetSender installs or replaces the transport hook. A nil Sender restores
// the default descriptor write primitive. The hook's validity is tied to one
// generation of buffered data: Clear resets it.
func (b *Buffer) SetSender(s api.Sender) {
	b.mu.Lock()
	b.sender = s
	b.mu.Unlock()
}

// Clear drops every queued packet, returning pooled chunks and closing open
// file handles, resets the pending count to zero and uninstalls the
// transport hook. It is always safe, immediate and idempotent.
func (b *Buffer) Clear() {
	b.mu.Lock()
	head := b.head
	b.head = nil
	b.tail = nil
	b.pending = 0
	b.sender = nil
	b.mu.Unlock()

	// Resource release happens outside the lock; the chain is detached and
	// exclusively ours at this point.
	for pk := head; pk != nil; {
		next := pk.next
		pk.release(b.chunks)
		pk = next
	}
}

// Close clears the buffer and marks it closed: subsequent enqueues are
// no-ops and Flush reports ErrBufferClosed. Close is how a connection
// teardown releases everything the buffer owns.
func (b *Buffer) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.Clear()
	return nil
}

// IsEmpty reports whether the queue holds no packets. A close marker counts
// as non-empty until a flush reaches it.
func (b *Buffer) IsEmpty() bool {
	b.mu.Lock()
	empty := b.head == nil
	b.mu.Unlock()
	return empty
}

// Pending returns the unsent byte count across buffered data: every data
// packet's remainder plus the remainder of a file packet's currently
// buffered chunk. Bytes a file has not yet been read for are unknown and
// therefore uncounted.
func (b *Buffer) Pending() int {
	b.mu.Lock()
	n := b.pending
	b.mu.Unlock()
	return n
}

func (b *Buffer) enqueueCopy(p []byte, next bool) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || len(p) == 0 {
		return b.pending
	}
	var first, last *packet
	count := 0
	for off := 0; off < len(p); off += pool.ChunkSize {
		end := off + pool.ChunkSize
		if end > len(p) {
			end = len(p)
		}
		chunk := b.chunks.Get()
		n := copy(chunk, p[off:end])
		pk := &packet{kind: packetCopied, data: chunk[:n], cont: first != nil}
		if first == nil {
			first = pk
		} else {
			last.next = pk
		}
		last = pk
		count++
	}
	if next {
		b.insertNextLocked(first, last)
	} else {
		b.pushTailLocked(first, last)
	}
	b.pending += len(p)
	if b.counters != nil {
		b.counters.PacketsQueued.Add(int64(count))
		b.counters.BytesQueued.Add(int64(len(p)))
	}
	return b.pending
}

func (b *Buffer) enqueueMove(p []byte, next bool) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return b.pending
	}
	if p == nil {
		pk := &packet{kind: packetClose}
		b.pushTailLocked(pk, pk)
		if b.counters != nil {
			b.counters.PacketsQueued.Add(1)
		}
		return b.pending
	}
	if len(p) == 0 {
		return b.pending
	}
	pk := &packet{kind: packetMoved, data: p}
	if next {
		b.insertNextLocked(pk, pk)
	} else {
		b.pushTailLocked(pk, pk)
	}
	b.pending += len(p)
	if b.counters != nil {
		b.counters.PacketsQueued.Add(1)
		b.counters.BytesQueued.Add(int64(len(p)))
	}
	return b.pending
}

// pushTailLocked appends the chain first..last at the tail.
func (b *Buffer) pushTailLocked(first, last *packet) {
	if b.tail == nil {
		b.head = first
	} else {
		b.tail.next = first
	}
	b.tail = last
}

// insertNextLocked places the chain first..last next in line: after the head
// and its continuation chunks when the head has started sending, otherwise
// at the very front. An in-flight packet's byte stream is never split.
func (b *Buffer) insertNextLocked(first, last *packet) {
	if b.head == nil {
		b.head = first
		b.tail = last
		return
	}
	// a continuation head means earlier chunks of its group already went
	// out; inserting in front of it would split the group mid-stream
	if !b.head.started && !b.head.cont {
		last.next = b.head
		b.head = first
		return
	}
	pos := b.head
	for pos.next != nil && pos.next.cont {
		pos = pos.next
	}
	last.next = pos.next
	pos.next = first
	if pos == b.tail {
		b.tail = last
	}
}

// sendLocked transmits through the installed hook, or the platform default
// write primitive when none is installed.
func (b *Buffer) sendLocked(fd uintptr, p []byte) int {
	if b.sender != nil {
		return b.sender.Send(b.owner, fd, p)
	}
	return transport.Default.Send(b.owner, fd, p)
}
