// File: api/sender.go
// Author: momentics <momentics@gmail.com>
//
// Transport hook contract for the output buffer. A Sender moves bytes toward
// a destination descriptor; the flush engine interprets its result to drive
// the partial-send/resume cycle. Installing a Sender lets the same queue
// machinery serve raw sockets, TLS wrappers, or any other byte-stream
// transport.

package api

// Sender is the pluggable transmission primitive used during flush.
//
// Send attempts to transmit p to the destination descriptor fd. The owner
// value is the opaque handle the buffer was created with, passed through
// untouched so a hook can reach its server or connection context.
//
// Result contract:
//   - n > 0: the n leading bytes of p were consumed and must not be offered
//     again. n may be smaller than len(p) when the destination saturates.
//   - n == 0: the destination is not accepting data right now (would-block);
//     not an error, retry on a later flush.
//   - n < 0: fatal transport failure; the connection is unusable.
//
// Send is invoked while the buffer's lock is held and must not block beyond
// a bounded, non-blocking attempt.
type Sender interface {
	Send(owner any, fd uintptr, p []byte) int
}

// SenderFunc adapts a plain function to the Sender interface.
type SenderFunc func(owner any, fd uintptr, p []byte) int

// Send implements Sender.
func (f SenderFunc) Send(owner any, fd uintptr, p []byte) int {
	return f(owner, fd, p)
}

// CloseFunc is the side channel for close-when-done signaling. The flush
// engine invokes it once every packet queued ahead of a close marker has
// been fully transmitted. It is never called with the buffer's lock held;
// closing the descriptor and clearing the buffer are the callee's decisions.
type CloseFunc func(owner any, fd uintptr)
