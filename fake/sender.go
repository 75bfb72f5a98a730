// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for the transport contract.

package fake

import "sync"

// Sender is a scripted api.Sender for tests. Each Send call consumes the
// next accept budget from the script: a positive budget caps how many bytes
// the call accepts, zero simulates would-block, a negative value simulates a
// fatal transport failure. With the script exhausted (or absent) every call
// accepts everything offered.
type Sender struct {
	mu      sync.Mutex
	script  []int
	calls   int
	sent    []byte
	offers  []int
	lastFd  uintptr
	lastOwn any
}

// NewSender creates a fake sender with the given accept script.
func NewSender(script ...int) *Sender {
	return &Sender{script: script}
}

// Send implements api.Sender.
func (s *Sender) Send(owner any, fd uintptr, p []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastFd = fd
	s.lastOwn = owner
	s.offers = append(s.offers, len(p))

	budget := len(p)
	if len(s.script) > 0 {
		budget = s.script[0]
		s.script = s.script[1:]
	}
	if budget < 0 {
		return -1
	}
	if budget > len(p) {
		budget = len(p)
	}
	s.sent = append(s.sent, p[:budget]...)
	return budget
}

// Sent returns a copy of every byte accepted so far, in order.
func (s *Sender) Sent() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.sent))
	copy(out, s.sent)
	return out
}

// Calls returns how many times Send was invoked.
func (s *Sender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Offers returns the offered length of each Send call, in order.
func (s *Sender) Offers() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.offers))
	copy(out, s.offers)
	return out
}

// LastOwner returns the owner handle seen by the most recent Send.
func (s *Sender) LastOwner() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOwn
}

// LastFd returns the descriptor seen by the most recent Send.
func (s *Sender) LastFd() uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFd
}
