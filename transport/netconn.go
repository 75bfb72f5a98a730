// File: transport/netconn.go
// Author: momentics <momentics@gmail.com>
//
// net.Conn-backed Sender for destinations that are not addressed by a raw
// descriptor (pipes created with net.Pipe, wrapped conns, TLS).

package transport

import (
	"errors"
	"net"
)

// NetConnSender adapts a net.Conn to the Sender contract. The descriptor
// argument is ignored; the conn itself is the destination. Callers that need
// non-blocking behavior should arm a write deadline: a timeout maps to the
// would-block result, any other write error is fatal.
type NetConnSender struct {
	Conn net.Conn
}

// Send implements api.Sender.
func (s NetConnSender) Send(_ any, _ uintptr, p []byte) int {
	n, err := s.Conn.Write(p)
	if n > 0 {
		return n
	}
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return 0
		}
		return -1
	}
	return 0
}
