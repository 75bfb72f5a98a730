//go:build unix

// File: transport/fdsender_unix.go
// Author: momentics <momentics@gmail.com>
//
// Unix descriptor write primitive with would-block/interrupt mapping.

package transport

import "golang.org/x/sys/unix"

// FDSender writes directly to a file descriptor. The descriptor is expected
// to be in non-blocking mode; EAGAIN, EWOULDBLOCK and EINTR are reported as
// zero per the Sender contract, every other errno is fatal.
type FDSender struct{}

// Send implements api.Sender. The owner handle is unused.
func (FDSender) Send(_ any, fd uintptr, p []byte) int {
	n, err := unix.Write(int(fd), p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
			return 0
		}
		return -1
	}
	return n
}
