//go:build !unix

// File: transport/fdsender_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub write primitive for unsupported platforms.

package transport

// FDSender is unavailable on this platform; every send reports a fatal
// result. Install a NetConnSender or a custom hook instead.
type FDSender struct{}

// Send implements api.Sender.
func (FDSender) Send(_ any, _ uintptr, _ []byte) int {
	return -1
}
