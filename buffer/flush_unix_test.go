//go:build unix

package buffer_test

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-obuf/api"
	"github.com/momentics/hioload-obuf/buffer"
	"github.com/momentics/hioload-obuf/fake"
)

// Without an installed hook the buffer writes straight to the descriptor.
func TestFlushDefaultWritePrimitive(t *testing.T) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer unix.Close(p[0])
	defer unix.Close(p[1])
	if err := unix.SetNonblock(p[1], true); err != nil {
		t.Fatalf("set nonblock: %v", err)
	}

	b := buffer.New(nil)
	b.Write([]byte("ping"))
	n, err := b.Flush(uintptr(p[1]))
	if err != nil || n != 4 {
		t.Fatalf("flush = (%d, %v), want (4, nil)", n, err)
	}
	got := make([]byte, 16)
	rn, err := unix.Read(p[0], got)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got[:rn], []byte("ping")) {
		t.Fatalf("pipe observed %q", got[:rn])
	}
}

// Clear uninstalls the transport hook; the next generation of data goes
// through the default write primitive again.
func TestClearResetsHook(t *testing.T) {
	s := fake.NewSender()
	b := buffer.New(nil, buffer.WithSender(s))
	b.Write([]byte("old generation"))
	b.Clear()

	b.Write([]byte("new generation"))
	// an invalid descriptor makes the default primitive fail fatally,
	// proving the fake hook is out of the path
	_, err := b.Flush(uintptr(1 << 20))
	if !errors.Is(err, api.ErrTransportFailure) {
		t.Fatalf("flush = %v, want ErrTransportFailure via default primitive", err)
	}
	if s.Calls() != 0 {
		t.Fatal("cleared hook still receiving sends")
	}
}
