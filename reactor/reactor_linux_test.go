//go:build linux

package reactor_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-obuf/api"
	"github.com/momentics/hioload-obuf/buffer"
	"github.com/momentics/hioload-obuf/fake"
	"github.com/momentics/hioload-obuf/reactor"
)

func testPipe(t *testing.T) (r, w int) {
	t.Helper()
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	for _, fd := range p {
		if err := unix.SetNonblock(fd, true); err != nil {
			t.Fatalf("set nonblock: %v", err)
		}
	}
	t.Cleanup(func() {
		unix.Close(p[0])
		unix.Close(p[1])
	})
	return p[0], p[1]
}

// readAll drains rfd until want bytes arrived or the deadline passes.
func readAll(t *testing.T, rfd, want int) []byte {
	t.Helper()
	out := make([]byte, 0, want)
	buf := make([]byte, 4096)
	deadline := time.Now().Add(5 * time.Second)
	for len(out) < want {
		if time.Now().After(deadline) {
			t.Fatalf("received %d of %d bytes before deadline", len(out), want)
		}
		n, err := unix.Read(rfd, buf)
		if n > 0 {
			out = append(out, buf[:n]...)
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			time.Sleep(time.Millisecond)
			continue
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
	}
	return out
}

func TestReactorDrainsBufferWhenWritable(t *testing.T) {
	rfd, wfd := testPipe(t)
	fr, err := reactor.New()
	if err != nil {
		t.Fatalf("reactor: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- fr.Run() }()

	payload := bytes.Repeat([]byte("0123456789"), 100)
	b := buffer.New(nil)
	b.Write(payload)
	if err := fr.Watch(uintptr(wfd), b); err != nil {
		t.Fatalf("watch: %v", err)
	}

	got := readAll(t, rfd, len(payload))
	if !bytes.Equal(got, payload) {
		t.Fatal("pipe observed different bytes than were queued")
	}

	fr.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after close")
	}
	if !b.IsEmpty() {
		t.Fatal("buffer not drained")
	}
}

func TestReactorReportsFatalFlush(t *testing.T) {
	_, wfd := testPipe(t)
	fr, err := reactor.New()
	if err != nil {
		t.Fatalf("reactor: %v", err)
	}
	errs := make(chan error, 1)
	fr.OnError(func(fd uintptr, err error) {
		select {
		case errs <- err:
		default:
		}
	})
	done := make(chan error, 1)
	go func() { done <- fr.Run() }()
	defer func() {
		fr.Close()
		<-done
	}()

	b := buffer.New(nil, buffer.WithSender(fake.NewSender(-1)))
	b.Write([]byte("doomed"))
	if err := fr.Watch(uintptr(wfd), b); err != nil {
		t.Fatalf("watch: %v", err)
	}

	select {
	case err := <-errs:
		if !errors.Is(err, api.ErrTransportFailure) {
			t.Fatalf("error callback got %v, want ErrTransportFailure", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("fatal flush never reported")
	}
}

func TestReactorWatchAfterClose(t *testing.T) {
	fr, err := reactor.New()
	if err != nil {
		t.Fatalf("reactor: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- fr.Run() }()

	fr.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after close")
	}

	b := buffer.New(nil)
	if err := fr.Watch(1, b); !errors.Is(err, api.ErrReactorClosed) {
		t.Fatalf("watch after close = %v, want ErrReactorClosed", err)
	}
}
