//go:build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based flush reactor. Registrations travel from producer
// goroutines to the loop through a mutex-guarded FIFO, with an eventfd
// waking the poller.

package reactor

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/eapache/queue"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-obuf/api"
	"github.com/momentics/hioload-obuf/buffer"
)

type watchReq struct {
	fd  uintptr
	buf *buffer.Buffer
}

type linuxReactor struct {
	epfd   int
	wakefd int

	mu      sync.Mutex
	pending *queue.Queue // watchReq FIFO, drained on the loop goroutine
	closed  bool
	onError ErrorFunc

	// loop-owned, touched only from Run
	watched map[uintptr]*buffer.Buffer
}

// New constructs an epoll-backed flush reactor.
func New() (FlushReactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	wakefd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		unix.Close(epfd)
		return nil, fmt.Errorf("eventfd: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakefd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakefd, &ev); err != nil {
		unix.Close(wakefd)
		unix.Close(epfd)
		return nil, fmt.Errorf("epoll ctl add wake: %w", err)
	}
	return &linuxReactor{
		epfd:    epfd,
		wakefd:  wakefd,
		pending: queue.New(),
		watched: make(map[uintptr]*buffer.Buffer),
	}, nil
}

// Watch implements FlushReactor.
func (r *linuxReactor) Watch(fd uintptr, b *buffer.Buffer) error {
	if b == nil {
		return api.ErrInvalidArgument
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return api.ErrReactorClosed
	}
	r.pending.Add(watchReq{fd: fd, buf: b})
	r.mu.Unlock()
	r.wake()
	return nil
}

// OnError implements FlushReactor.
func (r *linuxReactor) OnError(fn ErrorFunc) {
	r.mu.Lock()
	r.onError = fn
	r.mu.Unlock()
}

// Close implements FlushReactor. The poller descriptors are released by Run
// on its way out.
func (r *linuxReactor) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()
	r.wake()
	return nil
}

// Run implements FlushReactor.
func (r *linuxReactor) Run() error {
	defer unix.Close(r.epfd)
	defer unix.Close(r.wakefd)

	events := make([]unix.EpollEvent, 128)
	for {
		n, err := unix.EpollWait(r.epfd, events, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("epoll wait: %w", err)
		}
		for i := 0; i < n; i++ {
			ev := events[i]
			fd := uintptr(ev.Fd)
			if int(ev.Fd) == r.wakefd {
				r.drainWake()
				if r.isClosed() {
					return nil
				}
				r.admitPending()
				continue
			}
			b, ok := r.watched[fd]
			if !ok {
				continue
			}
			if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				r.forget(fd)
				r.fire(fd, fmt.Errorf("fd %d: %w", fd, api.ErrTransportFailure))
				continue
			}
			if _, err := b.Flush(fd); err != nil {
				r.forget(fd)
				r.fire(fd, err)
				continue
			}
			if b.IsEmpty() {
				r.forget(fd)
			}
		}
	}
}

func (r *linuxReactor) wake() {
	var one [8]byte
	binary.LittleEndian.PutUint64(one[:], 1)
	// EAGAIN means the counter is already pending a read
	_, _ = unix.Write(r.wakefd, one[:])
}

func (r *linuxReactor) drainWake() {
	var buf [8]byte
	_, _ = unix.Read(r.wakefd, buf[:])
}

func (r *linuxReactor) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *linuxReactor) admitPending() {
	r.mu.Lock()
	reqs := make([]watchReq, 0, r.pending.Length())
	for r.pending.Length() > 0 {
		reqs = append(reqs, r.pending.Remove().(watchReq))
	}
	r.mu.Unlock()

	for _, req := range reqs {
		if _, ok := r.watched[req.fd]; ok {
			r.watched[req.fd] = req.buf
			continue
		}
		ev := unix.EpollEvent{Events: unix.EPOLLOUT, Fd: int32(req.fd)}
		if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, int(req.fd), &ev); err != nil {
			r.fire(req.fd, fmt.Errorf("epoll ctl add: %w", err))
			continue
		}
		r.watched[req.fd] = req.buf
	}
}

func (r *linuxReactor) forget(fd uintptr) {
	_ = unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, int(fd), nil)
	delete(r.watched, fd)
}

func (r *linuxReactor) fire(fd uintptr, err error) {
	r.mu.Lock()
	fn := r.onError
	r.mu.Unlock()
	if fn != nil {
		fn(fd, err)
	}
}
