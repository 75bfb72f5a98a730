package api_test

import (
	"testing"

	"github.com/momentics/hioload-obuf/api"
)

func TestSenderFuncCompliance(t *testing.T) {
	var _ api.Sender = api.SenderFunc(nil)
}

func TestSenderFuncForwards(t *testing.T) {
	var gotOwner any
	var gotFd uintptr
	s := api.SenderFunc(func(owner any, fd uintptr, p []byte) int {
		gotOwner = owner
		gotFd = fd
		return len(p)
	})
	n := s.Send("owner", 7, []byte("abc"))
	if n != 3 {
		t.Fatalf("expected 3 bytes consumed, got %d", n)
	}
	if gotOwner != "owner" || gotFd != 7 {
		t.Fatal("owner/fd not passed through")
	}
}
