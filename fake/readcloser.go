// Package fake
// Author: momentics <momentics@gmail.com>

package fake

import (
	"bytes"
	"sync"
)

// ReadCloser is an in-memory io.ReadCloser that records whether it was
// closed, for verifying file-handle ownership rules.
type ReadCloser struct {
	mu     sync.Mutex
	r      *bytes.Reader
	closed bool
}

// NewReadCloser creates a ReadCloser serving the given content.
func NewReadCloser(content []byte) *ReadCloser {
	return &ReadCloser{r: bytes.NewReader(content)}
}

// Read implements io.Reader.
func (rc *ReadCloser) Read(p []byte) (int, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.r.Read(p)
}

// Close implements io.Closer.
func (rc *ReadCloser) Close() error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.closed = true
	return nil
}

// Closed reports whether Close was called.
func (rc *ReadCloser) Closed() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.closed
}
