// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package buffer implements an asynchronous, packet-oriented output queue
// for nonblocking socket servers.
//
// Producers enqueue outbound units from any goroutine: copied payload,
// ownership-transferred payload, lazily chunked file streams, or a
// close-when-done marker. The owning event loop calls Flush whenever the
// destination descriptor reports writable; the buffer resumes partially
// sent packets across passes with exact byte accounting and transmits
// through an installable transport hook, so the same queue machinery serves
// raw descriptors, TLS wrappers, or any other byte-stream transport.
package buffer
