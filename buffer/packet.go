// File: buffer/packet.go
// Author: momentics <momentics@gmail.com>
//
// Packet variants and their cleanup responsibilities. Every variant owns its
// resources exclusively once queued; release is exhaustive over the variants
// so no path can leak a chunk or a file handle.

package buffer

import (
	"io"

	"github.com/momentics/hioload-obuf/pool"
)

type packetKind uint8

const (
	packetCopied packetKind = iota // pooled copy made at enqueue time
	packetMoved                    // caller-relinquished slice
	packetFile                     // lazily chunked io.ReadCloser
	packetClose                    // close-when-done marker, carries no data
)

// packet is one queued unit of output. data and sent cover the data-bearing
// variants; for a file packet, data holds the currently buffered chunk and
// is refilled from file as it drains.
type packet struct {
	next *packet
	kind packetKind

	data []byte
	sent int // bytes of data already transmitted, monotonic in [0, len(data)]

	file io.ReadCloser

	// started marks that transmission of this unit has begun. A started
	// unit never has another unit inserted into its byte stream.
	started bool

	// cont marks a continuation chunk of a multi-chunk write group; the
	// next-insertion rule skips continuations so a split copy is never
	// interleaved mid-group.
	cont bool
}

// release frees the packet's owned resources. Pooled chunks go back to cp;
// moved slices are simply dropped for the GC; file handles are closed.
func (p *packet) release(cp *pool.ChunkPool) {
	switch p.kind {
	case packetCopied:
		cp.Put(p.data)
	case packetFile:
		if p.data != nil {
			cp.Put(p.data)
		}
		if p.file != nil {
			p.file.Close()
		}
	}
	p.data = nil
	p.file = nil
	p.next = nil
}
