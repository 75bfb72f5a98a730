// File: pool/default.go
// Author: momentics <momentics@gmail.com>

package pool

// Default is the process-wide chunk pool used by buffers that were not
// given their own. Sharing one pool lets chunks migrate between
// connections instead of growing a free list per buffer.
var Default = NewChunkPool()
