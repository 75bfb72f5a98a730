// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides a writability-driven flush loop: it watches
// destination descriptors and drains their output buffers as the kernel
// reports room, so callers never block on a saturated socket.
package reactor
