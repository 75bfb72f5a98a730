// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package pool provides the fixed-size chunk pool that backs packet memory:
// copied payload and lazily read file chunks all live in ChunkSize slices so
// every chunk can be recycled after transmission.
package pool
