// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package control exposes lightweight runtime accounting for output
// buffers: atomic counters the owning server can attach and sample.
package control
