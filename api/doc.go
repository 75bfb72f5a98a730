// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package api defines the shared contracts of hioload-obuf: the Sender
// transport hook, the close-when-done side channel, and common error values.
package api
