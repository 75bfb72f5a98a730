// File: transport/transport.go
// Author: momentics <momentics@gmail.com>
//
// Default write primitives implementing the api.Sender contract. The buffer
// falls back to Default when no hook is installed.

package transport

import "github.com/momentics/hioload-obuf/api"

// Default is the write primitive used by buffers without an installed hook:
// a direct descriptor write on Unix platforms, a stub elsewhere.
var Default api.Sender = FDSender{}
