// Package host carries the control protocol between the plugin and its
// embedding host. Both directions share byte streams with ordinary terminal
// traffic, so every protocol message is framed as a sentinel-prefixed
// JSON-RPC 2.0 envelope terminated by a newline; anything else on the input
// stream is raw keystrokes.
package host

import "encoding/json"

// Sentinel prefixes every envelope. It is an APC-style sequence, so a
// terminal that sees leaked control traffic renders nothing.
const Sentinel = "\x1b_hecaton;"

// Envelope is one JSON-RPC 2.0 message.
type Envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      *int64          `json:"id,omitempty"`
}

// Inbound method names.
const (
	MethodResize = "resize"
)

// Outbound method names.
const (
	MethodClose = "close"
)

// ResizeParams carries new terminal dimensions. A zero or missing field
// means "keep the previous value".
type ResizeParams struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// Resize decodes the envelope's params as a resize. It returns false for
// other methods or malformed params.
func (e *Envelope) Resize() (ResizeParams, bool) {
	if e.Method != MethodResize {
		return ResizeParams{}, false
	}
	var p ResizeParams
	if err := json.Unmarshal(e.Params, &p); err != nil {
		return ResizeParams{}, false
	}
	return p, true
}
