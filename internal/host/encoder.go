package host

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Encoder writes outbound control requests. Each envelope goes out in a
// single write so control traffic never interleaves with a partial repaint.
type Encoder struct {
	mu     sync.Mutex
	w      io.Writer
	nextID int64
}

// NewEncoder wraps the outbound control stream.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Request emits one request envelope with a fresh id.
func (e *Encoder) Request(method string, params any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	env := struct {
		JSONRPC string `json:"jsonrpc"`
		Method  string `json:"method"`
		Params  any    `json:"params,omitempty"`
		ID      int64  `json:"id"`
	}{JSONRPC: "2.0", Method: method, Params: params, ID: id}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", method, err)
	}

	frame := make([]byte, 0, len(Sentinel)+len(body)+1)
	frame = append(frame, Sentinel...)
	frame = append(frame, body...)
	frame = append(frame, '\n')
	if _, err := e.w.Write(frame); err != nil {
		return fmt.Errorf("writing %s request: %w", method, err)
	}
	return nil
}

// RequestClose asks the host to close the plugin pane.
func (e *Encoder) RequestClose() error {
	return e.Request(MethodClose, nil)
}
