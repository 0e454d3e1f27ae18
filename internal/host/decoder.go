package host

import (
	"bytes"
	"encoding/json"
	"io"
)

// Kind tags a classified inbound message.
type Kind int

const (
	// KindEnvelope is a host protocol message.
	KindEnvelope Kind = iota
	// KindKeys is one or more literal keystrokes.
	KindKeys
)

// Message is the tagged variant delivered to the dispatcher: exactly one of
// Envelope or Keys is set, per Kind.
type Message struct {
	Kind     Kind
	Envelope *Envelope
	Keys     []byte
}

// Decoder demultiplexes the single input stream into envelopes and
// keystrokes.
type Decoder struct {
	r io.Reader
}

// NewDecoder wraps the input stream.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Run reads chunks until EOF or a read error, sending classified messages
// on out. It closes out on return; stream end is the host hanging up and is
// handled by the event loop as shutdown.
func (d *Decoder) Run(out chan<- Message) {
	defer close(out)

	buf := make([]byte, 4096)
	for {
		n, err := d.r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			for _, msg := range Classify(chunk) {
				out <- msg
			}
		}
		if err != nil {
			return
		}
	}
}

// Classify splits one inbound chunk into messages. A chunk starting with
// the sentinel holds one or more newline-terminated envelopes; malformed
// envelope lines are dropped silently. Any other chunk is keystrokes.
func Classify(chunk []byte) []Message {
	if !bytes.HasPrefix(chunk, []byte(Sentinel)) {
		if len(chunk) == 0 {
			return nil
		}
		return []Message{{Kind: KindKeys, Keys: chunk}}
	}

	var msgs []Message
	for _, line := range bytes.Split(chunk, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		body := bytes.TrimPrefix(line, []byte(Sentinel))
		if len(body) == 0 {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(body, &env); err != nil {
			continue
		}
		if env.JSONRPC != "2.0" || env.Method == "" {
			continue
		}
		msgs = append(msgs, Message{Kind: KindEnvelope, Envelope: &env})
	}
	return msgs
}
