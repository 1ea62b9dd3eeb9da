package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Transport is an in-process stand-in for the postMessage channel between
// a host and its embedded CAD frame: requests flow one
// way, responses and events flow the other. A real embedding (browser
// postMessage, a websocket) would implement the same two-channel shape
// underneath its own wire encoding.
type Transport struct {
	Requests  chan Envelope
	Responses chan Envelope
}

// NewTransport creates a buffered request/response channel pair.
func NewTransport() *Transport {
	return &Transport{
		Requests:  make(chan Envelope, 16),
		Responses: make(chan Envelope, 16),
	}
}

// Serve runs fr.Handle against every request on t.Requests and every
// queued event from fr.Events(), forwarding results to t.Responses, until
// ctx is canceled. It is the frame side of the transport and is meant to
// run on its own goroutine; all feature execution happens inside Handle
// itself on that one goroutine; Serve is just the pump.
func Serve(ctx context.Context, fr *Frame, t *Transport) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-t.Requests:
			if !ok {
				return
			}
			t.Responses <- fr.Handle(ctx, req)
		case evt, ok := <-fr.events:
			if !ok {
				return
			}
			t.Responses <- evt
		}
	}
}

// Client is the host-side half of the bridge: it issues requests over a
// Transport, matches responses by requestId, and enforces the
// configurable per-request timeout (default 20s). A generic Call is used
// rather than one Go method per message type, since there is no
// code-generation step minting typed bindings here.
type Client struct {
	channel    string
	instanceID string
	t          *Transport
	timeout    time.Duration
	onEvent    func(Envelope)

	mu      sync.Mutex
	pending map[string]chan Envelope
	closed  bool
}

// NewClient creates a Client bound to a transport. onEvent, if non-nil, is
// called for every envelope read off t.Responses that carries no
// requestId (i.e. an event rather than a response); it runs on the
// Client's own listening goroutine, so it must not block.
func NewClient(channel, instanceID string, t *Transport, timeout time.Duration, onEvent func(Envelope)) *Client {
	c := &Client{
		channel:    channel,
		instanceID: instanceID,
		t:          t,
		timeout:    timeout,
		onEvent:    onEvent,
		pending:    make(map[string]chan Envelope),
	}
	go c.listen()
	return c
}

func (c *Client) listen() {
	for resp := range c.t.Responses {
		if resp.IsEvent() {
			if c.onEvent != nil {
				c.onEvent(resp)
			}
			continue
		}
		c.mu.Lock()
		ch, ok := c.pending[resp.RequestID]
		if ok {
			delete(c.pending, resp.RequestID)
		}
		c.mu.Unlock()
		if ok {
			ch <- resp
		}
	}
}

// Call sends a request of the given type and waits for its matching
// response, up to the client's configured timeout.
func (c *Client) Call(ctx context.Context, typ string, payload interface{}) (Envelope, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Envelope{}, ErrDisposed
	}
	requestID := uuid.New().String()
	respCh := make(chan Envelope, 1)
	c.pending[requestID] = respCh
	c.mu.Unlock()

	req := Envelope{
		Channel:    c.channel,
		InstanceID: c.instanceID,
		Type:       typ,
		RequestID:  requestID,
		Payload:    mustMarshal(payload),
	}

	select {
	case c.t.Requests <- req:
	case <-ctx.Done():
		c.forget(requestID)
		return Envelope{}, ctx.Err()
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case resp := <-respCh:
		return resp, nil
	case <-timer.C:
		c.forget(requestID)
		return Envelope{}, ErrTimeout
	case <-ctx.Done():
		c.forget(requestID)
		return Envelope{}, ctx.Err()
	}
}

func (c *Client) forget(requestID string) {
	c.mu.Lock()
	delete(c.pending, requestID)
	c.mu.Unlock()
}

// Dispose rejects every pending request with ErrDisposed and refuses any
// further Call.
func (c *Client) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.pending {
		ch <- errEnvelope(c.channel, c.instanceID, TypeDispose, id, ErrDisposed)
		delete(c.pending, id)
	}
}
