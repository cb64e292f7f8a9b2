package push

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/claudiojas/rockbandpay-table-client/utils"
)

// Handler receives every successfully decoded inbound event.
type Handler func(Event)

const defaultRetryDelay = 3 * time.Second

type Options struct {
	// RetryDelay is the fixed pause before a reconnect attempt. No backoff
	// growth and no retry cap: the channel is expected to recover
	// transparently for the lifetime of the kiosk.
	RetryDelay time.Duration
	Dialer     *websocket.Dialer
}

// Channel keeps one best-effort live connection to a session's push endpoint
// and redials on unexpected closure. Undecodable frames are logged and
// dropped without disturbing the connection.
type Channel struct {
	url  string
	opts Options

	mu      sync.Mutex
	handler Handler
	conn    *websocket.Conn
	retry   *time.Timer
	closed  bool

	closeOnce sync.Once
}

func Open(url string, h Handler) *Channel {
	return OpenWith(url, h, Options{})
}

func OpenWith(url string, h Handler, opts Options) *Channel {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	c := &Channel{url: url, opts: opts, handler: h}
	go c.connect()
	return c
}

// SetHandler swaps the handler without reconnecting. The channel always
// invokes the latest handler, never a closure captured at connect time.
func (c *Channel) SetHandler(h Handler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

func (c *Channel) connect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	conn, resp, err := c.opts.Dialer.Dial(c.url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		utils.ErrorLogger.Printf("push: dial %s: %v", c.url, err)
		c.scheduleReconnect()
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.mu.Unlock()

	c.readLoop(conn)
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			c.scheduleReconnect()
			return
		}
		ev, err := parseEvent(raw)
		if err != nil {
			utils.ErrorLogger.Printf("push: dropping undecodable frame: %v", err)
			continue
		}
		c.mu.Lock()
		h := c.handler
		c.mu.Unlock()
		if h != nil {
			h(ev)
		}
	}
}

func (c *Channel) scheduleReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// Intentional teardown: the close handler path must not loop.
		return
	}
	if c.retry != nil {
		c.retry.Stop()
	}
	c.retry = time.AfterFunc(c.opts.RetryDelay, c.connect)
}

// Close tears the channel down for good: the pending reconnect timer is
// cancelled before the socket closes so no further attempt fires. Idempotent.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		if c.retry != nil {
			c.retry.Stop()
		}
		conn := c.conn
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
	})
}
