package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/sketchwars/sketchwars-backend/internal/game"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Ping cadence, must stay under pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size.
	maxMessageSize = 4096

	// The send buffer must absorb a full canvas and chat replay in one
	// burst on top of regular traffic.
	sendBufferSize = 2048

	// Sustained inbound frames per second per connection, with burst.
	inboundRate  = 60
	inboundBurst = 120
)

// Client ties one websocket to a game session. It satisfies game.Conn: the
// session enqueues frames, the write pump drains them.
type Client struct {
	conn    *websocket.Conn
	hub     *game.Hub
	session *game.Session
	log     zerolog.Logger
	limiter *rate.Limiter

	send chan []byte
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn, hub *game.Hub, session *game.Session, log zerolog.Logger) *Client {
	return &Client{
		conn:    conn,
		hub:     hub,
		session: session,
		log:     log,
		limiter: rate.NewLimiter(inboundRate, inboundBurst),
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
	}
}

// Enqueue hands a frame to the write pump without blocking. Frames for a
// closed or saturated connection are dropped.
func (c *Client) Enqueue(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Close is safe to call from any goroutine, any number of times.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	c.conn.Close()
}

// Run pumps frames until the peer goes away, then detaches the connection
// from its session.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Release(c.session, c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Debug().Err(err).Msg("websocket read failed")
			}
			return
		}
		if !c.limiter.Allow() {
			c.log.Warn().Msg("inbound rate exceeded, dropping frame")
			continue
		}
		c.session.Dispatch(c, frame)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
