package room

import (
	"github.com/gorilla/websocket"

	"holdem-trainer/pkg/holdem"
)

// Client is a client watching a session via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending views to the client
	send chan *holdem.View

	// Close is a channel for closing the client
	Close chan string

	dealer *Dealer
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		Conn:  conn,
		send:  make(chan *holdem.View, 256),
		Close: make(chan string, 1),
	}
}

// Send sends a view to the client without blocking
// A client that has fallen behind misses the update.
func (c *Client) Send(view *holdem.View) bool {
	select {
	case c.send <- view:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan *holdem.View {
	return c.send
}
