package ws

import (
	"log"
	"sync"
)

// ClientBuffer is how many messages may wait for a slow connection before
// further sends are refused.
const ClientBuffer = 64

// JSONWriter is the write side of a websocket connection.
type JSONWriter interface {
	WriteJSON(v interface{}) error
}

// Client owns every write to one connection. Messages are written by a
// single goroutine in the order Send accepted them.
type Client struct {
	conn    JSONWriter
	send    chan Message
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewClient(conn JSONWriter) *Client {
	c := &Client{
		conn:    conn,
		send:    make(chan Message, ClientBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go c.writePump()
	return c
}

// Send queues msg for delivery. It reports false when the client has been
// stopped or its buffer is full; it never blocks.
func (c *Client) Send(msg Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Done is closed once the client stops accepting messages.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Stop refuses further sends without waiting for the writer.
func (c *Client) Stop() {
	c.once.Do(func() { close(c.done) })
}

// Close stops the client and waits until already queued messages have been
// written or a write has failed.
func (c *Client) Close() {
	c.Stop()
	<-c.stopped
}

func (c *Client) writePump() {
	defer close(c.stopped)
	for {
		select {
		case msg := <-c.send:
			if !c.write(msg) {
				return
			}
		case <-c.done:
			for {
				select {
				case msg := <-c.send:
					if !c.write(msg) {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (c *Client) write(msg Message) bool {
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Printf("write error: %v", err)
		c.Stop()
		return false
	}
	return true
}
