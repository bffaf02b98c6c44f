package ws

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type recordingConn struct {
	mu       sync.Mutex
	inFlight int32
	overlap  int32
	written  []Message
	fail     error
}

func (r *recordingConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&r.inFlight, 1) > 1 {
		atomic.StoreInt32(&r.overlap, 1)
	}
	defer atomic.AddInt32(&r.inFlight, -1)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.written = append(r.written, v.(Message))
	return nil
}

func (r *recordingConn) messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.written...)
}

func numbered(t *testing.T, n int) Message {
	t.Helper()
	msg, err := NewMessage(MessageTypeGameState, n)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return msg
}

func TestClientPreservesOrder(t *testing.T) {
	conn := &recordingConn{}
	c := NewClient(conn)
	for i := 0; i < 20; i++ {
		if !c.Send(numbered(t, i)) {
			t.Fatalf("send %d refused", i)
		}
	}
	c.Close()

	got := conn.messages()
	if len(got) != 20 {
		t.Fatalf("expected 20 messages, got %d", len(got))
	}
	for i, msg := range got {
		if string(msg.Payload) != fmt.Sprint(i) {
			t.Fatalf("message %d carries %s", i, msg.Payload)
		}
	}
}

func TestClientSerializesConcurrentSenders(t *testing.T) {
	conn := &recordingConn{}
	c := NewClient(conn)

	msgs := make([]Message, 40)
	for i := range msgs {
		msgs[i] = numbered(t, i)
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(batch []Message) {
			defer wg.Done()
			for _, msg := range batch {
				c.Send(msg)
			}
		}(msgs[g*10 : g*10+10])
	}
	wg.Wait()
	c.Close()

	if atomic.LoadInt32(&conn.overlap) != 0 {
		t.Fatalf("writes overlapped on one connection")
	}
	if n := len(conn.messages()); n != 40 {
		t.Fatalf("expected 40 messages, got %d", n)
	}
}

func TestClientRefusesAfterClose(t *testing.T) {
	c := NewClient(&recordingConn{})
	c.Close()
	c.Close()
	if c.Send(numbered(t, 1)) {
		t.Fatalf("closed client accepted a message")
	}
}

func TestClientStopsOnWriteError(t *testing.T) {
	conn := &recordingConn{fail: errors.New("broken pipe")}
	c := NewClient(conn)
	c.Send(numbered(t, 1))

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("client kept running after a failed write")
	}
	if c.Send(numbered(t, 2)) {
		t.Fatalf("failed client accepted a message")
	}
	c.Close()
}
