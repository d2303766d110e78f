package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"support-desk-api/config/logger"
)

type fakeConn struct {
	mu        sync.Mutex
	written   []Envelope
	deadlines []time.Time
	failing   bool
	closed    bool
	// when set, WriteJSON blocks until it is closed
	stall chan struct{}
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	if c.stall != nil {
		<-c.stall
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("broken pipe")
	}
	c.written = append(c.written, v.(Envelope))
	return nil
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadlines = append(c.deadlines, t)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.written)
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !condition() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubDeliversToAudienceOnly(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	defer hub.Close()

	agent, customer, bystander := &fakeConn{}, &fakeConn{}, &fakeConn{}
	hub.Register(1, agent)
	hub.Register(2, customer)
	hub.Register(3, bystander)

	msg := Envelope{Meta: Meta{ID: "evt-1", Type: TransactionCreated}, Audience: []uint{1, 2}}
	if err := hub.Publish(context.Background(), TransactionCreated, msg); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	waitFor(t, func() bool { return agent.count() == 1 && customer.count() == 1 })
	if bystander.count() != 0 {
		t.Errorf("bystander received %d messages, want 0", bystander.count())
	}

	agent.mu.Lock()
	defer agent.mu.Unlock()
	if len(agent.deadlines) != 1 || !agent.deadlines[0].After(time.Now()) {
		t.Errorf("write deadlines = %v, want one in the future", agent.deadlines)
	}
}

func TestHubStalledClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	defer hub.Close()

	stalled := &fakeConn{stall: make(chan struct{})}
	defer close(stalled.stall)
	hub.Register(1, stalled)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	for i := 0; i < 4*clientSendSize; i++ {
		msg := Envelope{Meta: Meta{ID: "evt"}, Audience: []uint{1}}
		if err := hub.Publish(ctx, ChatGroupCreated, msg); err != nil {
			t.Fatalf("Publish() #%d error: %v", i, err)
		}
	}

	registered := make(chan struct{})
	healthy := &fakeConn{}
	go func() {
		hub.Register(2, healthy)
		close(registered)
	}()
	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("Register() blocked behind a stalled socket")
	}

	msg := Envelope{Meta: Meta{ID: "evt-2"}, Audience: []uint{1, 2}}
	if err := hub.Publish(ctx, ChatGroupCreated, msg); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	waitFor(t, func() bool { return healthy.count() == 1 })
	if ctx.Err() != nil {
		t.Errorf("publishing took longer than the request deadline: %v", ctx.Err())
	}
}

func TestHubDropsBrokenConnections(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	defer hub.Close()

	broken := &fakeConn{failing: true}
	hub.Register(9, broken)

	msg := Envelope{Meta: Meta{ID: "evt-2"}, Audience: []uint{9}}
	if err := hub.Publish(context.Background(), ChatGroupCreated, msg); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	waitFor(t, func() bool {
		hub.Lock()
		defer hub.Unlock()
		_, ok := hub.Clients[9]
		return !ok
	})
	waitFor(t, func() bool {
		broken.mu.Lock()
		defer broken.mu.Unlock()
		return broken.closed
	})
}

func TestHubRemove(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	defer hub.Close()

	first, second := &fakeConn{}, &fakeConn{}
	hub.Register(4, first)
	hub.Register(4, second)
	hub.Remove(4, first)

	hub.Lock()
	if got := len(hub.Clients[4]); got != 1 {
		t.Errorf("sockets for user 4 = %d, want 1", got)
	}
	hub.Unlock()

	hub.Remove(4, second)
	hub.Remove(4, second)
	hub.Lock()
	defer hub.Unlock()
	if _, ok := hub.Clients[4]; ok {
		t.Error("user 4 still registered after removing every socket")
	}
}

type recordingPublisher struct {
	keys   []string
	msgs   []Envelope
	err    error
	closed bool
}

func (p *recordingPublisher) Publish(_ context.Context, key string, msg Envelope) error {
	p.keys = append(p.keys, key)
	p.msgs = append(p.msgs, msg)
	return p.err
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

func TestNotifierFansOutAndSwallowsErrors(t *testing.T) {
	failing := &recordingPublisher{err: errors.New("channel closed")}
	healthy := &recordingPublisher{}
	notifier := NewNotifier(logger.NewNopLogger(), failing, healthy)

	notifier.Notify(context.Background(), ChatGroupCreated, map[string]uint{"id": 5}, 1, 2)

	for name, sink := range map[string]*recordingPublisher{"failing": failing, "healthy": healthy} {
		if len(sink.msgs) != 1 {
			t.Fatalf("%s sink got %d messages, want 1", name, len(sink.msgs))
		}
		msg := sink.msgs[0]
		if sink.keys[0] != ChatGroupCreated || msg.Meta.Type != ChatGroupCreated {
			t.Errorf("%s sink key = %q type = %q", name, sink.keys[0], msg.Meta.Type)
		}
		if msg.Meta.ID == "" || msg.Meta.CorrelationID == "" {
			t.Errorf("%s sink message has empty ids: %+v", name, msg.Meta)
		}
		if len(msg.Audience) != 2 {
			t.Errorf("%s sink audience = %v", name, msg.Audience)
		}
	}
	if failing.msgs[0].Meta.ID != healthy.msgs[0].Meta.ID {
		t.Error("sinks received different envelopes")
	}

	if err := notifier.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !failing.closed || !healthy.closed {
		t.Error("Close() did not close every sink")
	}
}

func TestNopPublisher(t *testing.T) {
	var publisher Publisher = NopPublisher{}
	if err := publisher.Publish(context.Background(), OTPRequested, Envelope{}); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
}
