package event

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"support-desk-api/config/logger"
	"support-desk-api/entity"
)

const (
	writeWait      = 10 * time.Second
	clientSendSize = 16
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type client struct {
	conn    Conn
	send    chan Envelope
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func (cl *client) stop() {
	cl.once.Do(func() { close(cl.done) })
}

// Hub keeps the open notification sockets of each user. Every socket has its
// own buffered queue and writer goroutine; a full queue drops the envelope.
type Hub struct {
	sync.Mutex
	Log     *logger.AppLogger
	Clients map[uint]map[Conn]*client // userId -> sockets
}

func NewHub(log *logger.AppLogger) *Hub {
	return &Hub{
		Log:     log,
		Clients: make(map[uint]map[Conn]*client),
	}
}

// HandleWebSocket serves /ws. The caller was attached to Locals("user") before
// the upgrade.
func (hub *Hub) HandleWebSocket(c *websocket.Conn) {
	caller, ok := c.Locals("user").(*entity.User)
	if !ok || caller == nil {
		hub.Log.Event.Warning.Warn().Msg("websocket connection without caller")
		c.Close()
		return
	}

	cl := hub.register(caller.ID, c)
	defer func() {
		hub.Remove(caller.ID, c)
		// the conn is released once this handler returns
		<-cl.stopped
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			hub.Log.Event.Trace.Debug().Err(err).Uint("userId", caller.ID).Msg("websocket read ended")
			return
		}
	}
}

func (hub *Hub) Register(userID uint, conn Conn) {
	hub.register(userID, conn)
}

func (hub *Hub) register(userID uint, conn Conn) *client {
	cl := &client{
		conn:    conn,
		send:    make(chan Envelope, clientSendSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	hub.Lock()
	if hub.Clients[userID] == nil {
		hub.Clients[userID] = make(map[Conn]*client)
	}
	hub.Clients[userID][conn] = cl
	sockets := len(hub.Clients[userID])
	hub.Unlock()

	go hub.write(userID, cl)
	hub.Log.Event.Info.Info().Uint("userId", userID).Int("sockets", sockets).Msg("client subscribed")
	return cl
}

func (hub *Hub) Remove(userID uint, conn Conn) {
	hub.Lock()
	defer hub.Unlock()

	clients, ok := hub.Clients[userID]
	if !ok {
		return
	}
	if cl, ok := clients[conn]; ok {
		cl.stop()
		delete(clients, conn)
		hub.Log.Event.Info.Info().Uint("userId", userID).Msg("client unsubscribed")
	}
	if len(clients) == 0 {
		delete(hub.Clients, userID)
	}
}

// Publish queues msg on every socket of its audience and never blocks.
func (hub *Hub) Publish(_ context.Context, key string, msg Envelope) error {
	hub.Lock()
	defer hub.Unlock()

	for _, userID := range msg.Audience {
		for _, cl := range hub.Clients[userID] {
			select {
			case cl.send <- msg:
			default:
				hub.Log.Event.Warning.Warn().Uint("userId", userID).Str("key", key).Str("id", msg.Meta.ID).Msg("client queue full, notification dropped")
			}
		}
	}
	return nil
}

func (hub *Hub) Close() error {
	hub.Lock()
	defer hub.Unlock()

	for userID, clients := range hub.Clients {
		for _, cl := range clients {
			cl.stop()
		}
		delete(hub.Clients, userID)
	}
	return nil
}

func (hub *Hub) write(userID uint, cl *client) {
	defer close(cl.stopped)

	for {
		select {
		case <-cl.done:
			return
		case msg := <-cl.send:
			if err := cl.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				hub.Log.Event.Warning.Warn().Err(err).Uint("userId", userID).Msg("error setting write deadline")
			}
			if err := cl.conn.WriteJSON(msg); err != nil {
				hub.Log.Event.Warning.Warn().Err(err).Uint("userId", userID).Msg("error delivering notification")
				hub.Remove(userID, cl.conn)
				cl.conn.Close()
				return
			}
		}
	}
}
