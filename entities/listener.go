package entities

import (
	"sync"

	"github.com/AmirRezaM75/algobattle/pkg/logx"
	"github.com/gorilla/websocket"

	"go.uber.org/zap"
)

// Listener is a websocket client watching one room's events. It has no
// say in the room; commands go through the REST API.
type Listener struct {
	Id     string
	RoomId string
	// Name is informational, listeners are not required to be players
	Name string
	// To keep track of closed channel
	IsClosed     bool
	Disconnected bool
	Connection   *websocket.Conn
	Message      chan []byte
	mutex        sync.Mutex
}

func NewListener(id, roomId, name string, connection *websocket.Conn) *Listener {
	return &Listener{
		Id:         id,
		RoomId:     roomId,
		Name:       name,
		Connection: connection,
		Message:    make(chan []byte, 50),
	}
}

// Send queues message without blocking the hub. A listener that cannot keep
// up loses the message.
func (listener *Listener) Send(message []byte) {
	listener.mutex.Lock()
	defer listener.mutex.Unlock()

	if listener.IsClosed {
		return
	}

	select {
	case listener.Message <- message:
	default:
		logx.Logger.Warn(
			"listener buffer is full, dropping message",
			zap.String("listenerId", listener.Id),
			zap.String("roomId", listener.RoomId),
		)
	}
}

// Close stops accepting messages. Write drains what is queued, says goodbye
// and then drops the connection.
func (listener *Listener) Close() {
	listener.mutex.Lock()
	defer listener.mutex.Unlock()

	if !listener.IsClosed {
		close(listener.Message)
		listener.IsClosed = true
	}
}

// Kick drops the connection right away.
func (listener *Listener) Kick() {
	// https://go101.org/article/channel-closing.html
	listener.mutex.Lock()

	defer listener.mutex.Unlock()

	if !listener.IsClosed {
		close(listener.Message)
		listener.IsClosed = true
	}

	if listener.Connection != nil && !listener.Disconnected {
		listener.Disconnected = true

		err := listener.Connection.Close()

		if err != nil {
			logx.Logger.Error(
				err.Error(),
				zap.String("desc", "could not close listener connection"),
				zap.String("listenerId", listener.Id),
			)
		}
	}
}

func (listener *Listener) Write() {
	defer listener.Kick()

	for {
		message, ok := <-listener.Message

		if !ok {
			logx.Logger.Debug(
				"listener channel is closed!",
				zap.String("listenerId", listener.Id),
			)
			_ = listener.Connection.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			)
			break
		}

		err := listener.Connection.WriteMessage(websocket.TextMessage, message)

		if err != nil {
			logx.Logger.Error(
				err.Error(),
				zap.String("desc", "could not write listener message"),
				zap.String("listenerId", listener.Id),
			)
			break
		}
	}
}

// Read drains the connection so close frames are noticed, and unsubscribes
// the listener once the client goes away.
func (listener *Listener) Read(hub *Hub) {
	defer func() {
		listener.Kick()
		hub.Unsubscribe(listener)
	}()

	for {
		_, _, err := listener.Connection.ReadMessage()

		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logx.Logger.Error(
					err.Error(),
					zap.String("desc", "could not read listener message"),
					zap.String("listenerId", listener.Id),
				)
			}
			break
		}
	}
}
