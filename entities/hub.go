package entities

import (
	"context"
	"fmt"
	"sort"

	"github.com/AmirRezaM75/algobattle/pkg/syncx"
)

// DispatcherMessage is one outbound payload for every listener of a room.
// When Close is set, the room's listeners are closed after delivery.
type DispatcherMessage struct {
	RoomId string
	Body   []byte
	Close  bool
}

// Hub is the room registry. It also fans outbound messages out to the
// websocket listeners subscribed to each room.
type Hub struct {
	Rooms syncx.Map[string, *Room]

	// roomId => listenerId => listener
	listeners syncx.Map[string, *syncx.Map[string, *Listener]]

	Context context.Context

	Dispatch chan *DispatcherMessage
}

func NewHub(ctx context.Context, dispatchBufferSize int) *Hub {
	bufferSize := dispatchBufferSize

	if bufferSize <= 0 {
		bufferSize = 500
	}

	return &Hub{
		Context:  ctx,
		Dispatch: make(chan *DispatcherMessage, bufferSize),
	}
}

// Run delivers dispatched messages until the hub context is cancelled, then
// disconnects every listener.
func (hub *Hub) Run() {
	for {
		select {
		case <-hub.Context.Done():
			hub.listeners.Range(func(roomId string, listeners *syncx.Map[string, *Listener]) bool {
				listeners.Range(func(listenerId string, listener *Listener) bool {
					listener.Kick()
					return true
				})
				return true
			})
			return
		case message := <-hub.Dispatch:
			hub.deliver(message)
		}
	}
}

func (hub *Hub) deliver(message *DispatcherMessage) {
	listeners, exists := hub.listeners.Load(message.RoomId)

	if !exists {
		return
	}

	listeners.Range(func(listenerId string, listener *Listener) bool {
		listener.Send(message.Body)
		return true
	})

	if message.Close {
		if listeners, exists := hub.listeners.LoadAndDelete(message.RoomId); exists {
			listeners.Range(func(listenerId string, listener *Listener) bool {
				listener.Close()
				return true
			})
		}
	}
}

// Broadcast queues body for the listeners of roomId. It gives up when the hub
// is shutting down.
func (hub *Hub) Broadcast(roomId string, body []byte, closing bool) {
	select {
	case hub.Dispatch <- &DispatcherMessage{RoomId: roomId, Body: body, Close: closing}:
	case <-hub.Context.Done():
	}
}

// AddRoom registers room. Ids are unique, a collision is an error.
func (hub *Hub) AddRoom(room *Room) error {
	if _, loaded := hub.Rooms.LoadOrStore(room.Id, room); loaded {
		return fmt.Errorf("room %s already exists", room.Id)
	}
	return nil
}

func (hub *Hub) FindRoom(id string) *Room {
	room, exists := hub.Rooms.Load(id)

	if !exists {
		return nil
	}

	return room
}

// RemoveRoom unregisters and destroys a room. Listeners stay subscribed
// until a closing message is broadcast for the room.
func (hub *Hub) RemoveRoom(id string) *Room {
	room, exists := hub.Rooms.LoadAndDelete(id)

	if !exists {
		return nil
	}

	room.Destroy()

	return room
}

// AllRooms returns every registered room, oldest first.
func (hub *Hub) AllRooms() []*Room {
	var rooms []*Room

	hub.Rooms.Range(func(id string, room *Room) bool {
		rooms = append(rooms, room)
		return true
	})

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].Id < rooms[j].Id
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})

	return rooms
}

// AvailableRooms returns the rooms that are waiting and have a free seat.
func (hub *Hub) AvailableRooms() []*Room {
	var rooms []*Room

	for _, room := range hub.AllRooms() {
		if room.IsAvailable() {
			rooms = append(rooms, room)
		}
	}

	return rooms
}

func (hub *Hub) Subscribe(listener *Listener) {
	listeners, _ := hub.listeners.LoadOrStore(listener.RoomId, &syncx.Map[string, *Listener]{})
	listeners.Store(listener.Id, listener)
}

func (hub *Hub) Unsubscribe(listener *Listener) {
	if listeners, exists := hub.listeners.Load(listener.RoomId); exists {
		listeners.Delete(listener.Id)
	}
}

// ListenerCount returns how many listeners are subscribed to roomId.
func (hub *Hub) ListenerCount(roomId string) int {
	listeners, exists := hub.listeners.Load(roomId)

	if !exists {
		return 0
	}

	return listeners.Len()
}
