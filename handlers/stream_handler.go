package handlers

import (
	"net/http"
	"slices"

	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/pkg/logx"
	"github.com/AmirRezaM75/algobattle/schemas"
	"github.com/AmirRezaM75/algobattle/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StreamHandler upgrades clients to a websocket carrying one room's events.
type StreamHandler struct {
	hub         *entities.Hub
	roomService services.RoomService
	upgrader    websocket.Upgrader
}

func NewStreamHandler(router chi.Router, hub *entities.Hub, roomService services.RoomService, allowedOrigins []string) {
	streamHandler := StreamHandler{
		hub:         hub,
		roomService: roomService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}

	router.Get("/rooms/{id}/events", streamHandler.events)
}

// checkOrigin allows requests without an Origin header, and any origin when
// no list or "*" is configured.
func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
			return true
		}

		return slices.Contains(allowedOrigins, origin)
	}
}

func (streamHandler StreamHandler) events(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "id")

	room, err := streamHandler.roomService.GetRoom(roomId)
	if err != nil {
		fail(w, err)
		return
	}

	connection, err := streamHandler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Logger.Error(
			err.Error(),
			zap.String("desc", "could not upgrade http request"),
			zap.String("roomId", roomId),
		)
		return
	}

	listener := entities.NewListener(uuid.NewString(), roomId, r.URL.Query().Get("name"), connection)

	streamHandler.hub.Subscribe(listener)

	// The room may have been torn down before the subscription landed.
	if streamHandler.hub.FindRoom(roomId) == nil {
		streamHandler.hub.Unsubscribe(listener)
		listener.Kick()
		return
	}

	body, err := schemas.RoomUpdatedEvent(room)
	if err != nil {
		logx.Logger.Error(err.Error(), zap.String("desc", "could not encode event"), zap.String("roomId", roomId))
	} else {
		listener.Send(body)
	}

	go listener.Write()

	listener.Read(streamHandler.hub)
}
