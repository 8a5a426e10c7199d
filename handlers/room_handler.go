package handlers

import (
	"net/http"

	"github.com/AmirRezaM75/algobattle/schemas"
	"github.com/AmirRezaM75/algobattle/services"
	"github.com/go-chi/chi/v5"
)

type RoomHandler struct {
	roomService services.RoomService
}

func NewRoomHandler(router chi.Router, roomService services.RoomService) {
	roomHandler := RoomHandler{roomService: roomService}

	router.Get("/rooms", roomHandler.available)
	router.Post("/rooms", roomHandler.create)
	router.Get("/rooms/{id}", roomHandler.show)
	router.Delete("/rooms/{id}", roomHandler.delete)
	router.Post("/rooms/{id}/players", roomHandler.join)
	router.Delete("/rooms/{id}/players/{name}", roomHandler.leave)
	router.Put("/rooms/{id}/players/{name}/algorithm", roomHandler.assign)
	router.Put("/rooms/{id}/players/{name}/input", roomHandler.submit)
	router.Post("/rooms/{id}/battle", roomHandler.start)
	router.Get("/rooms/{id}/results", roomHandler.results)
}

func (roomHandler RoomHandler) available(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, roomHandler.roomService.AvailableRooms())
}

func (roomHandler RoomHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload schemas.CreateRoomRequest

	if err := decode(&payload, r); err != nil {
		invalidPayload(w, err)
		return
	}

	room, err := roomHandler.roomService.CreateRoom(r.Context(), payload)
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusCreated, room)
}

func (roomHandler RoomHandler) show(w http.ResponseWriter, r *http.Request) {
	room, err := roomHandler.roomService.GetRoom(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusOK, room)
}

func (roomHandler RoomHandler) delete(w http.ResponseWriter, r *http.Request) {
	requester := r.URL.Query().Get("requester")

	err := roomHandler.roomService.DeleteRoom(r.Context(), chi.URLParam(r, "id"), requester)
	if err != nil {
		fail(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (roomHandler RoomHandler) join(w http.ResponseWriter, r *http.Request) {
	var payload schemas.JoinRoomRequest

	if err := decode(&payload, r); err != nil {
		invalidPayload(w, err)
		return
	}

	room, err := roomHandler.roomService.JoinRoom(r.Context(), chi.URLParam(r, "id"), payload.Name)
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusCreated, room)
}

func (roomHandler RoomHandler) leave(w http.ResponseWriter, r *http.Request) {
	err := roomHandler.roomService.LeaveRoom(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "name"))
	if err != nil {
		fail(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (roomHandler RoomHandler) assign(w http.ResponseWriter, r *http.Request) {
	var payload schemas.AssignAlgorithmRequest

	if err := decode(&payload, r); err != nil {
		invalidPayload(w, err)
		return
	}

	room, err := roomHandler.roomService.AssignAlgorithm(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "name"), payload.Key)
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusOK, room)
}

func (roomHandler RoomHandler) submit(w http.ResponseWriter, r *http.Request) {
	var payload schemas.SubmitInputRequest

	if err := decode(&payload, r); err != nil {
		invalidPayload(w, err)
		return
	}

	room, err := roomHandler.roomService.SubmitInput(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "name"), payload)
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusOK, room)
}

func (roomHandler RoomHandler) start(w http.ResponseWriter, r *http.Request) {
	var payload schemas.StartBattleRequest

	if err := decode(&payload, r); err != nil {
		invalidPayload(w, err)
		return
	}

	room, err := roomHandler.roomService.StartBattle(r.Context(), chi.URLParam(r, "id"), payload.Requester)
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusAccepted, room)
}

func (roomHandler RoomHandler) results(w http.ResponseWriter, r *http.Request) {
	response, err := roomHandler.roomService.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusOK, response)
}
