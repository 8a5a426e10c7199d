package schemas

import "github.com/AmirRezaM75/algobattle/entities"

type CreateRoomRequest struct {
	Host       string `json:"host"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	InputSize  int    `json:"inputSize"`
	MaxPlayers int    `json:"maxPlayers"`
}

type JoinRoomRequest struct {
	Name string `json:"name"`
}

type AssignAlgorithmRequest struct {
	Key string `json:"key"`
}

// SubmitInputRequest carries the input fields inline. When Random is set
// the server generates an input of the room's size and Input is ignored.
type SubmitInputRequest struct {
	entities.Input
	Target *int `json:"target,omitempty"`
	Random bool `json:"random,omitempty"`
}

type StartBattleRequest struct {
	Requester string `json:"requester"`
}
