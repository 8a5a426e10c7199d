package entities

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/AmirRezaM75/algobattle/algorithms"
)

type Status string

const (
	Waiting          Status = "WAITING"
	Ready            Status = "READY"
	BattleInProgress Status = "BATTLE_IN_PROGRESS"
	Completed        Status = "COMPLETED"
)

// Room owns its players. Every exported method takes the room mutex, so a
// check and the mutation it guards are applied as one unit.
type Room struct {
	Id         string
	Name       string
	Category   algorithms.Category
	InputSize  int
	MaxPlayers int
	CreatedAt  time.Time

	mutex     sync.Mutex
	host      string
	status    Status
	players   []*Player
	battleId  string
	results   []BattleResult
	destroyed bool
}

func NewRoom(id, host, name string, category algorithms.Category, inputSize, maxPlayers int, now time.Time) (*Room, error) {
	if maxPlayers < 2 {
		return nil, fmt.Errorf("%w: max players must be at least 2", InvalidConfiguration)
	}

	if inputSize <= 0 {
		return nil, fmt.Errorf("%w: input size must be positive", InvalidConfiguration)
	}

	if host == "" {
		return nil, fmt.Errorf("%w: host name is required", InvalidConfiguration)
	}

	if !slices.Contains(algorithms.Categories(), category) {
		return nil, fmt.Errorf("%w: unknown category %q", InvalidConfiguration, category)
	}

	if name == "" {
		name = host + "'s room"
	}

	room := &Room{
		Id:         id,
		Name:       name,
		Category:   category,
		InputSize:  inputSize,
		MaxPlayers: maxPlayers,
		CreatedAt:  now,
		host:       host,
		status:     Waiting,
	}

	room.players = append(room.players, &Player{Name: host, JoinedAt: now})

	return room, nil
}

func (room *Room) Status() Status {
	room.mutex.Lock()
	defer room.mutex.Unlock()
	return room.status
}

func (room *Room) HostName() string {
	room.mutex.Lock()
	defer room.mutex.Unlock()
	return room.host
}

// IsAvailable reports whether the room is waiting and has a free seat.
func (room *Room) IsAvailable() bool {
	room.mutex.Lock()
	defer room.mutex.Unlock()
	return !room.destroyed && room.status == Waiting && len(room.players) < room.MaxPlayers
}

func (room *Room) IsDestroyed() bool {
	room.mutex.Lock()
	defer room.mutex.Unlock()
	return room.destroyed
}

func (room *Room) find(name string) *Player {
	for _, player := range room.players {
		if player.Name == name {
			return player
		}
	}
	return nil
}

// accepting reports whether participant-facing changes to existing players
// are allowed.
func (room *Room) accepting() error {
	if room.destroyed {
		return RoomNotFound
	}
	if room.status != Waiting && room.status != Ready {
		return fmt.Errorf("%w: room is %s", RoomNotAccepting, room.status)
	}
	return nil
}

// isReady is the readiness rule as a pure function of the current players.
func (room *Room) isReady() bool {
	if len(room.players) < 2 {
		return false
	}
	for _, player := range room.players {
		if !player.hasAlgorithm() || !player.IsReady {
			return false
		}
	}
	return true
}

// evaluate moves the room between WAITING and READY. It must run in the same
// critical section as the change that triggered it.
func (room *Room) evaluate() {
	if room.status != Waiting && room.status != Ready {
		return
	}
	if room.isReady() {
		room.status = Ready
	} else {
		room.status = Waiting
	}
}

func (room *Room) AddPlayer(name string, now time.Time) error {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if room.destroyed {
		return RoomNotFound
	}

	if name == "" {
		return fmt.Errorf("%w: player name is required", InvalidConfiguration)
	}

	if room.status != Waiting {
		return fmt.Errorf("%w: room is %s", RoomNotAccepting, room.status)
	}

	if len(room.players) >= room.MaxPlayers {
		return RoomFull
	}

	if room.find(name) != nil {
		return fmt.Errorf("%w: %s", DuplicateName, name)
	}

	room.players = append(room.players, &Player{Name: name, JoinedAt: now})
	room.evaluate()

	return nil
}

// RemovePlayer removes name from the room. When the last player leaves, the
// room is destroyed and empty is true. If the host leaves, the next player
// in join order becomes host.
func (room *Room) RemovePlayer(name string) (empty bool, err error) {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if room.destroyed {
		return false, RoomNotFound
	}

	if room.status == BattleInProgress {
		return false, fmt.Errorf("%w: battle in progress", RoomNotAccepting)
	}

	index := slices.IndexFunc(room.players, func(player *Player) bool {
		return player.Name == name
	})

	if index == -1 {
		return false, fmt.Errorf("%w: %s", UnknownPlayer, name)
	}

	room.players = slices.Delete(room.players, index, index+1)

	if len(room.players) == 0 {
		room.destroyed = true
		return true, nil
	}

	if room.host == name {
		room.host = room.players[0].Name
	}

	room.evaluate()

	return false, nil
}

func (room *Room) AssignAlgorithm(name string, descriptor *algorithms.Descriptor) error {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if err := room.accepting(); err != nil {
		return err
	}

	if descriptor == nil || descriptor.Category != room.Category {
		return fmt.Errorf("%w: room category is %s", AlgorithmCategoryMismatch, room.Category)
	}

	player := room.find(name)

	if player == nil {
		return fmt.Errorf("%w: %s", UnknownPlayer, name)
	}

	for _, other := range room.players {
		if other != player && other.Algorithm.Equal(descriptor) {
			return fmt.Errorf("%w: %s is used by %s", AlgorithmAlreadyTaken, descriptor.Key, other.Name)
		}
	}

	player.Algorithm = descriptor
	room.evaluate()

	return nil
}

func (room *Room) SubmitInput(name string, input Input, target *int) error {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if err := room.accepting(); err != nil {
		return err
	}

	player := room.find(name)

	if player == nil {
		return fmt.Errorf("%w: %s", UnknownPlayer, name)
	}

	if err := input.Validate(room.Category); err != nil {
		return err
	}

	if size := input.Size(room.Category); size != room.InputSize {
		return fmt.Errorf("%w: got %d, want %d", InputSizeMismatch, size, room.InputSize)
	}

	if room.Category.RequiresTarget() && target == nil {
		return MissingTarget
	}

	if !room.Category.RequiresTarget() && target != nil {
		return UnexpectedTarget
	}

	submitted := input.Clone()
	player.Input = &submitted
	player.Target = nil
	if target != nil {
		value := *target
		player.Target = &value
	}
	player.IsReady = true
	room.evaluate()

	return nil
}

// StartBattle moves a ready room into battle on the host's request.
func (room *Room) StartBattle(requester string) error {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if room.destroyed {
		return RoomNotFound
	}

	if requester != room.host {
		return fmt.Errorf("%w: %s", NotHost, requester)
	}

	if room.status != Ready {
		return fmt.Errorf("%w: room is %s", NotReady, room.status)
	}

	room.status = BattleInProgress

	return nil
}

// Contestants returns the players of an in-progress battle in join order,
// each with its own copy of the arguments.
func (room *Room) Contestants() ([]Contestant, error) {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if room.destroyed {
		return nil, RoomNotFound
	}

	if room.status != BattleInProgress {
		return nil, fmt.Errorf("%w: room is %s", NotInBattle, room.status)
	}

	contestants := make([]Contestant, 0, len(room.players))

	for _, player := range room.players {
		contestants = append(contestants, Contestant{
			Name:      player.Name,
			Algorithm: player.Algorithm,
			Arguments: player.Input.Arguments(player.Target),
		})
	}

	return contestants, nil
}

// CompleteBattle attaches results and moves the room to COMPLETED.
func (room *Room) CompleteBattle(battleId string, results []BattleResult) error {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if room.destroyed {
		return RoomNotFound
	}

	if room.status != BattleInProgress {
		return fmt.Errorf("%w: room is %s", NotInBattle, room.status)
	}

	room.battleId = battleId
	room.results = slices.Clone(results)
	room.status = Completed

	return nil
}

// AbortBattle returns an in-progress room to WAITING or READY without
// results, so the host can start again.
func (room *Room) AbortBattle() error {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if room.destroyed {
		return RoomNotFound
	}

	if room.status != BattleInProgress {
		return fmt.Errorf("%w: room is %s", NotInBattle, room.status)
	}

	room.status = Waiting
	room.evaluate()

	return nil
}

// Results returns the ranked results of a completed battle.
func (room *Room) Results() (string, []BattleResult) {
	room.mutex.Lock()
	defer room.mutex.Unlock()
	return room.battleId, slices.Clone(room.results)
}

// Delete destroys the room on the host's request. A room in battle cannot
// be deleted.
func (room *Room) Delete(requester string) error {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if room.destroyed {
		return RoomNotFound
	}

	if requester != room.host {
		return fmt.Errorf("%w: %s", NotHost, requester)
	}

	if room.status == BattleInProgress {
		return fmt.Errorf("%w: battle in progress", RoomNotAccepting)
	}

	room.destroyed = true

	return nil
}

// Expire destroys the room if it is older than maxAge at now and no battle
// is running. It reports whether the room was destroyed by this call.
func (room *Room) Expire(now time.Time, maxAge time.Duration) bool {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	if room.destroyed || room.status == BattleInProgress || now.Sub(room.CreatedAt) <= maxAge {
		return false
	}

	room.destroyed = true

	return true
}

// Destroy marks the room as torn down. Later operations fail with
// RoomNotFound.
func (room *Room) Destroy() {
	room.mutex.Lock()
	defer room.mutex.Unlock()
	room.destroyed = true
}

type RoomSnapshot struct {
	Id         string              `json:"id"`
	Name       string              `json:"name"`
	Host       string              `json:"host"`
	Category   algorithms.Category `json:"category"`
	InputSize  int                 `json:"inputSize"`
	MaxPlayers int                 `json:"maxPlayers"`
	Status     Status              `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	Players    []PlayerSnapshot    `json:"players"`
}

// Snapshot returns a consistent copy of the room.
func (room *Room) Snapshot() RoomSnapshot {
	room.mutex.Lock()
	defer room.mutex.Unlock()

	snapshot := RoomSnapshot{
		Id:         room.Id,
		Name:       room.Name,
		Host:       room.host,
		Category:   room.Category,
		InputSize:  room.InputSize,
		MaxPlayers: room.MaxPlayers,
		Status:     room.status,
		CreatedAt:  room.CreatedAt,
		Players:    make([]PlayerSnapshot, 0, len(room.players)),
	}

	for _, player := range room.players {
		playerSnapshot := PlayerSnapshot{
			Name:    player.Name,
			IsReady: player.IsReady,
			IsHost:  player.Name == room.host,
		}
		if player.Algorithm != nil {
			playerSnapshot.AlgorithmKey = player.Algorithm.Key
			playerSnapshot.AlgorithmName = player.Algorithm.Name
		}
		if player.Input != nil {
			input := player.Input.Clone()
			playerSnapshot.Input = &input
		}
		if player.Target != nil {
			target := *player.Target
			playerSnapshot.Target = &target
		}
		snapshot.Players = append(snapshot.Players, playerSnapshot)
	}

	return snapshot
}
