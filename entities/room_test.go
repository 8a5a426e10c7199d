package entities

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func descriptor(t *testing.T, category algorithms.Category, key string) *algorithms.Descriptor {
	t.Helper()

	found, err := algorithms.NewDefaultRegistry().Lookup(category, key)
	require.NoError(t, err)

	return found
}

func newSortingRoom(t *testing.T, maxPlayers int) *Room {
	t.Helper()

	room, err := NewRoom("room-1", "alice", "arena", algorithms.Sorting, 3, maxPlayers, now)
	require.NoError(t, err)

	return room
}

func TestNewRoom(t *testing.T) {
	room := newSortingRoom(t, 2)

	snapshot := room.Snapshot()
	assert.Equal(t, Waiting, snapshot.Status)
	assert.Equal(t, "alice", snapshot.Host)
	require.Len(t, snapshot.Players, 1)
	assert.True(t, snapshot.Players[0].IsHost)
}

func TestNewRoomInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		host       string
		category   algorithms.Category
		inputSize  int
		maxPlayers int
	}{
		{"single seat", "alice", algorithms.Sorting, 3, 1},
		{"zero input", "alice", algorithms.Sorting, 0, 2},
		{"negative input", "alice", algorithms.Sorting, -1, 2},
		{"no host", "", algorithms.Sorting, 3, 2},
		{"unknown category", "alice", algorithms.Category("poetry"), 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoom("id", tt.host, "", tt.category, tt.inputSize, tt.maxPlayers, now)
			assert.ErrorIs(t, err, InvalidConfiguration)
			assert.Equal(t, "INVALID_CONFIGURATION", Reason(err))
		})
	}
}

func TestScenarioTwoPlayersBecomeReady(t *testing.T) {
	room := newSortingRoom(t, 2)

	require.NoError(t, room.AddPlayer("bob", now))
	require.NoError(t, room.AssignAlgorithm("alice", descriptor(t, algorithms.Sorting, "merge_sort")))
	require.NoError(t, room.AssignAlgorithm("bob", descriptor(t, algorithms.Sorting, "quick_sort")))
	require.NoError(t, room.SubmitInput("alice", Input{Array: []int{3, 1, 2}}, nil))
	assert.Equal(t, Waiting, room.Status())
	require.NoError(t, room.SubmitInput("bob", Input{Array: []int{9, 8, 7}}, nil))

	assert.Equal(t, Ready, room.Status())
}

func TestAddPlayerBeyondCapacity(t *testing.T) {
	for maxPlayers := 2; maxPlayers <= 6; maxPlayers++ {
		room := newSortingRoom(t, maxPlayers)

		for i := 1; i < maxPlayers; i++ {
			require.NoError(t, room.AddPlayer(fmt.Sprintf("player-%d", i), now))
		}

		for attempt := 0; attempt < 3; attempt++ {
			err := room.AddPlayer(fmt.Sprintf("late-%d", attempt), now)
			assert.ErrorIs(t, err, RoomFull)
			assert.Len(t, room.Snapshot().Players, maxPlayers)
		}
	}
}

func TestAddPlayerRejections(t *testing.T) {
	room := newSortingRoom(t, 3)

	assert.ErrorIs(t, room.AddPlayer("alice", now), DuplicateName)
	assert.ErrorIs(t, room.AddPlayer("", now), InvalidConfiguration)

	require.NoError(t, room.AddPlayer("bob", now))
	require.NoError(t, room.AssignAlgorithm("alice", descriptor(t, algorithms.Sorting, "merge_sort")))
	require.NoError(t, room.AssignAlgorithm("bob", descriptor(t, algorithms.Sorting, "heap_sort")))
	require.NoError(t, room.SubmitInput("alice", Input{Array: []int{1, 2, 3}}, nil))
	require.NoError(t, room.SubmitInput("bob", Input{Array: []int{1, 2, 3}}, nil))
	require.Equal(t, Ready, room.Status())

	assert.ErrorIs(t, room.AddPlayer("carol", now), RoomNotAccepting)
}

func TestAssignSameAlgorithmTwice(t *testing.T) {
	room := newSortingRoom(t, 2)
	require.NoError(t, room.AddPlayer("bob", now))

	mergeSort := descriptor(t, algorithms.Sorting, "merge_sort")
	require.NoError(t, room.AssignAlgorithm("alice", mergeSort))

	err := room.AssignAlgorithm("bob", mergeSort)
	assert.ErrorIs(t, err, AlgorithmAlreadyTaken)
	assert.Equal(t, "ALGORITHM_ALREADY_TAKEN", Reason(err))

	snapshot := room.Snapshot()
	assert.Equal(t, "merge_sort", snapshot.Players[0].AlgorithmKey)
	assert.Empty(t, snapshot.Players[1].AlgorithmKey)

	// re-assigning your own pick is not a conflict
	assert.NoError(t, room.AssignAlgorithm("alice", mergeSort))
}

func TestAssignAlgorithmRejections(t *testing.T) {
	room := newSortingRoom(t, 2)

	assert.ErrorIs(t, room.AssignAlgorithm("nobody", descriptor(t, algorithms.Sorting, "merge_sort")), UnknownPlayer)
	assert.ErrorIs(t, room.AssignAlgorithm("alice", descriptor(t, algorithms.Searching, "linear_search")), AlgorithmCategoryMismatch)
	assert.ErrorIs(t, room.AssignAlgorithm("alice", nil), AlgorithmCategoryMismatch)
}

func TestSubmitInputRules(t *testing.T) {
	target := 5

	sorting := newSortingRoom(t, 2)
	assert.ErrorIs(t, sorting.SubmitInput("alice", Input{Array: []int{1, 2}}, nil), InputSizeMismatch)
	assert.ErrorIs(t, sorting.SubmitInput("alice", Input{Array: []int{1, 2, 3}}, &target), UnexpectedTarget)
	assert.ErrorIs(t, sorting.SubmitInput("bob", Input{Array: []int{1, 2, 3}}, nil), UnknownPlayer)
	assert.False(t, sorting.Snapshot().Players[0].IsReady)

	searching, err := NewRoom("room-2", "alice", "", algorithms.Searching, 5, 2, now)
	require.NoError(t, err)
	assert.ErrorIs(t, searching.SubmitInput("alice", Input{Array: []int{1, 2, 5, 8, 9}}, nil), MissingTarget)
	require.NoError(t, searching.SubmitInput("alice", Input{Array: []int{1, 2, 5, 8, 9}}, &target))

	snapshot := searching.Snapshot()
	assert.True(t, snapshot.Players[0].IsReady)
	require.NotNil(t, snapshot.Players[0].Target)
	assert.Equal(t, 5, *snapshot.Players[0].Target)

	knapsack, err := NewRoom("room-3", "alice", "", algorithms.Knapsack, 3, 2, now)
	require.NoError(t, err)
	assert.ErrorIs(t, knapsack.SubmitInput("alice", Input{Values: []int{1, 2, 3}, Weights: []int{1}, Capacity: 5}, nil), InvalidInput)
	assert.ErrorIs(t, knapsack.SubmitInput("alice", Input{Values: []int{1, 2, 3}, Weights: []int{1, 1, 1}, Capacity: 1 << 50}, nil), InvalidInput)
	assert.ErrorIs(t, knapsack.SubmitInput("alice", Input{Values: []int{1, 2, 3}, Weights: []int{1, 1, 1}, Capacity: maxKnapsackCells / 4}, nil), InvalidInput)
	assert.NoError(t, knapsack.SubmitInput("alice", Input{Values: []int{60, 100, 120}, Weights: []int{10, 20, 30}, Capacity: 50}, nil))
}

func TestSubmittedInputIsCopied(t *testing.T) {
	room := newSortingRoom(t, 2)
	array := []int{3, 2, 1}

	require.NoError(t, room.SubmitInput("alice", Input{Array: array}, nil))
	array[0] = 100

	assert.Equal(t, []int{3, 2, 1}, room.Snapshot().Players[0].Input.Array)
}

// TestReadinessUnderEveryOrder applies every interleaving of the four
// assign/submit steps and checks the readiness rule after each step.
func TestReadinessUnderEveryOrder(t *testing.T) {
	type step struct {
		name string
		run  func(room *Room) error
	}

	steps := []step{
		{"alice assigns", func(room *Room) error {
			return room.AssignAlgorithm("alice", descriptor(t, algorithms.Sorting, "merge_sort"))
		}},
		{"bob assigns", func(room *Room) error {
			return room.AssignAlgorithm("bob", descriptor(t, algorithms.Sorting, "bubble_sort"))
		}},
		{"alice submits", func(room *Room) error {
			return room.SubmitInput("alice", Input{Array: []int{1, 2, 3}}, nil)
		}},
		{"bob submits", func(room *Room) error {
			return room.SubmitInput("bob", Input{Array: []int{3, 2, 1}}, nil)
		}},
	}

	for _, order := range permutations(len(steps)) {
		room := newSortingRoom(t, 2)
		require.NoError(t, room.AddPlayer("bob", now))

		for _, index := range order {
			require.NoError(t, steps[index].run(room), steps[index].name)

			snapshot := room.Snapshot()
			expected := len(snapshot.Players) >= 2
			for _, player := range snapshot.Players {
				expected = expected && player.AlgorithmKey != "" && player.IsReady
			}

			if expected {
				assert.Equal(t, Ready, snapshot.Status, "order %v", order)
			} else {
				assert.Equal(t, Waiting, snapshot.Status, "order %v", order)
			}
		}
	}
}

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}

	var result [][]int
	for _, rest := range permutations(n - 1) {
		for position := 0; position <= len(rest); position++ {
			order := make([]int, 0, n)
			order = append(order, rest[:position]...)
			order = append(order, n-1)
			order = append(order, rest[position:]...)
			result = append(result, order)
		}
	}
	return result
}

func readyRoom(t *testing.T) *Room {
	t.Helper()

	room := newSortingRoom(t, 3)
	require.NoError(t, room.AddPlayer("bob", now))
	require.NoError(t, room.AssignAlgorithm("alice", descriptor(t, algorithms.Sorting, "merge_sort")))
	require.NoError(t, room.AssignAlgorithm("bob", descriptor(t, algorithms.Sorting, "quick_sort")))
	require.NoError(t, room.SubmitInput("alice", Input{Array: []int{3, 1, 2}}, nil))
	require.NoError(t, room.SubmitInput("bob", Input{Array: []int{2, 3, 1}}, nil))
	require.Equal(t, Ready, room.Status())

	return room
}

func TestRemovePlayerUnknownIsNoop(t *testing.T) {
	room := readyRoom(t)
	before := room.Snapshot()

	for i := 0; i < 3; i++ {
		empty, err := room.RemovePlayer("nobody")
		assert.ErrorIs(t, err, UnknownPlayer)
		assert.False(t, empty)
		assert.Equal(t, before, room.Snapshot())
	}
}

func TestRemovePlayerReevaluatesReadiness(t *testing.T) {
	room := readyRoom(t)

	empty, err := room.RemovePlayer("bob")
	require.NoError(t, err)
	assert.False(t, empty)
	assert.Equal(t, Waiting, room.Status())
}

func TestRemoveHostTransfersHost(t *testing.T) {
	room := readyRoom(t)

	_, err := room.RemovePlayer("alice")
	require.NoError(t, err)
	assert.Equal(t, "bob", room.HostName())
}

func TestRemoveLastPlayerDestroysRoom(t *testing.T) {
	room := newSortingRoom(t, 2)

	empty, err := room.RemovePlayer("alice")
	require.NoError(t, err)
	assert.True(t, empty)
	assert.True(t, room.IsDestroyed())

	assert.ErrorIs(t, room.AddPlayer("bob", now), RoomNotFound)
}

func TestStartBattle(t *testing.T) {
	room := newSortingRoom(t, 2)
	require.NoError(t, room.AddPlayer("bob", now))
	assert.ErrorIs(t, room.StartBattle("alice"), NotReady)

	room = readyRoom(t)
	assert.ErrorIs(t, room.StartBattle("bob"), NotHost)
	require.NoError(t, room.StartBattle("alice"))
	assert.Equal(t, BattleInProgress, room.Status())

	_, err := room.RemovePlayer("bob")
	assert.ErrorIs(t, err, RoomNotAccepting)
	assert.ErrorIs(t, room.AssignAlgorithm("bob", descriptor(t, algorithms.Sorting, "heap_sort")), RoomNotAccepting)
	assert.ErrorIs(t, room.SubmitInput("bob", Input{Array: []int{1, 2, 3}}, nil), RoomNotAccepting)
}

func TestBattleLifecycle(t *testing.T) {
	room := readyRoom(t)

	_, err := room.Contestants()
	assert.ErrorIs(t, err, NotInBattle)
	assert.ErrorIs(t, room.CompleteBattle("battle", nil), NotInBattle)

	require.NoError(t, room.StartBattle("alice"))

	contestants, err := room.Contestants()
	require.NoError(t, err)
	require.Len(t, contestants, 2)
	assert.Equal(t, "alice", contestants[0].Name)
	assert.Equal(t, "merge_sort", contestants[0].Algorithm.Key)
	assert.Equal(t, []int{3, 1, 2}, contestants[0].Arguments.Array)

	results := []BattleResult{{PlayerName: "alice", Rank: 1}, {PlayerName: "bob", Rank: 2}}
	require.NoError(t, room.CompleteBattle("battle-1", results))
	assert.Equal(t, Completed, room.Status())

	battleId, attached := room.Results()
	assert.Equal(t, "battle-1", battleId)
	assert.Equal(t, results, attached)

	assert.ErrorIs(t, room.CompleteBattle("battle-2", results), NotInBattle)
}

func TestAbortBattleReturnsToReady(t *testing.T) {
	room := readyRoom(t)
	require.NoError(t, room.StartBattle("alice"))

	require.NoError(t, room.AbortBattle())
	assert.Equal(t, Ready, room.Status())
}

func TestReason(t *testing.T) {
	assert.Equal(t, "ROOM_FULL", Reason(RoomFull))
	assert.Equal(t, "DUPLICATE_NAME", Reason(fmt.Errorf("%w: bob", DuplicateName)))
	assert.Equal(t, "UNKNOWN_ALGORITHM", Reason(fmt.Errorf("wrapped: %w", algorithms.UnknownAlgorithm)))
	assert.Equal(t, "INTERNAL", Reason(fmt.Errorf("boom")))
}

func TestDeleteRoom(t *testing.T) {
	room := readyRoom(t)
	require.NoError(t, room.StartBattle("alice"))

	assert.ErrorIs(t, room.Delete("bob"), NotHost)
	assert.ErrorIs(t, room.Delete("alice"), RoomNotAccepting)
	assert.False(t, room.IsDestroyed())

	require.NoError(t, room.AbortBattle())
	require.NoError(t, room.Delete("alice"))
	assert.True(t, room.IsDestroyed())
	assert.ErrorIs(t, room.Delete("alice"), RoomNotFound)
}

func TestDeleteRacingStartBattle(t *testing.T) {
	for i := 0; i < 200; i++ {
		room := readyRoom(t)

		var wg sync.WaitGroup
		var startErr, deleteErr error

		wg.Add(2)
		go func() {
			defer wg.Done()
			startErr = room.StartBattle("alice")
		}()
		go func() {
			defer wg.Done()
			deleteErr = room.Delete("alice")
		}()
		wg.Wait()

		require.False(t, startErr == nil && deleteErr == nil, "room was deleted during its battle")
		if startErr == nil {
			assert.False(t, room.IsDestroyed())
			assert.Equal(t, BattleInProgress, room.Status())
		}
	}
}

func TestExpire(t *testing.T) {
	later := now.Add(2 * time.Hour)

	fresh := readyRoom(t)
	assert.False(t, fresh.Expire(now.Add(time.Minute), time.Hour))

	battling := readyRoom(t)
	require.NoError(t, battling.StartBattle("alice"))
	assert.False(t, battling.Expire(later, time.Hour))
	assert.False(t, battling.IsDestroyed())

	idle := readyRoom(t)
	assert.True(t, idle.Expire(later, time.Hour))
	assert.True(t, idle.IsDestroyed())
	assert.False(t, idle.Expire(later, time.Hour))
}

func TestDestroyedRoomCannotCompleteBattle(t *testing.T) {
	room := readyRoom(t)
	require.NoError(t, room.StartBattle("alice"))

	room.Destroy()

	assert.ErrorIs(t, room.CompleteBattle("battle-1", nil), RoomNotFound)
	assert.ErrorIs(t, room.AbortBattle(), RoomNotFound)
	_, err := room.Contestants()
	assert.ErrorIs(t, err, RoomNotFound)

	battleId, results := room.Results()
	assert.Empty(t, battleId)
	assert.Empty(t, results)
}
