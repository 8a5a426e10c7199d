package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/harness"
	"github.com/AmirRezaM75/algobattle/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "battles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func sampleRoom() entities.RoomSnapshot {
	target := 5

	return entities.RoomSnapshot{
		Id:         "665f1c2ab3e4d5f6a7b8c9d0",
		Name:       "arena",
		Host:       "alice",
		Category:   algorithms.Searching,
		InputSize:  5,
		MaxPlayers: 2,
		Status:     entities.Ready,
		CreatedAt:  time.Date(2026, time.February, 22, 16, 40, 0, 0, time.UTC),
		Players: []entities.PlayerSnapshot{
			{
				Name:         "alice",
				AlgorithmKey: "linear_search",
				Input:        &entities.Input{Array: []int{1, 2, 5, 8, 9}},
				Target:       &target,
				IsReady:      true,
				IsHost:       true,
			},
			{Name: "bob"},
		},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battles.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestSaveGetRoomRoundTrip(t *testing.T) {
	store := openTempStore(t)
	room := sampleRoom()

	require.NoError(t, store.SaveRoom(t.Context(), room))

	got, err := store.GetRoom(t.Context(), room.Id)
	require.NoError(t, err)
	assert.True(t, room.CreatedAt.Equal(got.CreatedAt))

	got.CreatedAt = room.CreatedAt
	assert.Equal(t, room, got)
}

func TestSaveRoomReplacesPlayers(t *testing.T) {
	store := openTempStore(t)
	room := sampleRoom()
	require.NoError(t, store.SaveRoom(t.Context(), room))

	room.Players = room.Players[:1]
	room.Status = entities.Waiting
	require.NoError(t, store.SaveRoom(t.Context(), room))

	got, err := store.GetRoom(t.Context(), room.Id)
	require.NoError(t, err)
	assert.Equal(t, entities.Waiting, got.Status)
	assert.Len(t, got.Players, 1)
}

func TestDeleteRoomKeepsResults(t *testing.T) {
	store := openTempStore(t)
	room := sampleRoom()
	require.NoError(t, store.SaveRoom(t.Context(), room))
	require.NoError(t, store.SaveResults(t.Context(), room.Id, "battle-1", []entities.BattleResult{{PlayerName: "alice", Rank: 1}}))

	require.NoError(t, store.DeleteRoom(t.Context(), room.Id))

	_, err := store.GetRoom(t.Context(), room.Id)
	assert.ErrorIs(t, err, NotFound)

	battleId, results, err := store.ListResults(t.Context(), room.Id)
	require.NoError(t, err)
	assert.Equal(t, "battle-1", battleId)
	assert.Len(t, results, 1)
}

func TestSaveListResultsRoundTrip(t *testing.T) {
	store := openTempStore(t)
	metric := 3

	results := []entities.BattleResult{
		{
			PlayerName:    "bob",
			AlgorithmKey:  "linear_search",
			AlgorithmName: "Linear Search",
			Elapsed:       1500 * time.Nanosecond,
			PeakMemory:    2048,
			Outcome:       harness.Completed,
			Verdict:       oracle.Correct,
			Correct:       true,
			Output:        2,
			Metric:        &metric,
			Score:         0.9,
			Rank:          1,
		},
		{
			PlayerName:    "alice",
			AlgorithmKey:  "binary_search",
			AlgorithmName: "Binary Search",
			Elapsed:       time.Millisecond,
			Outcome:       harness.Faulted,
			Verdict:       oracle.Unknown,
			Error:         "strategy panicked",
			Score:         0.1,
			Rank:          2,
		},
	}

	require.NoError(t, store.SaveResults(t.Context(), "room-1", "battle-1", results))

	battleId, got, err := store.ListResults(t.Context(), "room-1")
	require.NoError(t, err)
	assert.Equal(t, "battle-1", battleId)
	require.Len(t, got, 2)

	assert.Equal(t, "bob", got[0].PlayerName)
	assert.Equal(t, "battle-1", got[0].BattleId)
	assert.Equal(t, 1500*time.Nanosecond, got[0].Elapsed)
	assert.Equal(t, uint64(2048), got[0].PeakMemory)
	assert.Equal(t, harness.Completed, got[0].Outcome)
	assert.True(t, got[0].Correct)
	assert.EqualValues(t, 2, got[0].Output)
	require.NotNil(t, got[0].Metric)
	assert.Equal(t, 3, *got[0].Metric)

	assert.Equal(t, "alice", got[1].PlayerName)
	assert.Equal(t, harness.Faulted, got[1].Outcome)
	assert.Nil(t, got[1].Output)
	assert.Nil(t, got[1].Metric)
	assert.Equal(t, "strategy panicked", got[1].Error)
}

func TestListResultsWithoutBattle(t *testing.T) {
	store := openTempStore(t)

	battleId, results, err := store.ListResults(t.Context(), "room-1")
	require.NoError(t, err)
	assert.Empty(t, battleId)
	assert.Empty(t, results)
}
