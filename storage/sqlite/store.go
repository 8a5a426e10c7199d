// Package sqlite persists rooms, players and battle results in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/harness"
	"github.com/AmirRezaM75/algobattle/oracle"
	"github.com/AmirRezaM75/algobattle/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

var NotFound = errors.New("record not found")

// Store persists battle state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRoom upserts the room and replaces its players.
func (s *Store) SaveRoom(ctx context.Context, room entities.RoomSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(room.Id) == "" {
		return fmt.Errorf("room id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save room: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO rooms (id, name, host, category, input_size, max_players, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   host = excluded.host,
		   status = excluded.status`,
		room.Id,
		room.Name,
		room.Host,
		string(room.Category),
		room.InputSize,
		room.MaxPlayers,
		string(room.Status),
		toMillis(room.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save room %s: %w", room.Id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE room_id = ?`, room.Id); err != nil {
		return fmt.Errorf("clear players of room %s: %w", room.Id, err)
	}

	for position, player := range room.Players {
		var inputData sql.NullString
		if player.Input != nil {
			encoded, err := json.Marshal(player.Input)
			if err != nil {
				return fmt.Errorf("encode input of %s: %w", player.Name, err)
			}
			inputData = sql.NullString{String: string(encoded), Valid: true}
		}

		var target sql.NullInt64
		if player.Target != nil {
			target = sql.NullInt64{Int64: int64(*player.Target), Valid: true}
		}

		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO players (room_id, position, name, algorithm_key, input_data, target, is_ready)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			room.Id,
			position,
			player.Name,
			player.AlgorithmKey,
			inputData,
			target,
			player.IsReady,
		)
		if err != nil {
			return fmt.Errorf("save player %s: %w", player.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save room: %w", err)
	}
	return nil
}

// GetRoom loads a room and its players in join order.
func (s *Store) GetRoom(ctx context.Context, roomId string) (entities.RoomSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return entities.RoomSnapshot{}, err
	}

	var (
		room      entities.RoomSnapshot
		category  string
		status    string
		createdAt int64
	)

	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, host, category, input_size, max_players, status, created_at
		 FROM rooms WHERE id = ?`,
		roomId,
	).Scan(&room.Id, &room.Name, &room.Host, &category, &room.InputSize, &room.MaxPlayers, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.RoomSnapshot{}, fmt.Errorf("%w: room %s", NotFound, roomId)
	}
	if err != nil {
		return entities.RoomSnapshot{}, fmt.Errorf("get room %s: %w", roomId, err)
	}

	room.Category = algorithms.Category(category)
	room.Status = entities.Status(status)
	room.CreatedAt = fromMillis(createdAt)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT name, algorithm_key, input_data, target, is_ready
		 FROM players WHERE room_id = ? ORDER BY position`,
		roomId,
	)
	if err != nil {
		return entities.RoomSnapshot{}, fmt.Errorf("list players of room %s: %w", roomId, err)
	}
	defer rows.Close()

	room.Players = []entities.PlayerSnapshot{}

	for rows.Next() {
		var (
			player    entities.PlayerSnapshot
			inputData sql.NullString
			target    sql.NullInt64
		)

		if err := rows.Scan(&player.Name, &player.AlgorithmKey, &inputData, &target, &player.IsReady); err != nil {
			return entities.RoomSnapshot{}, fmt.Errorf("scan player: %w", err)
		}

		if inputData.Valid {
			var input entities.Input
			if err := json.Unmarshal([]byte(inputData.String), &input); err != nil {
				return entities.RoomSnapshot{}, fmt.Errorf("decode input of %s: %w", player.Name, err)
			}
			player.Input = &input
		}

		if target.Valid {
			value := int(target.Int64)
			player.Target = &value
		}

		player.IsHost = player.Name == room.Host
		room.Players = append(room.Players, player)
	}

	if err := rows.Err(); err != nil {
		return entities.RoomSnapshot{}, fmt.Errorf("iterate players: %w", err)
	}

	return room, nil
}

// DeleteRoom removes a room and its players. Battle results are kept.
func (s *Store) DeleteRoom(ctx context.Context, roomId string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, roomId); err != nil {
		return fmt.Errorf("delete room %s: %w", roomId, err)
	}
	return nil
}

// SaveResults stores the ranked results of one battle.
func (s *Store) SaveResults(ctx context.Context, roomId, battleId string, results []entities.BattleResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(battleId) == "" {
		return fmt.Errorf("battle id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save results: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	completedAt := toMillis(time.Now())

	for position, result := range results {
		var rawResult sql.NullString
		if result.Output != nil {
			encoded, err := json.Marshal(result.Output)
			if err != nil {
				return fmt.Errorf("encode result of %s: %w", result.PlayerName, err)
			}
			rawResult = sql.NullString{String: string(encoded), Valid: true}
		}

		var metric sql.NullInt64
		if result.Metric != nil {
			metric = sql.NullInt64{Int64: int64(*result.Metric), Valid: true}
		}

		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO battle_results (
			   battle_id, room_id, position, player_name, algorithm_key, algorithm_name,
			   outcome, verdict, correct, time_ns, memory, score, rank,
			   raw_result, metric, error, completed_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			battleId,
			roomId,
			position,
			result.PlayerName,
			result.AlgorithmKey,
			result.AlgorithmName,
			string(result.Outcome),
			string(result.Verdict),
			result.Correct,
			result.Elapsed.Nanoseconds(),
			int64(result.PeakMemory),
			result.Score,
			result.Rank,
			rawResult,
			metric,
			result.Error,
			completedAt,
		)
		if err != nil {
			return fmt.Errorf("save result of %s: %w", result.PlayerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save results: %w", err)
	}
	return nil
}

// ListResults returns the latest battle of a room in ranked order. Raw
// results come back as generic JSON values and score terms are not stored.
func (s *Store) ListResults(ctx context.Context, roomId string) (string, []entities.BattleResult, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	var battleId string
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT battle_id FROM battle_results WHERE room_id = ?
		 ORDER BY completed_at DESC, battle_id DESC LIMIT 1`,
		roomId,
	).Scan(&battleId)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("find battle of room %s: %w", roomId, err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT player_name, algorithm_key, algorithm_name, outcome, verdict, correct,
		        time_ns, memory, score, rank, raw_result, metric, error
		 FROM battle_results WHERE battle_id = ? ORDER BY position`,
		battleId,
	)
	if err != nil {
		return "", nil, fmt.Errorf("list results of battle %s: %w", battleId, err)
	}
	defer rows.Close()

	var results []entities.BattleResult

	for rows.Next() {
		var (
			result    entities.BattleResult
			outcome   string
			verdict   string
			elapsed   int64
			memory    int64
			rawResult sql.NullString
			metric    sql.NullInt64
		)

		if err := rows.Scan(
			&result.PlayerName,
			&result.AlgorithmKey,
			&result.AlgorithmName,
			&outcome,
			&verdict,
			&result.Correct,
			&elapsed,
			&memory,
			&result.Score,
			&result.Rank,
			&rawResult,
			&metric,
			&result.Error,
		); err != nil {
			return "", nil, fmt.Errorf("scan result: %w", err)
		}

		result.BattleId = battleId
		result.Outcome = harness.Outcome(outcome)
		result.Verdict = oracle.Verdict(verdict)
		result.Elapsed = time.Duration(elapsed)
		result.PeakMemory = uint64(memory)

		if rawResult.Valid {
			if err := json.Unmarshal([]byte(rawResult.String), &result.Output); err != nil {
				return "", nil, fmt.Errorf("decode result of %s: %w", result.PlayerName, err)
			}
		}

		if metric.Valid {
			value := int(metric.Int64)
			result.Metric = &value
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("iterate results: %w", err)
	}

	return battleId, results, nil
}
