package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/harness"
	"github.com/AmirRezaM75/algobattle/oracle"
	"github.com/AmirRezaM75/algobattle/pkg/logx"
	"github.com/AmirRezaM75/algobattle/schemas"
	"github.com/AmirRezaM75/algobattle/scoring"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var BattleAborted = errors.New("battle aborted")

// BattleService runs battles: every contestant through the harness and the
// oracle in join order, then scoring and ranking across the batch.
type BattleService struct {
	weights    scoring.Weights
	timeout    time.Duration
	notifier   Notifier
	repository ResultRepository
	running    sync.WaitGroup
}

// NewBattleService expects valid weights. A non-positive timeout leaves
// strategy invocations bounded only by the battle context.
func NewBattleService(weights scoring.Weights, timeout time.Duration, notifier Notifier, repository ResultRepository) *BattleService {
	return &BattleService{
		weights:    weights,
		timeout:    timeout,
		notifier:   notifier,
		repository: repository,
	}
}

// Start runs the battle of room in the background. The room must already be
// in battle.
func (battleService *BattleService) Start(ctx context.Context, room *entities.Room) {
	battleService.running.Add(1)

	go func() {
		defer battleService.running.Done()

		battleId := uuid.NewString()

		if _, err := battleService.run(ctx, room, battleId); err != nil {
			logx.Logger.Error(
				err.Error(),
				zap.String("desc", "battle failed"),
				zap.String("roomId", room.Id),
				zap.String("battleId", battleId),
			)

			body, encodeErr := schemas.BattleErrorEvent(room.Id, battleId, err.Error())
			notify(battleService.notifier, room.Id, false, body, encodeErr)
		}
	}()
}

// Wait blocks until every started battle has returned.
func (battleService *BattleService) Wait() {
	battleService.running.Wait()
}

// Run executes the battle of room synchronously and returns the results in
// ranked order.
func (battleService *BattleService) Run(ctx context.Context, room *entities.Room) ([]entities.BattleResult, error) {
	return battleService.run(ctx, room, uuid.NewString())
}

func (battleService *BattleService) run(ctx context.Context, room *entities.Room, battleId string) (results []entities.BattleResult, err error) {
	contestants, err := room.Contestants()

	if err != nil {
		return nil, err
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", BattleAborted, recovered)
		}

		if err != nil {
			results = nil
			if abortErr := room.AbortBattle(); abortErr == nil {
				battleService.roomUpdated(room)
			}
		}
	}()

	names := make([]string, len(contestants))
	for i, contestant := range contestants {
		names[i] = contestant.Name
	}

	body, encodeErr := schemas.BattleStartingEvent(room.Id, battleId, names)
	notify(battleService.notifier, room.Id, false, body, encodeErr)

	results = make([]entities.BattleResult, 0, len(contestants))

	for position, contestant := range contestants {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", BattleAborted, ctx.Err())
		}

		result := battleService.execute(ctx, room, contestant)
		result.BattleId = battleId
		results = append(results, result)

		body, encodeErr := schemas.BattleProgressEvent(room.Id, battleId, contestant.Name, position+1, len(contestants), result.Outcome)
		notify(battleService.notifier, room.Id, false, body, encodeErr)
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", BattleAborted, ctx.Err())
	}

	ranked := battleService.rank(results)

	if err := room.CompleteBattle(battleId, ranked); err != nil {
		return nil, err
	}

	battleService.persist(ctx, room, battleId, ranked)

	body, encodeErr = schemas.BattleCompletedEvent(room.Id, battleId, ranked)
	notify(battleService.notifier, room.Id, false, body, encodeErr)

	battleService.roomUpdated(room)

	return ranked, nil
}

// execute runs one contestant. Nothing a strategy does makes it fail.
func (battleService *BattleService) execute(ctx context.Context, room *entities.Room, contestant entities.Contestant) entities.BattleResult {
	result := entities.BattleResult{
		PlayerName: contestant.Name,
		Verdict:    oracle.Unknown,
	}

	if contestant.Algorithm != nil {
		result.AlgorithmKey = contestant.Algorithm.Key
		result.AlgorithmName = contestant.Algorithm.Name
	}

	invocationCtx, cancel := battleService.invocationContext(ctx)
	defer cancel()

	// The strategy gets its own copy so the oracle judges the arguments
	// exactly as they were submitted.
	arguments := contestant.Arguments.Clone()

	measurement := harness.Execute(invocationCtx, func(ctx context.Context) (any, error) {
		output, err := contestant.Algorithm.Strategy(ctx, arguments)
		if err != nil {
			return nil, err
		}
		return output, nil
	})

	result.Elapsed = measurement.Elapsed
	result.PeakMemory = measurement.PeakMemory
	result.Outcome = measurement.Outcome

	if measurement.Err != nil {
		result.Error = measurement.Err.Error()
	}

	if !measurement.Succeeded() {
		logx.Logger.Warn(
			"strategy did not complete",
			zap.String("roomId", room.Id),
			zap.String("player", contestant.Name),
			zap.String("algorithm", result.AlgorithmKey),
			zap.String("outcome", string(measurement.Outcome)),
			zap.String("error", result.Error),
		)
		return result
	}

	output, ok := measurement.Output.(algorithms.Result)

	if !ok {
		result.Verdict = oracle.Incorrect
		return result
	}

	result.Output = output.Value
	result.Metric = output.Metric
	result.Verdict = oracle.Judge(room.Category, contestant.Arguments, output.Value)
	result.Correct = result.Verdict != oracle.Incorrect

	return result
}

func (battleService *BattleService) invocationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if battleService.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, battleService.timeout)
}

// rank scores every result against the batch baselines and returns them in
// ranked order.
func (battleService *BattleService) rank(results []entities.BattleResult) []entities.BattleResult {
	times := make([]float64, len(results))
	memories := make([]float64, len(results))

	for i, result := range results {
		times[i] = float64(result.Elapsed.Nanoseconds())
		memories[i] = float64(result.PeakMemory)
	}

	fastestTime := scoring.Min(times)
	lowestMemory := scoring.Min(memories)

	scores := make([]float64, len(results))

	for i := range results {
		results[i].Terms = scoring.Compute(results[i].Correct, times[i], memories[i], fastestTime, lowestMemory)
		results[i].Score = battleService.weights.Score(results[i].Terms)
		scores[i] = results[i].Score
	}

	order, ranks := scoring.Rank(scores)
	ranked := make([]entities.BattleResult, 0, len(results))

	for _, index := range order {
		result := results[index]
		result.Rank = ranks[index]
		ranked = append(ranked, result)
	}

	return ranked
}

func (battleService *BattleService) persist(ctx context.Context, room *entities.Room, battleId string, results []entities.BattleResult) {
	if battleService.repository == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)

	if err := battleService.repository.SaveRoom(ctx, room.Snapshot()); err != nil {
		logx.Logger.Error(
			err.Error(),
			zap.String("desc", "could not persist room"),
			zap.String("roomId", room.Id),
		)
	}

	if err := battleService.repository.SaveResults(ctx, room.Id, battleId, results); err != nil {
		logx.Logger.Error(
			err.Error(),
			zap.String("desc", "could not persist battle results"),
			zap.String("roomId", room.Id),
			zap.String("battleId", battleId),
		)
	}
}

func (battleService *BattleService) roomUpdated(room *entities.Room) {
	body, err := schemas.RoomUpdatedEvent(room.Snapshot())
	notify(battleService.notifier, room.Id, false, body, err)
}
