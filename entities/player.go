package entities

import (
	"time"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/harness"
	"github.com/AmirRezaM75/algobattle/oracle"
	"github.com/AmirRezaM75/algobattle/scoring"
)

type Player struct {
	Name      string
	Algorithm *algorithms.Descriptor
	Input     *Input
	// Target is only set for the searching category
	Target    *int
	IsReady   bool
	JoinedAt  time.Time
}

func (player *Player) hasAlgorithm() bool {
	return player.Algorithm != nil
}

// BattleResult is what one player got out of a completed battle.
type BattleResult struct {
	BattleId      string          `json:"battleId"`
	PlayerName    string          `json:"playerName"`
	AlgorithmKey  string          `json:"algorithmKey"`
	AlgorithmName string          `json:"algorithmName"`
	Elapsed       time.Duration   `json:"elapsed"`
	PeakMemory    uint64          `json:"peakMemory"`
	Outcome       harness.Outcome `json:"outcome"`
	Verdict       oracle.Verdict  `json:"verdict"`
	Correct       bool            `json:"correct"`
	Output        any             `json:"output,omitempty"`
	Metric        *int            `json:"metric,omitempty"`
	Error         string          `json:"error,omitempty"`
	Terms         scoring.Terms   `json:"terms"`
	Score         float64         `json:"score"`
	Rank          int             `json:"rank"`
}

// PlayerSnapshot is a read-only copy of a player.
type PlayerSnapshot struct {
	Name          string `json:"name"`
	AlgorithmKey  string `json:"algorithmKey,omitempty"`
	AlgorithmName string `json:"algorithmName,omitempty"`
	Input         *Input `json:"input,omitempty"`
	Target        *int   `json:"target,omitempty"`
	IsReady       bool   `json:"isReady"`
	IsHost        bool   `json:"isHost"`
}

// Contestant is everything the orchestrator needs to run one player.
type Contestant struct {
	Name      string
	Algorithm *algorithms.Descriptor
	Arguments algorithms.Arguments
}
