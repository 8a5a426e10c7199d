package entities

import (
	"errors"

	"github.com/AmirRezaM75/algobattle/algorithms"
)

var (
	InvalidConfiguration      = errors.New("room configuration is not valid")
	RoomFull                  = errors.New("room is full")
	DuplicateName             = errors.New("player name is already taken")
	RoomNotAccepting          = errors.New("room is not accepting changes")
	UnknownPlayer             = errors.New("player not found")
	AlgorithmAlreadyTaken     = errors.New("algorithm is already taken by another player")
	AlgorithmCategoryMismatch = errors.New("algorithm does not belong to the room category")
	InputSizeMismatch         = errors.New("input size does not match the room")
	MissingTarget             = errors.New("target is required for this category")
	UnexpectedTarget          = errors.New("target is not allowed for this category")
	InvalidInput              = errors.New("input is not valid")
	NotHost                   = errors.New("requester is not the room host")
	NotReady                  = errors.New("room is not ready")
	NotInBattle               = errors.New("room has no battle in progress")
	RoomNotFound              = errors.New("room not found")
)

// reasons is ordered so that Reason is deterministic for wrapped errors.
var reasons = []struct {
	err    error
	reason string
}{
	{InvalidConfiguration, "INVALID_CONFIGURATION"},
	{RoomFull, "ROOM_FULL"},
	{DuplicateName, "DUPLICATE_NAME"},
	{RoomNotAccepting, "ROOM_NOT_ACCEPTING"},
	{UnknownPlayer, "UNKNOWN_PLAYER"},
	{AlgorithmAlreadyTaken, "ALGORITHM_ALREADY_TAKEN"},
	{AlgorithmCategoryMismatch, "ALGORITHM_CATEGORY_MISMATCH"},
	{InputSizeMismatch, "INPUT_SIZE_MISMATCH"},
	{MissingTarget, "MISSING_TARGET"},
	{UnexpectedTarget, "UNEXPECTED_TARGET"},
	{InvalidInput, "INVALID_INPUT"},
	{NotHost, "NOT_HOST"},
	{NotReady, "NOT_READY"},
	{NotInBattle, "NOT_IN_BATTLE"},
	{RoomNotFound, "ROOM_NOT_FOUND"},
	{algorithms.UnknownAlgorithm, "UNKNOWN_ALGORITHM"},
}

// Reason returns the machine-readable reason of a configuration or
// coordination error, or "INTERNAL" for anything else.
func Reason(err error) string {
	for _, candidate := range reasons {
		if errors.Is(err, candidate.err) {
			return candidate.reason
		}
	}
	return "INTERNAL"
}
