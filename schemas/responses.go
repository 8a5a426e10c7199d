package schemas

import (
	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/entities"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type AlgorithmResponse struct {
	Key      string              `json:"key"`
	Name     string              `json:"name"`
	Category algorithms.Category `json:"category"`
}

func NewAlgorithmResponses(descriptors []*algorithms.Descriptor) []AlgorithmResponse {
	responses := make([]AlgorithmResponse, 0, len(descriptors))

	for _, descriptor := range descriptors {
		responses = append(responses, AlgorithmResponse{
			Key:      descriptor.Key,
			Name:     descriptor.Name,
			Category: descriptor.Category,
		})
	}

	return responses
}

type ResultsResponse struct {
	RoomId   string                  `json:"roomId"`
	BattleId string                  `json:"battleId"`
	Winner   string                  `json:"winner,omitempty"`
	Results  []entities.BattleResult `json:"results"`
}

// NewResultsResponse expects results in ranked order; the first one wins.
func NewResultsResponse(roomId, battleId string, results []entities.BattleResult) ResultsResponse {
	response := ResultsResponse{
		RoomId:   roomId,
		BattleId: battleId,
		Results:  results,
	}

	if response.Results == nil {
		response.Results = []entities.BattleResult{}
	}

	if len(results) > 0 {
		response.Winner = results[0].PlayerName
	}

	return response
}
