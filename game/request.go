package game

import "echoes/locale"

// HistoryEntry is one transcript pair sent to the narrative backend.
type HistoryEntry struct {
	Speaker Speaker
	Text    string
}

// TurnRequest is everything the narrative backend needs to resolve a turn.
// Secrets steer narration without ever reaching the player.
type TurnRequest struct {
	History    []HistoryEntry
	Input      string
	Goal       string
	Capacity   int
	Language   locale.Language
	Inventory  []string
	Entities   []string
	Difficulty Difficulty
	Secrets    string
}

// NewTurnRequest builds a backend request from the pre-submission state.
func NewTurnRequest(s State, input, secrets string) TurnRequest {
	history := make([]HistoryEntry, 0, len(s.Transcript))
	for _, t := range s.Transcript {
		history = append(history, HistoryEntry{Speaker: t.Speaker, Text: t.Text})
	}
	return TurnRequest{
		History:    history,
		Input:      input,
		Goal:       s.GoalText,
		Capacity:   s.Capacity,
		Language:   s.Language,
		Inventory:  cloneStrings(s.Inventory),
		Entities:   cloneStrings(s.KnownEntities),
		Difficulty: s.Difficulty,
		Secrets:    secrets,
	}
}
