package game

import (
	"fmt"

	"echoes/locale"
	"echoes/scenario"
)

// Transition functions, one per logical event. Each takes the previous state
// and returns a new one; handlers never touch fields directly.

// StartScenario seeds an active session from a catalog entry. The opening
// narrator turn carries the localized situation and goal; its image is
// requested asynchronously by the caller.
func StartScenario(s State, sc scenario.Scenario) (State, Turn) {
	t := locale.Table(s.Language)
	turn := Turn{
		ID:           s.NextTurnID,
		Speaker:      SpeakerNarrator,
		Text:         fmt.Sprintf("%s\n\n%s: %s", sc.Situation.For(s.Language), t.GoalLabel, sc.Goal.For(s.Language)),
		VisualPrompt: sc.ImagePrompt,
		ImageLoading: true,
	}

	next := s
	next.Phase = PhaseActive
	next.ScenarioID = sc.ID
	next.GoalText = sc.Goal.For(s.Language)
	next.Transcript = []Turn{turn}
	next.NextTurnID = s.NextTurnID + 1
	next.TurnCount = 0
	next.Inventory = nil
	next.KnownEntities = nil
	next.ActiveTimer = nil
	next.PendingRequest = false
	next.LastError = ""
	return next, turn
}

// BeginSubmission optimistically appends the player turn, disarms any timer
// belonging to the answered prompt and raises the single-flight gate.
func BeginSubmission(s State, text string) (State, Turn) {
	turn := Turn{ID: s.NextTurnID, Speaker: SpeakerPlayer, Text: text}
	next := s
	next.Transcript = append(cloneTurns(s.Transcript), turn)
	next.NextTurnID = s.NextTurnID + 1
	next.ActiveTimer = nil
	next.PendingRequest = true
	next.LastError = ""
	return next, turn
}

// FailSubmission records a backend failure: the gate drops and the error
// surfaces, transcript and resources stay as the optimistic update left them.
func FailSubmission(s State, message string) State {
	next := s
	next.PendingRequest = false
	next.LastError = message
	return next
}

// PatchImage sets the resolved image on the turn with the given id. A no-op
// when the turn no longer exists, e.g. the session was reset mid-flight.
func PatchImage(s State, turnID int64, imageRef string) State {
	i := s.FindTurn(turnID)
	if i < 0 || s.Transcript[i].Speaker != SpeakerNarrator {
		return s
	}
	next := s
	next.Transcript = cloneTurns(s.Transcript)
	next.Transcript[i].ImageRef = imageRef
	next.Transcript[i].ImageLoading = false
	return next
}

// Restart returns to the start screen, preserving language, scenario
// selection and all tunable configuration.
func Restart(s State, initialCapacity int) State {
	next := NewState()
	next.Language = s.Language
	next.ScenarioID = s.ScenarioID
	next.Capacity = initialCapacity
	next.CapacityDecrement = s.CapacityDecrement
	next.TimerChance = s.TimerChance
	next.GiftChance = s.GiftChance
	next.Difficulty = s.Difficulty
	return next
}

// NormalizeLoaded repairs a deserialized session before it replaces the live
// one: transient flags reset, unknown difficulty tags fall back to the
// default, turn identities are made consistent again.
func NormalizeLoaded(s State) State {
	next := s
	next.PendingRequest = false
	next.ActiveTimer = nil
	next.LastError = ""
	next.Difficulty = s.Difficulty.Normalize()
	if !locale.Valid(next.Language) {
		next.Language = locale.English
	}
	next.Transcript = cloneTurns(s.Transcript)
	var maxID int64
	for i := range next.Transcript {
		next.Transcript[i].ImageLoading = false
		if next.Transcript[i].ID > maxID {
			maxID = next.Transcript[i].ID
		}
	}
	// Old exports may predate turn identities; reassign when absent.
	if maxID == 0 {
		for i := range next.Transcript {
			next.Transcript[i].ID = int64(i + 1)
		}
		maxID = int64(len(next.Transcript))
	}
	if next.NextTurnID <= maxID {
		next.NextTurnID = maxID + 1
	}
	return next
}
