// Package game holds the session data model and the turn-resolution engine.
// All state changes are expressed as pure derivations from a previous state so
// interleaved async updates can never act on a stale snapshot.
package game

import "echoes/locale"

// Phase is the lifecycle state of a session.
type Phase string

const (
	PhaseNotStarted Phase = "START"
	PhaseActive     Phase = "PLAYING"
	PhaseWon        Phase = "WIN"
	PhaseLost       Phase = "LOSE"
)

// Terminal reports whether the phase accepts no further turns.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Speaker identifies who produced a transcript turn.
type Speaker string

const (
	SpeakerPlayer   Speaker = "user"
	SpeakerNarrator Speaker = "model"
)

// Difficulty selects the narrator personality sent to the backend. It does
// not affect local resolution logic.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "EASY"
	DifficultyNormal      Difficulty = "NORMAL"
	DifficultyChallenging Difficulty = "CHALLENGING"
	DifficultyHard        Difficulty = "HARD"
	DifficultyJoke        Difficulty = "JOKE"
	DifficultyDebug       Difficulty = "DEBUG"
)

// Normalize maps unknown tags (older saves used a smaller set) to the
// default instead of rejecting them.
func (d Difficulty) Normalize() Difficulty {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyChallenging,
		DifficultyHard, DifficultyJoke, DifficultyDebug:
		return d
	}
	return DifficultyChallenging
}

// Status is the backend-declared result of a turn, subject to the local
// capacity override.
type Status string

const (
	StatusContinue Status = "CONTINUE"
	StatusWin      Status = "WIN"
	StatusLose     Status = "LOSE"
)

// Outcome is the structured turn result returned by the narrative backend.
// Shape is guarded; narrative coherence is not.
type Outcome struct {
	Message         string   `json:"message"`
	ImagePrompt     string   `json:"imagePrompt"`
	Status          Status   `json:"gameStatus"`
	InventoryAdd    []string `json:"inventoryAdd,omitempty"`
	InventoryRemove []string `json:"inventoryRemove,omitempty"`
	NewCharacters   []string `json:"newCharacters,omitempty"`
	SoundEffect     string   `json:"soundEffect,omitempty"`
}

// Turn is one transcript entry. ID is assigned at creation and stays stable
// so the async image patch can locate the turn no matter how much the
// transcript has grown in the meantime.
type Turn struct {
	ID           int64   `json:"id"`
	Speaker      Speaker `json:"role"`
	Text         string  `json:"text"`
	VisualPrompt string  `json:"image_prompt,omitempty"`
	ImageRef     string  `json:"image_url,omitempty"`
	ImageLoading bool    `json:"image_loading,omitempty"`
}

// TimerSpec describes an armed countdown for the upcoming input.
type TimerSpec struct {
	DurationSeconds int `json:"duration_seconds"`
}

// Default tuning, matching the start-screen defaults.
const (
	InitialCapacity  = 50
	DefaultDecrement = 3
	DefaultTimerPct  = 50
	DefaultGiftPct   = 15

	// GiftMultiplier scales the decrement into the restored amount.
	GiftMultiplier = 3

	// TimerMinSeconds..TimerMaxSeconds is the inclusive draw range for an
	// armed countdown.
	TimerMinSeconds = 10
	TimerMaxSeconds = 20
)

// WaitSentinel is the literal player action meaning "wait/observe". It
// bypasses the character budget but resolves like any other turn.
const WaitSentinel = "..."

// State is the single mutable root of a game session.
type State struct {
	Phase             Phase           `json:"status"`
	Language          locale.Language `json:"language"`
	Transcript        []Turn          `json:"history"`
	Capacity          int             `json:"char_limit"`
	CapacityDecrement int             `json:"char_decrement"`
	GoalText          string          `json:"current_goal"`
	ScenarioID        string          `json:"scenario_id"`
	TurnCount         int             `json:"turn_count"`
	PendingRequest    bool            `json:"-"`
	Inventory         []string        `json:"inventory"`
	KnownEntities     []string        `json:"characters_met"`
	TimerChance       int             `json:"time_pressure_chance"`
	GiftChance        int             `json:"char_gift_chance"`
	ActiveTimer       *TimerSpec      `json:"active_timer,omitempty"`
	Difficulty        Difficulty      `json:"difficulty"`
	LastError         string          `json:"-"`

	// NextTurnID is the sequence source for turn identities.
	NextTurnID int64 `json:"next_turn_id"`
}

// NewState returns the pre-game state with default tuning.
func NewState() State {
	return State{
		Phase:             PhaseNotStarted,
		Language:          locale.English,
		Capacity:          InitialCapacity,
		CapacityDecrement: DefaultDecrement,
		ScenarioID:        "princess",
		TimerChance:       DefaultTimerPct,
		GiftChance:        DefaultGiftPct,
		Difficulty:        DifficultyHard,
		NextTurnID:        1,
	}
}

// FindTurn returns the transcript index of the turn with the given id, or -1.
func (s State) FindTurn(id int64) int {
	for i := range s.Transcript {
		if s.Transcript[i].ID == id {
			return i
		}
	}
	return -1
}

// mergeSet unions names into set, preserving insertion order and suppressing
// duplicates.
func mergeSet(set, names []string) []string {
	out := cloneStrings(set)
	for _, name := range names {
		if !containsString(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// subtractSet removes names from set by exact match. Removing an absent name
// is a no-op.
func subtractSet(set, names []string) []string {
	if len(names) == 0 {
		return cloneStrings(set)
	}
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}
	out := make([]string, 0, len(set))
	for _, name := range set {
		if !drop[name] {
			out = append(out, name)
		}
	}
	return out
}

func containsString(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneTurns(ts []Turn) []Turn {
	if len(ts) == 0 {
		return nil
	}
	out := make([]Turn, len(ts))
	copy(out, ts)
	return out
}
