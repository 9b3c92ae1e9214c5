package game

import (
	"errors"
	"fmt"
	"strings"

	"echoes/locale"
)

var (
	// ErrBackend indicates a transport or parse failure talking to the
	// narrative service.
	ErrBackend = errors.New("narrative backend failure")
	// ErrMalformedOutcome indicates the backend answered successfully but
	// violated the response contract. State is left untouched.
	ErrMalformedOutcome = errors.New("malformed backend outcome")
	// ErrRequestPending indicates a turn resolution is already in flight.
	ErrRequestPending = errors.New("request already pending")
	// ErrNotActive indicates the session is not accepting turns.
	ErrNotActive = errors.New("session is not active")
)

// Resolve applies a backend outcome to the current state: resource decay or
// gift, timer arming, win/lose detection and the inventory/entity merge.
// The returned state already contains the annotated narrator turn, which is
// also returned for the caller's image request.
func Resolve(s State, out Outcome, rng Rand) (State, Turn, error) {
	if err := validateOutcome(out); err != nil {
		return s, Turn{}, err
	}

	t := locale.Table(s.Language)

	// Gift and decrement are mutually exclusive per turn.
	capacity := s.Capacity
	annotation := ""
	if rng.Fraction()*100 < float64(s.GiftChance) {
		gift := GiftMultiplier * s.CapacityDecrement
		capacity += gift
		annotation = fmt.Sprintf("[%s: +%d]", t.CapacityRestored, gift)
	} else {
		capacity -= s.CapacityDecrement
	}

	// Independent draw for time pressure on the next input.
	timerArmed := rng.Fraction()*100 < float64(s.TimerChance) && out.Status == StatusContinue

	text := out.Message
	phase := PhaseActive
	switch out.Status {
	case StatusWin:
		phase = PhaseWon
	case StatusLose:
		phase = PhaseLost
	case StatusContinue:
		if capacity < 0 {
			// Local override: running out of voice loses the game no
			// matter what the backend said.
			phase = PhaseLost
			text += fmt.Sprintf("\n\n(%s)", t.LossEpitaph)
		} else if annotation != "" {
			text += "\n\n" + annotation
		}
	}

	var timer *TimerSpec
	if timerArmed && phase == PhaseActive {
		timer = &TimerSpec{DurationSeconds: rng.IntBetween(TimerMinSeconds, TimerMaxSeconds)}
	}

	turn := Turn{
		ID:           s.NextTurnID,
		Speaker:      SpeakerNarrator,
		Text:         text,
		VisualPrompt: out.ImagePrompt,
		ImageLoading: out.ImagePrompt != "",
	}

	next := s
	next.Transcript = append(cloneTurns(s.Transcript), turn)
	next.NextTurnID = s.NextTurnID + 1
	next.Capacity = capacity
	next.Phase = phase
	next.TurnCount = s.TurnCount + 1
	next.Inventory = subtractSet(mergeSet(s.Inventory, out.InventoryAdd), out.InventoryRemove)
	next.KnownEntities = mergeSet(s.KnownEntities, out.NewCharacters)
	next.ActiveTimer = timer
	next.PendingRequest = false
	next.LastError = ""
	return next, turn, nil
}

func validateOutcome(out Outcome) error {
	if strings.TrimSpace(out.Message) == "" {
		return fmt.Errorf("%w: empty narrative text", ErrMalformedOutcome)
	}
	switch out.Status {
	case StatusContinue, StatusWin, StatusLose:
		return nil
	}
	return fmt.Errorf("%w: unknown status %q", ErrMalformedOutcome, out.Status)
}
