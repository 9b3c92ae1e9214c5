package game

import (
	"errors"
	"strings"
	"testing"
)

// stubRand replays scripted draws so resolution is deterministic.
type stubRand struct {
	fractions []float64
	ints      []int
	fi, ii    int
}

func (r *stubRand) Fraction() float64 {
	v := r.fractions[r.fi]
	r.fi++
	return v
}

func (r *stubRand) IntBetween(lo, hi int) int {
	if r.ii >= len(r.ints) {
		return lo
	}
	v := r.ints[r.ii]
	r.ii++
	if v < lo || v > hi {
		return lo
	}
	return v
}

func activeState() State {
	s := NewState()
	s.Phase = PhaseActive
	s.Capacity = 50
	s.CapacityDecrement = 3
	s.GiftChance = 0
	s.TimerChance = 0
	s.GoalText = "Escape."
	return s
}

func continueOutcome() Outcome {
	return Outcome{
		Message:     "The door creaks open.",
		ImagePrompt: "a creaking door",
		Status:      StatusContinue,
	}
}

func TestResolveDecrementsCapacityDeterministically(t *testing.T) {
	s := activeState()
	rng := &stubRand{fractions: []float64{0.99, 0.99}}

	next, turn, err := Resolve(s, continueOutcome(), rng)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if next.Capacity != 47 {
		t.Fatalf("capacity = %d, want 47", next.Capacity)
	}
	if next.Phase != PhaseActive {
		t.Fatalf("phase = %s, want %s", next.Phase, PhaseActive)
	}
	if next.TurnCount != 1 {
		t.Fatalf("turn count = %d, want 1", next.TurnCount)
	}
	if turn.Speaker != SpeakerNarrator {
		t.Fatalf("speaker = %s, want narrator", turn.Speaker)
	}
	if !turn.ImageLoading {
		t.Fatal("narrator turn with a visual prompt should start loading")
	}
}

func TestResolveGiftRestoresTripleDecrement(t *testing.T) {
	s := activeState()
	s.GiftChance = 100
	rng := &stubRand{fractions: []float64{0.0, 0.99}}

	next, turn, err := Resolve(s, continueOutcome(), rng)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if next.Capacity != 59 {
		t.Fatalf("capacity = %d, want 59 (gift of 3x3)", next.Capacity)
	}
	if !strings.Contains(turn.Text, "CAPACITY RESTORED: +9") {
		t.Fatalf("expected gift annotation, got %q", turn.Text)
	}
}

func TestResolveCapacityDeltaIsExactlyGiftOrDecrement(t *testing.T) {
	s := activeState()
	s.GiftChance = 50
	for _, frac := range []float64{0.0, 0.2, 0.49, 0.5, 0.7, 0.99} {
		rng := &stubRand{fractions: []float64{frac, 0.99}}
		next, _, err := Resolve(s, continueOutcome(), rng)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		delta := next.Capacity - s.Capacity
		if delta != GiftMultiplier*s.CapacityDecrement && delta != -s.CapacityDecrement {
			t.Fatalf("fraction %v: capacity delta %d is neither gift nor decrement", frac, delta)
		}
	}
}

func TestResolveOverridesContinueWithLossWhenCapacityExhausted(t *testing.T) {
	s := activeState()
	s.Capacity = 2
	rng := &stubRand{fractions: []float64{0.99, 0.99}}

	next, turn, err := Resolve(s, continueOutcome(), rng)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if next.Phase != PhaseLost {
		t.Fatalf("phase = %s, want %s despite backend CONTINUE", next.Phase, PhaseLost)
	}
	if !strings.Contains(turn.Text, "fades into nothingness") {
		t.Fatalf("expected loss epitaph, got %q", turn.Text)
	}
	if next.ActiveTimer != nil {
		t.Fatal("timer must not arm on a lost session")
	}
}

func TestResolveAdoptsBackendWinAndLose(t *testing.T) {
	tests := []struct {
		status Status
		phase  Phase
	}{
		{StatusWin, PhaseWon},
		{StatusLose, PhaseLost},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			s := activeState()
			out := continueOutcome()
			out.Status = tt.status
			rng := &stubRand{fractions: []float64{0.99, 0.99}}
			next, _, err := Resolve(s, out, rng)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if next.Phase != tt.phase {
				t.Fatalf("phase = %s, want %s", next.Phase, tt.phase)
			}
		})
	}
}

func TestResolveArmsTimerWithinRange(t *testing.T) {
	s := activeState()
	s.TimerChance = 100
	rng := &stubRand{fractions: []float64{0.99, 0.0}, ints: []int{14}}

	next, _, err := Resolve(s, continueOutcome(), rng)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if next.ActiveTimer == nil {
		t.Fatal("expected armed timer")
	}
	d := next.ActiveTimer.DurationSeconds
	if d < TimerMinSeconds || d > TimerMaxSeconds {
		t.Fatalf("duration %d outside [%d, %d]", d, TimerMinSeconds, TimerMaxSeconds)
	}
}

func TestResolveNeverArmsTimerOnTerminalOutcome(t *testing.T) {
	s := activeState()
	s.TimerChance = 100
	out := continueOutcome()
	out.Status = StatusWin
	rng := &stubRand{fractions: []float64{0.99, 0.0}, ints: []int{12}}

	next, _, err := Resolve(s, out, rng)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if next.ActiveTimer != nil {
		t.Fatal("timer must not arm when the backend ended the game")
	}
}

func TestResolveMergesInventoryAndEntitiesWithoutDuplicates(t *testing.T) {
	s := activeState()
	s.Inventory = []string{"rusty key", "candle"}
	s.KnownEntities = []string{"The Princess"}
	out := continueOutcome()
	out.InventoryAdd = []string{"candle", "silver blade"}
	out.InventoryRemove = []string{"rusty key", "not carried"}
	out.NewCharacters = []string{"The Princess", "The Narrator"}
	rng := &stubRand{fractions: []float64{0.99, 0.99}}

	next, _, err := Resolve(s, out, rng)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wantInv := []string{"candle", "silver blade"}
	if len(next.Inventory) != len(wantInv) {
		t.Fatalf("inventory = %v, want %v", next.Inventory, wantInv)
	}
	for i, item := range wantInv {
		if next.Inventory[i] != item {
			t.Fatalf("inventory = %v, want %v", next.Inventory, wantInv)
		}
	}
	wantEnt := []string{"The Princess", "The Narrator"}
	for i, name := range wantEnt {
		if next.KnownEntities[i] != name {
			t.Fatalf("entities = %v, want %v", next.KnownEntities, wantEnt)
		}
	}
}

func TestResolveRepeatedGainsStayDeduplicated(t *testing.T) {
	s := activeState()
	out := continueOutcome()
	out.InventoryAdd = []string{"coin"}
	for i := 0; i < 3; i++ {
		rng := &stubRand{fractions: []float64{0.99, 0.99}}
		var err error
		s, _, err = Resolve(s, out, rng)
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
	}
	if len(s.Inventory) != 1 || s.Inventory[0] != "coin" {
		t.Fatalf("inventory = %v, want single coin", s.Inventory)
	}
}

func TestResolveRejectsMalformedOutcome(t *testing.T) {
	tests := []struct {
		name string
		out  Outcome
	}{
		{name: "empty message", out: Outcome{Status: StatusContinue}},
		{name: "unknown status", out: Outcome{Message: "hm", Status: "MAYBE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := activeState()
			rng := &stubRand{fractions: []float64{0.99, 0.99}}
			next, _, err := Resolve(s, tt.out, rng)
			if !errors.Is(err, ErrMalformedOutcome) {
				t.Fatalf("expected ErrMalformedOutcome, got %v", err)
			}
			if next.Capacity != s.Capacity || next.TurnCount != s.TurnCount {
				t.Fatal("state must not mutate on malformed outcome")
			}
			if len(next.Transcript) != len(s.Transcript) {
				t.Fatal("transcript must not grow on malformed outcome")
			}
		})
	}
}
