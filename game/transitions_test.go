package game

import (
	"strings"
	"testing"

	"echoes/locale"
	"echoes/scenario"
)

func TestStartScenarioSeedsActiveSession(t *testing.T) {
	sc, _ := scenario.ByID("tower")
	s := NewState()

	next, turn := StartScenario(s, sc)
	if next.Phase != PhaseActive {
		t.Fatalf("phase = %s, want %s", next.Phase, PhaseActive)
	}
	if next.GoalText != sc.Goal.For(locale.English) {
		t.Fatalf("goal = %q", next.GoalText)
	}
	if len(next.Transcript) != 1 {
		t.Fatalf("transcript length = %d, want 1", len(next.Transcript))
	}
	if turn.Speaker != SpeakerNarrator || !turn.ImageLoading {
		t.Fatal("opening turn should be a loading narrator turn")
	}
	if !strings.Contains(turn.Text, "GOAL:") {
		t.Fatalf("opening turn missing goal line: %q", turn.Text)
	}
}

func TestBeginSubmissionDisarmsTimerAndRaisesGate(t *testing.T) {
	s := NewState()
	s.Phase = PhaseActive
	s.ActiveTimer = &TimerSpec{DurationSeconds: 12}

	next, turn := BeginSubmission(s, "open the door")
	if next.ActiveTimer != nil {
		t.Fatal("timer should disarm on submission")
	}
	if !next.PendingRequest {
		t.Fatal("pending gate should raise")
	}
	if turn.Speaker != SpeakerPlayer || turn.Text != "open the door" {
		t.Fatalf("unexpected player turn %+v", turn)
	}
}

func TestFailSubmissionLeavesEverythingElseUntouched(t *testing.T) {
	s := NewState()
	s.Phase = PhaseActive
	s, _ = BeginSubmission(s, "shout")
	before := s

	next := FailSubmission(s, "the void disrupted your thoughts")
	if next.PendingRequest {
		t.Fatal("pending gate should drop")
	}
	if next.LastError == "" {
		t.Fatal("expected surfaced error")
	}
	if next.Capacity != before.Capacity || next.Phase != before.Phase {
		t.Fatal("failure must not change resources or phase")
	}
	if len(next.Transcript) != len(before.Transcript) {
		t.Fatal("failure must not change the transcript")
	}
}

func TestPatchImageLocatesTurnByIdentity(t *testing.T) {
	s := NewState()
	sc, _ := scenario.ByID("cyber")
	s, opening := StartScenario(s, sc)
	// Transcript grows before the image resolves.
	s, _ = BeginSubmission(s, "look around")

	next := PatchImage(s, opening.ID, "data:image/png;base64,xyz")
	i := next.FindTurn(opening.ID)
	if i < 0 {
		t.Fatal("opening turn vanished")
	}
	if next.Transcript[i].ImageRef == "" || next.Transcript[i].ImageLoading {
		t.Fatal("image patch should resolve the opening turn")
	}
	// The later player turn is untouched.
	last := next.Transcript[len(next.Transcript)-1]
	if last.Speaker != SpeakerPlayer || last.ImageRef != "" {
		t.Fatal("patch must not touch other turns")
	}
}

func TestPatchImageIsNoOpForMissingOrPlayerTurn(t *testing.T) {
	s := NewState()
	s.Phase = PhaseActive
	s, playerTurn := BeginSubmission(s, "hello")

	if next := PatchImage(s, 999, "ref"); len(next.Transcript) != len(s.Transcript) || next.Transcript[0].ImageRef != "" {
		t.Fatal("patching a missing id must be a no-op")
	}
	if next := PatchImage(s, playerTurn.ID, "ref"); next.Transcript[0].ImageRef != "" {
		t.Fatal("patching a player turn must be a no-op")
	}
}

func TestRestartPreservesConfiguration(t *testing.T) {
	s := NewState()
	s.Language = locale.Slovak
	s.ScenarioID = "forest"
	s.CapacityDecrement = 7
	s.TimerChance = 80
	s.GiftChance = 40
	s.Difficulty = DifficultyJoke
	sc, _ := scenario.ByID("forest")
	s, _ = StartScenario(s, sc)
	s.Inventory = []string{"feather"}
	s.TurnCount = 9

	next := Restart(s, 65)
	if next.Phase != PhaseNotStarted {
		t.Fatalf("phase = %s, want %s", next.Phase, PhaseNotStarted)
	}
	if len(next.Transcript) != 0 || next.TurnCount != 0 || len(next.Inventory) != 0 {
		t.Fatal("restart should clear run state")
	}
	if next.Language != locale.Slovak || next.ScenarioID != "forest" {
		t.Fatal("restart should preserve language and scenario")
	}
	if next.CapacityDecrement != 7 || next.TimerChance != 80 || next.GiftChance != 40 {
		t.Fatal("restart should preserve tuning")
	}
	if next.Difficulty != DifficultyJoke {
		t.Fatal("restart should preserve difficulty")
	}
	if next.Capacity != 65 {
		t.Fatalf("capacity = %d, want configured 65", next.Capacity)
	}
}

func TestNormalizeLoadedResetsTransientsAndUnknownDifficulty(t *testing.T) {
	s := NewState()
	s.Phase = PhaseActive
	s.PendingRequest = true
	s.ActiveTimer = &TimerSpec{DurationSeconds: 15}
	s.Difficulty = "LEGACY_TAG"
	s.Transcript = []Turn{
		{Speaker: SpeakerNarrator, Text: "a", ImageLoading: true},
		{Speaker: SpeakerPlayer, Text: "b"},
	}

	next := NormalizeLoaded(s)
	if next.PendingRequest || next.ActiveTimer != nil || next.LastError != "" {
		t.Fatal("transients should reset on load")
	}
	if next.Difficulty != DifficultyChallenging {
		t.Fatalf("difficulty = %s, want fallback %s", next.Difficulty, DifficultyChallenging)
	}
	if next.Transcript[0].ImageLoading {
		t.Fatal("loading flags should clear on load")
	}
	if next.Transcript[0].ID != 1 || next.Transcript[1].ID != 2 {
		t.Fatalf("legacy turns should gain identities, got %d and %d",
			next.Transcript[0].ID, next.Transcript[1].ID)
	}
	if next.NextTurnID != 3 {
		t.Fatalf("next turn id = %d, want 3", next.NextTurnID)
	}
}

func TestPhaseTerminal(t *testing.T) {
	if PhaseActive.Terminal() || PhaseNotStarted.Terminal() {
		t.Fatal("active and start phases are not terminal")
	}
	if !PhaseWon.Terminal() || !PhaseLost.Terminal() {
		t.Fatal("win and lose phases are terminal")
	}
}
