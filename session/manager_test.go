package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"echoes/command"
	"echoes/countdown"
	"echoes/game"
	"echoes/locale"
)

// scriptedRand replays fixed draws.
type scriptedRand struct {
	fractions []float64
	i         int
}

func (r *scriptedRand) Fraction() float64 {
	if r.i >= len(r.fractions) {
		return 0.99
	}
	v := r.fractions[r.i]
	r.i++
	return v
}

func (r *scriptedRand) IntBetween(lo, hi int) int { return lo }

// scriptedStory returns queued outcomes, optionally blocking until released.
type scriptedStory struct {
	mu       sync.Mutex
	outcomes []game.Outcome
	err      error
	release  chan struct{}
	requests []game.TurnRequest
}

func (s *scriptedStory) GenerateTurn(ctx context.Context, req game.TurnRequest) (game.Outcome, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return game.Outcome{}, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.outcomes[0]
	if len(s.outcomes) > 1 {
		s.outcomes = s.outcomes[1:]
	}
	return out, nil
}

// scriptedImages resolves images, optionally after a gate.
type scriptedImages struct {
	ref     string
	err     error
	release chan struct{}
}

func (s *scriptedImages) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if s.release != nil {
		<-s.release
	}
	return s.ref, s.err
}

func continueOut(msg string) game.Outcome {
	return game.Outcome{Message: msg, ImagePrompt: "a scene", Status: game.StatusContinue}
}

func deterministicConfig() Config {
	return Config{
		Language:        locale.English,
		ScenarioID:      "tower",
		InitialCapacity: 50,
		Decrement:       3,
		TimerChance:     0,
		GiftChance:      0,
		Difficulty:      game.DifficultyNormal,
	}
}

func newTestManager(t *testing.T, story StoryBackend, images ImageBackend) *Manager {
	t.Helper()
	if images == nil {
		images = &scriptedImages{ref: ""}
	}
	m := NewManager(story, images, nil)
	t.Cleanup(m.Close)
	m.rng = &scriptedRand{}
	return m
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestStartSeedsSessionAndFetchesOpeningImage(t *testing.T) {
	m := newTestManager(t, &scriptedStory{}, &scriptedImages{ref: "data:image/png;base64,opening"})
	m.Configure(deterministicConfig())

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	s := m.Snapshot()
	if s.Phase != game.PhaseActive {
		t.Fatalf("phase = %s", s.Phase)
	}
	if len(s.Transcript) != 1 || s.Transcript[0].Speaker != game.SpeakerNarrator {
		t.Fatal("expected single opening narrator turn")
	}
	if !strings.Contains(s.Transcript[0].Text, "GOAL:") {
		t.Fatal("opening turn should state the goal")
	}
	waitFor(t, func() bool {
		s := m.Snapshot()
		return s.Transcript[0].ImageRef != "" && !s.Transcript[0].ImageLoading
	})
}

func TestSubmitResolvesDeterministically(t *testing.T) {
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("The stairs groan.")}}
	m := newTestManager(t, story, nil)
	m.Configure(deterministicConfig())
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := m.Submit(context.Background(), "descend"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	s := m.Snapshot()
	if s.Capacity != 47 {
		t.Fatalf("capacity = %d, want 47", s.Capacity)
	}
	if s.TurnCount != 1 {
		t.Fatalf("turn count = %d, want 1", s.TurnCount)
	}
	if len(s.Transcript) != 3 {
		t.Fatalf("transcript length = %d, want opening+player+narrator", len(s.Transcript))
	}
	last := s.Transcript[len(s.Transcript)-1]
	if last.Speaker != game.SpeakerNarrator || last.Text != "The stairs groan." {
		t.Fatalf("unexpected narrator turn %+v", last)
	}
	// The backend saw the pre-submission history and the raw input.
	req := story.requests[0]
	if req.Input != "descend" || len(req.History) != 1 {
		t.Fatalf("request = input %q with %d history entries", req.Input, len(req.History))
	}
	if req.Capacity != 50 {
		t.Fatalf("request capacity = %d, want pre-decrement 50", req.Capacity)
	}
}

func TestSubmitWhilePendingIsRejectedWithoutStateChange(t *testing.T) {
	release := make(chan struct{})
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("ok")}, release: release}
	m := newTestManager(t, story, nil)
	m.Configure(deterministicConfig())
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- m.Submit(context.Background(), "first") }()
	waitFor(t, func() bool { return m.Snapshot().PendingRequest })

	before := m.Snapshot()
	err := m.Submit(context.Background(), "second")
	if !errors.Is(err, game.ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending, got %v", err)
	}
	after := m.Snapshot()
	if len(after.Transcript) != len(before.Transcript) || after.Capacity != before.Capacity {
		t.Fatal("rejected submission must not change state")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
}

func TestTerminalPhasesRejectSubmissions(t *testing.T) {
	story := &scriptedStory{outcomes: []game.Outcome{{Message: "You escape.", ImagePrompt: "p", Status: game.StatusWin}}}
	m := newTestManager(t, story, nil)
	m.Configure(deterministicConfig())
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Submit(context.Background(), "leave"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := m.Snapshot().Phase; got != game.PhaseWon {
		t.Fatalf("phase = %s, want %s", got, game.PhaseWon)
	}
	if err := m.Submit(context.Background(), "more"); !errors.Is(err, game.ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
}

func TestSubmitEnforcesBudgetButWaitBypassesIt(t *testing.T) {
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("Silence answers.")}}
	m := newTestManager(t, story, nil)
	cfg := deterministicConfig()
	cfg.InitialCapacity = 5
	m.Configure(cfg)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := m.Submit(context.Background(), "a very long declaration"); !errors.Is(err, command.ErrOverBudget) {
		t.Fatalf("expected ErrOverBudget, got %v", err)
	}
	if len(m.Snapshot().Transcript) != 1 {
		t.Fatal("rejected input must not reach the transcript")
	}

	if err := m.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	s := m.Snapshot()
	if s.Capacity != 2 {
		t.Fatalf("capacity = %d, want 2 (sentinel still decays)", s.Capacity)
	}
	if s.Transcript[1].Text != game.WaitSentinel {
		t.Fatalf("player turn = %q, want sentinel", s.Transcript[1].Text)
	}
}

func TestBackendFailureSurfacesErrorWithoutPartialResolution(t *testing.T) {
	story := &scriptedStory{err: errors.New("boom")}
	m := newTestManager(t, story, nil)
	m.Configure(deterministicConfig())
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	err := m.Submit(context.Background(), "shout")
	if !errors.Is(err, game.ErrBackend) {
		t.Fatalf("expected ErrBackend, got %v", err)
	}
	s := m.Snapshot()
	if s.PendingRequest {
		t.Fatal("gate should drop after failure")
	}
	if s.LastError == "" {
		t.Fatal("expected surfaced error message")
	}
	if s.Capacity != 50 || s.Phase != game.PhaseActive || s.TurnCount != 0 {
		t.Fatal("failure must not resolve resources or phase")
	}
	last := s.Transcript[len(s.Transcript)-1]
	if last.Speaker != game.SpeakerPlayer {
		t.Fatal("no narrator turn may appear on failure")
	}
	// The player can immediately try again.
	story.err = nil
	story.outcomes = []game.Outcome{continueOut("recovered")}
	if err := m.Submit(context.Background(), "whisper"); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestImagePatchSurvivesTranscriptGrowth(t *testing.T) {
	release := make(chan struct{})
	images := &scriptedImages{ref: "data:image/png;base64,late", release: release}
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("one"), continueOut("two")}}
	m := newTestManager(t, story, images)
	m.Configure(deterministicConfig())
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	// The opening image is still in flight while two more turns resolve.
	if err := m.Submit(context.Background(), "north"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := m.Submit(context.Background(), "south"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	openingID := m.Snapshot().Transcript[0].ID
	close(release)

	waitFor(t, func() bool {
		s := m.Snapshot()
		i := s.FindTurn(openingID)
		return i >= 0 && s.Transcript[i].ImageRef != ""
	})
	s := m.Snapshot()
	if i := s.FindTurn(openingID); s.Transcript[i].ImageRef == "" {
		t.Fatal("opening turn should receive its late image")
	}
}

func TestRestartPreservesTuning(t *testing.T) {
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("x")}}
	m := newTestManager(t, story, nil)
	cfg := deterministicConfig()
	cfg.InitialCapacity = 70
	cfg.GiftChance = 30
	m.Configure(cfg)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Submit(context.Background(), "act"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	m.Restart()
	s := m.Snapshot()
	if s.Phase != game.PhaseNotStarted || len(s.Transcript) != 0 || s.TurnCount != 0 {
		t.Fatal("restart should clear the run")
	}
	if s.Capacity != 70 || s.GiftChance != 30 || s.ScenarioID != "tower" {
		t.Fatal("restart should preserve configuration")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("remembered")}}
	m := newTestManager(t, story, nil)
	m.Configure(deterministicConfig())
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Submit(context.Background(), "mark the wall"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	exported := m.Snapshot()

	doc, name, err := m.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(name, ".md") {
		t.Fatalf("file name = %q", name)
	}

	m.Restart()
	if err := m.Import(doc); err != nil {
		t.Fatalf("import: %v", err)
	}
	loaded := m.Snapshot()
	if loaded.Phase != exported.Phase || loaded.Capacity != exported.Capacity {
		t.Fatal("phase and capacity should round-trip")
	}
	if len(loaded.Transcript) != len(exported.Transcript) {
		t.Fatalf("transcript length = %d, want %d", len(loaded.Transcript), len(exported.Transcript))
	}
	if loaded.GoalText != exported.GoalText || loaded.ScenarioID != exported.ScenarioID {
		t.Fatal("goal and scenario should round-trip")
	}
}

func TestImportFailureLeavesSessionUntouched(t *testing.T) {
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("x")}}
	m := newTestManager(t, story, nil)
	m.Configure(deterministicConfig())
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	before := m.Snapshot()

	err := m.Import([]byte("# not a save file"))
	if err == nil {
		t.Fatal("expected import error")
	}
	after := m.Snapshot()
	if after.Phase != before.Phase || len(after.Transcript) != len(before.Transcript) {
		t.Fatal("failed import must not touch the session")
	}
}

func TestArmedTimerForcesExactlyOneSubmission(t *testing.T) {
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("tick"), continueOut("tock")}}
	m := newTestManager(t, story, nil)
	cfg := deterministicConfig()
	cfg.TimerChance = 100
	m.Configure(cfg)
	// Draws: gift (no), timer (yes).
	m.rng = &scriptedRand{fractions: []float64{0.99, 0.0}}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Submit(context.Background(), "listen"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if m.Snapshot().ActiveTimer == nil {
		t.Fatal("expected armed timer")
	}
	state, _, _ := m.Countdown()
	if state != countdown.Running {
		t.Fatalf("countdown state = %v, want Running", state)
	}

	m.SetDraft("  hide  ")
	// Expire the countdown directly; the driver tick is wall-clock.
	m.timer.Advance(30)

	s := m.Snapshot()
	if s.TurnCount != 2 {
		t.Fatalf("turn count = %d, want exactly one forced resolution", s.TurnCount)
	}
	forced := s.Transcript[3]
	if forced.Speaker != game.SpeakerPlayer || forced.Text != "hide" {
		t.Fatalf("forced turn = %+v, want trimmed draft", forced)
	}
}

func TestPendingRequestCancelsCountdown(t *testing.T) {
	release := make(chan struct{})
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("a"), continueOut("b")}, release: release}
	m := newTestManager(t, story, nil)
	cfg := deterministicConfig()
	cfg.TimerChance = 100
	m.Configure(cfg)
	m.rng = &scriptedRand{fractions: []float64{0.99, 0.0}}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	go func() { release <- struct{}{} }()
	if err := m.Submit(context.Background(), "look"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	state, _, _ := m.Countdown()
	if state != countdown.Running {
		t.Fatal("expected running countdown")
	}

	done := make(chan error, 1)
	go func() { done <- m.Submit(context.Background(), "go") }()
	waitFor(t, func() bool {
		state, _, _ := m.Countdown()
		return state == countdown.Idle
	})
	release <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("second submit: %v", err)
	}
}

func TestEmptyDraftForcesWaitSentinel(t *testing.T) {
	story := &scriptedStory{outcomes: []game.Outcome{continueOut("a"), continueOut("b")}}
	m := newTestManager(t, story, nil)
	cfg := deterministicConfig()
	cfg.TimerChance = 100
	m.Configure(cfg)
	m.rng = &scriptedRand{fractions: []float64{0.99, 0.0}}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Submit(context.Background(), "wait quietly"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	m.timer.Advance(30)
	s := m.Snapshot()
	forced := s.Transcript[3]
	if forced.Text != game.WaitSentinel {
		t.Fatalf("forced turn text = %q, want sentinel", forced.Text)
	}
}
