// Package session owns the single game state and sequences everything
// around it: backend calls, engine resolution, the countdown, save and load.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"echoes/command"
	"echoes/countdown"
	"echoes/game"
	"echoes/locale"
	"echoes/savefile"
	"echoes/scenario"
	"echoes/speech"
)

// StoryBackend resolves narrative turns.
type StoryBackend interface {
	GenerateTurn(ctx context.Context, req game.TurnRequest) (game.Outcome, error)
}

// ImageBackend renders scene images. An empty ref with nil error is the
// valid "no visual available" outcome.
type ImageBackend interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

const imageTimeout = 90 * time.Second

// Manager is the session controller. All mutation goes through update so an
// async image patch can never clobber fields a concurrent submission is
// rewriting.
type Manager struct {
	mu    sync.Mutex
	state game.State
	draft string

	// initialCapacity is the configured starting budget, reapplied on
	// restart.
	initialCapacity int
	secrets         string

	story    StoryBackend
	images   ImageBackend
	narrator speech.Narrator
	rng      game.Rand

	timer     *countdown.Timer
	stopTimer func()
}

// NewManager wires the controller to its collaborators. narrator may be nil
// for a silent game.
func NewManager(story StoryBackend, images ImageBackend, narrator speech.Narrator) *Manager {
	m := &Manager{
		state:           game.NewState(),
		initialCapacity: game.InitialCapacity,
		story:           story,
		images:          images,
		narrator:        narrator,
		rng:             game.SystemRand(),
		timer:           countdown.New(),
	}
	m.stopTimer = countdown.Drive(m.timer, countdown.TickInterval)
	return m
}

// Close stops the countdown driver.
func (m *Manager) Close() {
	if m.stopTimer != nil {
		m.stopTimer()
	}
}

// Snapshot returns a copy of the current state for rendering.
func (m *Manager) Snapshot() game.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Countdown reports the timer for rendering.
func (m *Manager) Countdown() (countdown.State, float64, float64) {
	return m.timer.Snapshot()
}

// SetDraft remembers the input currently buffered in the widget so a timer
// expiry can force-submit it.
func (m *Manager) SetDraft(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = text
}

func (m *Manager) update(fn func(game.State) game.State) game.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = fn(m.state)
	return m.state
}

// Config is the start-screen tuning applied before a run.
type Config struct {
	Language        locale.Language
	ScenarioID      string
	InitialCapacity int
	Decrement       int
	TimerChance     int
	GiftChance      int
	Difficulty      game.Difficulty
}

// Configure applies start-screen settings. Ignored once a run is underway.
func (m *Manager) Configure(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Phase != game.PhaseNotStarted {
		return
	}
	s := m.state
	if locale.Valid(cfg.Language) {
		s.Language = cfg.Language
	}
	if _, ok := scenario.ByID(cfg.ScenarioID); ok {
		s.ScenarioID = cfg.ScenarioID
	}
	if cfg.InitialCapacity > 0 {
		s.Capacity = cfg.InitialCapacity
		m.initialCapacity = cfg.InitialCapacity
	}
	if cfg.Decrement > 0 {
		s.CapacityDecrement = cfg.Decrement
	}
	if cfg.TimerChance >= 0 && cfg.TimerChance <= 100 {
		s.TimerChance = cfg.TimerChance
	}
	if cfg.GiftChance >= 0 && cfg.GiftChance <= 100 {
		s.GiftChance = cfg.GiftChance
	}
	if cfg.Difficulty != "" {
		s.Difficulty = cfg.Difficulty.Normalize()
	}
	m.state = s
}

// Start seeds an active session from the selected scenario and requests its
// opening image in the background.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	s := m.state
	if s.Phase == game.PhaseActive {
		m.mu.Unlock()
		return game.ErrRequestPending
	}
	sc, ok := scenario.ByID(s.ScenarioID)
	if !ok {
		sc = scenario.Default()
	}
	next, opening := game.StartScenario(s, sc)
	m.state = next
	m.secrets = sc.Secrets.For(next.Language)
	m.draft = ""
	m.mu.Unlock()

	m.timer.Cancel()
	go m.fetchImage(opening.ID, opening.VisualPrompt)
	return nil
}

// Submit resolves one player turn. The whole sequence is synchronous up to
// the state update; the scene image and narration are fire-and-forget.
func (m *Manager) Submit(ctx context.Context, text string) error {
	return m.submit(ctx, text, true)
}

// Wait submits the wait sentinel: a valid action that bypasses the
// character budget.
func (m *Manager) Wait(ctx context.Context) error {
	return m.submit(ctx, game.WaitSentinel, false)
}

func (m *Manager) submit(ctx context.Context, text string, enforceBudget bool) error {
	m.mu.Lock()
	s := m.state
	if s.PendingRequest {
		m.mu.Unlock()
		return game.ErrRequestPending
	}
	if s.Phase != game.PhaseActive {
		m.mu.Unlock()
		return game.ErrNotActive
	}
	if enforceBudget {
		if err := command.Validate(text, s.Capacity); err != nil {
			m.mu.Unlock()
			return err
		}
	}
	// The armed timer belonged to the prompt now being answered.
	req := game.NewTurnRequest(s, text, m.secrets)
	next, _ := game.BeginSubmission(s, text)
	m.state = next
	m.draft = ""
	m.mu.Unlock()
	m.timer.Cancel()

	out, err := m.story.GenerateTurn(ctx, req)
	if err != nil {
		m.update(func(s game.State) game.State {
			return game.FailSubmission(s, backendErrorMessage(s.Language))
		})
		return fmt.Errorf("%w: %v", game.ErrBackend, err)
	}

	var narratorTurn game.Turn
	var resolveErr error
	resolved := m.update(func(s game.State) game.State {
		ns, turn, err := game.Resolve(s, out, m.rng)
		if err != nil {
			resolveErr = err
			return game.FailSubmission(s, backendErrorMessage(s.Language))
		}
		narratorTurn = turn
		return ns
	})
	if resolveErr != nil {
		return resolveErr
	}

	if resolved.ActiveTimer != nil {
		m.timer.Arm(resolved.ActiveTimer.DurationSeconds, m.forceSubmit)
	}
	if narratorTurn.VisualPrompt != "" {
		go m.fetchImage(narratorTurn.ID, narratorTurn.VisualPrompt)
	}
	m.narrate(narratorTurn.Text, out.SoundEffect)
	return nil
}

// forceSubmit fires when the countdown expires: whatever is buffered goes
// out, silence if nothing is.
func (m *Manager) forceSubmit() {
	m.mu.Lock()
	text := strings.TrimSpace(m.draft)
	m.mu.Unlock()
	if text == "" {
		text = game.WaitSentinel
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := m.submit(ctx, text, false); err != nil {
		log.Printf("forced submission: %v", err)
	}
}

// fetchImage resolves a scene image and patches it onto its turn. The turn
// is located by identity, never by position: the transcript may have grown,
// or the session may have been reset, while the request was in flight.
func (m *Manager) fetchImage(turnID int64, prompt string) {
	if m.images == nil || prompt == "" {
		m.update(func(s game.State) game.State { return game.PatchImage(s, turnID, "") })
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
	defer cancel()
	ref, err := m.images.GenerateImage(ctx, prompt)
	if err != nil {
		log.Printf("scene image: %v", err)
		ref = ""
	}
	m.update(func(s game.State) game.State { return game.PatchImage(s, turnID, ref) })
}

// narrate voices the turn and its sound effect. Best effort, never touches
// game state.
func (m *Manager) narrate(text, effect string) {
	if m.narrator == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := m.narrator.Speak(ctx, text); err != nil {
			log.Printf("narration: %v", err)
		}
		if effect != "" {
			if _, err := m.narrator.Effect(ctx, effect); err != nil {
				log.Printf("sound effect: %v", err)
			}
		}
	}()
}

// Restart returns to the start screen, preserving configuration.
func (m *Manager) Restart() {
	m.timer.Cancel()
	m.mu.Lock()
	m.state = game.Restart(m.state, m.initialCapacity)
	m.draft = ""
	m.secrets = ""
	m.mu.Unlock()
}

// Export renders the current session as a markdown save.
func (m *Manager) Export() ([]byte, string, error) {
	s := m.Snapshot()
	title := m.scenarioTitle(s)
	doc, err := savefile.Export(s, title)
	if err != nil {
		return nil, "", err
	}
	return doc, savefile.FileName(title), nil
}

// ExportPDF renders the transcript as a printable document.
func (m *Manager) ExportPDF() ([]byte, error) {
	s := m.Snapshot()
	return savefile.ExportPDF(s, m.scenarioTitle(s))
}

// Import replaces the session wholesale with a parsed save. The live state
// is untouched when parsing fails.
func (m *Manager) Import(data []byte) error {
	loaded, err := savefile.Import(data)
	if err != nil {
		return err
	}
	m.timer.Cancel()
	m.mu.Lock()
	m.state = loaded
	m.draft = ""
	if sc, ok := scenario.ByID(loaded.ScenarioID); ok {
		m.secrets = sc.Secrets.For(loaded.Language)
	} else {
		m.secrets = ""
	}
	m.mu.Unlock()
	return nil
}

func (m *Manager) scenarioTitle(s game.State) string {
	if sc, ok := scenario.ByID(s.ScenarioID); ok {
		return sc.Title.For(s.Language)
	}
	return "Echoes"
}

func backendErrorMessage(lang locale.Language) string {
	if lang == locale.Slovak {
		return "Prázdnota narušila tvoje myšlienky. Skús to znova."
	}
	return "The void disrupted your thoughts. Please try again."
}
