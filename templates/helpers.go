package templates

import (
	"fmt"
	"strings"

	"echoes/countdown"
	"echoes/game"
	"echoes/locale"
	"echoes/scenario"
)

// View bundles everything a page render needs.
type View struct {
	State     game.State
	Text      locale.Strings
	Scenarios []scenario.Scenario
	Flash     string

	TimerState     countdown.State
	TimerRemaining float64
	TimerTotal     float64
}

// NewView builds a render model from a state snapshot.
func NewView(s game.State, ts countdown.State, remaining, total float64) View {
	return View{
		State:          s,
		Text:           locale.Table(s.Language),
		Scenarios:      scenario.Catalog,
		TimerState:     ts,
		TimerRemaining: remaining,
		TimerTotal:     total,
	}
}

// CapacityStatus represents the voice capacity state and its corresponding color.
type CapacityStatus struct {
	Description string
	Color       string
}

// GetCapacityStatus returns a CapacityStatus struct based on remaining capacity.
func GetCapacityStatus(capacity int) CapacityStatus {
	switch {
	case capacity >= 30:
		return CapacityStatus{"STABLE", "#a6e22e"} // Lime Green
	case capacity >= 15:
		return CapacityStatus{"FADING", "#e6db74"} // Yellow
	case capacity >= 5:
		return CapacityStatus{"CRITICAL", "#fd971f"} // Orange
	case capacity >= 0:
		return CapacityStatus{"LAST WORDS", "#f92672"} // Pink/Red
	default:
		return CapacityStatus{"SILENCED", "#75715e"} // Gray
	}
}

// FormatNames creates a string from a slice of inventory or entity names.
func FormatNames(names []string) string {
	if len(names) == 0 {
		return "—"
	}
	return strings.Join(names, ", ")
}

// SpeakerLabel resolves the transcript label for a turn.
func SpeakerLabel(sp game.Speaker, text locale.Strings) string {
	if sp == game.SpeakerPlayer {
		return text.PlayerLabel
	}
	return text.NarratorLabel
}

// Paragraphs splits turn text on blank lines for rendering.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TimerBarStyle generates the width style for the countdown bar.
func TimerBarStyle(remaining, total float64) string {
	if total <= 0 {
		return "width: 0%"
	}
	pct := remaining / total * 100
	if pct < 0 {
		pct = 0
	}
	return fmt.Sprintf("width: %.1f%%", pct)
}

// CapacityBarStyle generates the width and color style for the capacity meter.
func CapacityBarStyle(capacity int) string {
	max := game.InitialCapacity
	if capacity > max {
		max = capacity
	}
	pct := float64(capacity) / float64(max) * 100
	if pct < 0 {
		pct = 0
	}
	status := GetCapacityStatus(capacity)
	return fmt.Sprintf("width: %.1f%%; background-color: %s", pct, status.Color)
}

// InputLimit is the maxlength for the action field. The wait sentinel is
// always allowed, so the floor is its length.
func InputLimit(capacity int) int {
	if capacity < len(game.WaitSentinel) {
		return len(game.WaitSentinel)
	}
	return capacity
}
