// Package savefile reads and writes the markdown save format: a
// human-readable transcript followed by an embedded data block holding the
// full serialized session.
package savefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"echoes/game"
	"echoes/locale"
)

// ErrSaveParse indicates the file lacks the embedded data block or fails
// structural validation. The live session is never touched on this path.
var ErrSaveParse = errors.New("save file parse failure")

const (
	dataBlockOpen  = "<!-- ECHOES_DATA"
	dataBlockClose = "-->"
)

var dataBlockRE = regexp.MustCompile(`(?s)<!-- ECHOES_DATA\n(.*?)\n-->`)

// Export renders the session as a markdown document. Transient fields are
// normalized before serialization; image references are preserved so a later
// import restores them.
func Export(s game.State, title string) ([]byte, error) {
	t := locale.Table(s.Language)

	var b strings.Builder
	fmt.Fprintf(&b, "# Echoes of the Void - %s\n", title)
	fmt.Fprintf(&b, "**Date**: %s\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Goal**: %s\n", s.GoalText)
	fmt.Fprintf(&b, "**Difficulty**: %s\n", s.Difficulty)
	fmt.Fprintf(&b, "**Status**: %s\n\n", s.Phase)
	b.WriteString("## Story Log\n\n")

	for _, turn := range s.Transcript {
		speaker := t.NarratorLabel
		if turn.Speaker == game.SpeakerPlayer {
			speaker = t.PlayerLabel
		}
		fmt.Fprintf(&b, "**%s**:\n%s\n\n", speaker, turn.Text)
		if turn.ImageRef != "" {
			fmt.Fprintf(&b, "![Scene](%s)\n\n", turn.ImageRef)
		}
		if turn.VisualPrompt != "" {
			fmt.Fprintf(&b, "> *Visual Context: %s*\n", turn.VisualPrompt)
		}
		b.WriteString("\n---\n\n")
	}

	payload, err := json.Marshal(normalizeForExport(s))
	if err != nil {
		return nil, fmt.Errorf("serialize session: %w", err)
	}
	fmt.Fprintf(&b, "\n%s\n%s\n%s", dataBlockOpen, payload, dataBlockClose)
	return []byte(b.String()), nil
}

// Import extracts the embedded data block and reconstructs the session.
// Structural validation only; narrative content is trusted.
func Import(data []byte) (game.State, error) {
	match := dataBlockRE.FindSubmatch(data)
	if match == nil {
		return game.State{}, fmt.Errorf("%w: no embedded data block", ErrSaveParse)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(match[1], &probe); err != nil {
		return game.State{}, fmt.Errorf("%w: %v", ErrSaveParse, err)
	}
	history, ok := probe["history"]
	if !ok || string(history) == "null" {
		return game.State{}, fmt.Errorf("%w: missing transcript array", ErrSaveParse)
	}
	var turns []json.RawMessage
	if err := json.Unmarshal(history, &turns); err != nil {
		return game.State{}, fmt.Errorf("%w: transcript is not an array", ErrSaveParse)
	}

	var s game.State
	if err := json.Unmarshal(match[1], &s); err != nil {
		return game.State{}, fmt.Errorf("%w: %v", ErrSaveParse, err)
	}
	return game.NormalizeLoaded(s), nil
}

// FileName derives a download name from the scenario title.
func FileName(title string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(title), "-"))
	return fmt.Sprintf("echoes-%s-%s.md", slug, time.Now().Format("2006-01-02"))
}

func normalizeForExport(s game.State) game.State {
	out := s
	out.PendingRequest = false
	out.ActiveTimer = nil
	out.LastError = ""
	if len(s.Transcript) > 0 {
		out.Transcript = make([]game.Turn, len(s.Transcript))
		copy(out.Transcript, s.Transcript)
		for i := range out.Transcript {
			out.Transcript[i].ImageLoading = false
		}
	}
	return out
}
