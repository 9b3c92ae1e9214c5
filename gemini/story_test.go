package gemini

import (
	"errors"
	"testing"

	"echoes/game"
)

func TestParseOutcome(t *testing.T) {
	raw := `{"message":"The door opens.","imagePrompt":"an open door","gameStatus":"CONTINUE","inventoryAdd":["key"]}`
	out, err := parseOutcome(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.Message != "The door opens." || out.Status != game.StatusContinue {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if len(out.InventoryAdd) != 1 || out.InventoryAdd[0] != "key" {
		t.Fatalf("inventory add = %v", out.InventoryAdd)
	}
}

func TestParseOutcomeStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"message\":\"hm\",\"imagePrompt\":\"p\",\"gameStatus\":\"WIN\"}\n```"
	out, err := parseOutcome(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.Status != game.StatusWin {
		t.Fatalf("status = %s, want WIN", out.Status)
	}
}

func TestParseOutcomeContractViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "the model apologizes profusely"},
		{name: "empty message", raw: `{"message":"","imagePrompt":"p","gameStatus":"CONTINUE"}`},
		{name: "unknown status", raw: `{"message":"m","imagePrompt":"p","gameStatus":"PAUSE"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOutcome(tt.raw)
			if !errors.Is(err, game.ErrMalformedOutcome) {
				t.Fatalf("expected ErrMalformedOutcome, got %v", err)
			}
		})
	}
}

func TestHistoryContentsPreservesRolesAndOrder(t *testing.T) {
	contents := historyContents([]game.HistoryEntry{
		{Speaker: game.SpeakerNarrator, Text: "You wake up."},
		{Speaker: game.SpeakerPlayer, Text: "stand"},
	})
	if len(contents) != 2 {
		t.Fatalf("len = %d, want 2", len(contents))
	}
	if contents[0].Role != "model" || contents[1].Role != "user" {
		t.Fatalf("roles = %s, %s", contents[0].Role, contents[1].Role)
	}
}
