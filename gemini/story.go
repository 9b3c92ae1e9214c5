// Package gemini talks to the generative backends: narrative turns and
// scene images. Both are treated as opaque, possibly-failing remote calls.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"echoes/game"
	"echoes/prompts"
)

// StoryClient resolves narrative turns against a Gemini model.
type StoryClient struct {
	client *genai.Client
	model  string
}

// NewStoryClient wraps an authenticated genai client.
func NewStoryClient(client *genai.Client, model string) *StoryClient {
	return &StoryClient{client: client, model: model}
}

// outcomeSchema constrains the model to the turn-outcome contract.
var outcomeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"message":         {Type: genai.TypeString},
		"imagePrompt":     {Type: genai.TypeString},
		"gameStatus":      {Type: genai.TypeString, Enum: []string{"CONTINUE", "WIN", "LOSE"}},
		"inventoryAdd":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"inventoryRemove": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"newCharacters":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"soundEffect":     {Type: genai.TypeString},
	},
	Required: []string{"message", "imagePrompt", "gameStatus"},
}

// GenerateTurn sends the transcript and game facts to the model and decodes
// the structured outcome. Shape violations come back as ErrMalformedOutcome,
// everything transport-ish as ErrBackend.
func (c *StoryClient) GenerateTurn(ctx context.Context, req game.TurnRequest) (game.Outcome, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompts.System(
			req.Goal, req.Capacity, req.Language, req.Inventory, req.Entities, req.Difficulty, req.Secrets))},
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = outcomeSchema

	chat := model.StartChat()
	chat.History = historyContents(req.History)

	resp, err := chat.SendMessage(ctx, genai.Text(req.Input))
	if err != nil {
		return game.Outcome{}, fmt.Errorf("%w: %v", game.ErrBackend, err)
	}
	raw, err := textPart(resp)
	if err != nil {
		return game.Outcome{}, err
	}
	return parseOutcome(raw)
}

func historyContents(history []game.HistoryEntry) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, h := range history {
		contents = append(contents, &genai.Content{
			Role:  string(h.Speaker),
			Parts: []genai.Part{genai.Text(h.Text)},
		})
	}
	return contents
}

func textPart(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", game.ErrBackend)
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("%w: non-text response part", game.ErrBackend)
	}
	return string(text), nil
}

// parseOutcome unmarshals the model's JSON. The model sometimes wraps the
// JSON in markdown fences, so those are stripped first.
func parseOutcome(raw string) (game.Outcome, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var out game.Outcome
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return game.Outcome{}, fmt.Errorf("%w: %v", game.ErrMalformedOutcome, err)
	}
	if strings.TrimSpace(out.Message) == "" {
		return game.Outcome{}, fmt.Errorf("%w: empty narrative text", game.ErrMalformedOutcome)
	}
	switch out.Status {
	case game.StatusContinue, game.StatusWin, game.StatusLose:
	default:
		return game.Outcome{}, fmt.Errorf("%w: unknown status %q", game.ErrMalformedOutcome, out.Status)
	}
	return out, nil
}
