// Package speech narrates turns through a pluggable text-to-speech provider.
// Failures here are logged by callers and never reach game state.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// Narrator converts narration text or short effect descriptions to playable
// audio. A nil byte slice with a nil error means the provider had nothing to
// say.
type Narrator interface {
	Speak(ctx context.Context, text string) ([]byte, error)
	Effect(ctx context.Context, description string) ([]byte, error)
}

var bracketed = regexp.MustCompile(`\[[^\]]*\]`)
var newlines = regexp.MustCompile(`\n+`)

// CleanNarration strips bracketed system annotations and collapses newlines
// so the voice reads only the story.
func CleanNarration(text string) string {
	text = bracketed.ReplaceAllString(text, "")
	text = newlines.ReplaceAllString(text, " ")
	return strings.TrimSpace(regexp.MustCompile(` {2,}`).ReplaceAllString(text, " "))
}

// New selects a provider by name. Returns nil when the provider is unknown
// or unconfigured; the game simply stays silent then.
func New(provider, apiKey, voiceID string) Narrator {
	if apiKey == "" {
		return nil
	}
	switch strings.ToLower(provider) {
	case "elevenlabs":
		return NewElevenLabs(apiKey, voiceID)
	}
	return nil
}

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// ElevenLabs is the ElevenLabs REST implementation.
type ElevenLabs struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	voiceID    string
}

// NewElevenLabs builds a client for the given voice.
func NewElevenLabs(apiKey, voiceID string) *ElevenLabs {
	return &ElevenLabs{
		httpClient: &http.Client{},
		baseURL:    elevenLabsBaseURL,
		apiKey:     apiKey,
		voiceID:    voiceID,
	}
}

// Speak converts narration text to audio.
func (e *ElevenLabs) Speak(ctx context.Context, text string) ([]byte, error) {
	text = CleanNarration(text)
	if text == "" {
		return nil, nil
	}
	body := map[string]any{
		"text":     text,
		"model_id": "eleven_multilingual_v2",
	}
	return e.post(ctx, fmt.Sprintf("%s/text-to-speech/%s", e.baseURL, e.voiceID), body)
}

// Effect renders a short sound-effect description.
func (e *ElevenLabs) Effect(ctx context.Context, description string) ([]byte, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, nil
	}
	body := map[string]any{
		"text":             description,
		"duration_seconds": 3,
	}
	return e.post(ctx, e.baseURL+"/sound-generation", body)
}

func (e *ElevenLabs) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech request: status %d", resp.StatusCode)
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}
