package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"echoes/prompts"
)

// ImageClient renders scene images for narrator turns.
type ImageClient struct {
	client *genai.Client
	model  string
}

// NewImageClient wraps an authenticated genai client.
func NewImageClient(client *genai.Client, model string) *ImageClient {
	return &ImageClient{client: client, model: model}
}

// GenerateImage asks the image model for a visual of the given scene prompt
// and returns it as a data URL. An empty ref with a nil error means "no
// visual available", which is a normal outcome and never retried.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompts.EnhanceImagePrompt(prompt)))
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok {
			return fmt.Sprintf("data:%s;base64,%s", blob.MIMEType,
				base64.StdEncoding.EncodeToString(blob.Data)), nil
		}
	}
	return "", nil
}
