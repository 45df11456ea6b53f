package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// transcriptionPrompt asks vision models for a verbatim transcription. Field
// extraction happens locally afterwards, so the model is used purely as a
// text recognizer.
const transcriptionPrompt = `You are a text recognition engine. Transcribe ALL text visible in this receipt or invoice image, exactly as written, line by line, top to bottom.

Important:
- Output plain text only, one receipt line per output line
- Keep the original wording, numbers, punctuation and casing
- Do not summarize, interpret, translate or extract fields
- Do not add any commentary before or after the transcription
- Do not use markdown code blocks`

// Gemini implements the Backend interface using Google Gemini
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Backend instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// RecognizeText asks Gemini for a verbatim transcription of the image
func (g *Gemini) RecognizeText(imageData []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pngData, err := normalizeToPNG(imageData, contentType)
	if err != nil {
		return "", err
	}

	// genai.ImageData expects just the format suffix, and normalizeToPNG
	// guarantees PNG
	parts := []genai.Part{
		genai.ImageData("png", pngData),
		genai.Text(transcriptionPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	text := cleanTranscription(responseText.String())
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}

	return text, nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}

// cleanTranscription strips markdown fences some models add despite the prompt
func cleanTranscription(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
