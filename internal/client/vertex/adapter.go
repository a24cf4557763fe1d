package vertexclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sahakari-backend/internal/translation"
)

const systemPrompt = "You translate short website copy for a Nepali savings and credit cooperative. " +
	"Reply with the translation only, no quotes, no explanation. Keep numbers, names and URLs unchanged."

var languageNames = map[string]string{
	"ne": "Nepali",
	"en": "English",
}

// Adapter is a translation provider backed by a Gemini model on Vertex AI.
type Adapter struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	if model == "" {
		return nil, fmt.Errorf("vertex model is required")
	}
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

func (a *Adapter) Name() string { return "vertex" }

func (a *Adapter) Translate(ctx context.Context, text, target string) (string, error) {
	model := a.client.GenerativeModel(a.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx, genai.Text(Prompt(text, target)))
	if err != nil {
		if status.Code(err) == codes.ResourceExhausted {
			return "", translation.ErrRateLimited
		}
		return "", err
	}

	out := strings.TrimSpace(parseText(resp))
	if out == "" {
		return "", errors.New("vertex returned no text")
	}
	return out, nil
}

// Prompt builds the user message for a single translation.
func Prompt(text, target string) string {
	lang, ok := languageNames[target]
	if !ok {
		lang = target
	}
	return fmt.Sprintf("Translate from English to %s:\n%s", lang, text)
}

func parseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var text string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if p, ok := part.(genai.Text); ok {
				text += string(p)
			}
		}
		// first candidate with content is enough
		if text != "" {
			break
		}
	}
	return text
}
