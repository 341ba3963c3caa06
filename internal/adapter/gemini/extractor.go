package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"shopsready/backend/internal/catalog"
	"shopsready/backend/internal/document"
)

const defaultModel = "gemini-2.0-flash"

// Extractor sends one document chunk plus the extraction instruction set to
// Gemini and parses the schema-constrained JSON response into catalog records.
type Extractor struct {
	client *genai.Client
	model  string
}

func NewExtractor(ctx context.Context, apiKey string) (*Extractor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Extractor{client: client, model: defaultModel}, nil
}

func (e *Extractor) Close() error {
	return e.client.Close()
}

// Extract performs one model call for one chunk. The response must be a JSON
// array of product objects; anything else is an error the pipeline treats as
// a failed chunk.
func (e *Extractor) Extract(ctx context.Context, chunk document.Chunk, cfg catalog.Config) ([]catalog.Record, error) {
	slog.DebugContext(ctx, "extracting chunk", "model", e.model, "chunk", chunk.Index, "media", chunk.Media, "bytes", len(chunk.Data))

	gm := e.client.GenerativeModel(e.model)
	gm.ResponseMIMEType = "application/json"
	gm.ResponseSchema = responseSchema()

	parts := []genai.Part{genai.Text(buildInstructions(cfg))}
	if chunk.Media == document.MediaText {
		parts = append(parts, genai.Text(string(chunk.Data)))
	} else {
		parts = append(parts, genai.Blob{MIMEType: chunk.MIME, Data: chunk.Data})
	}

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		slog.ErrorContext(ctx, "model call failed", "error", err, "chunk", chunk.Index)
		return nil, err
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, fmt.Errorf("model returned an empty response")
	}

	records, err := catalog.ParseRecords([]byte(raw), cfg)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
